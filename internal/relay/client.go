package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cp-helper/judge/pkg/constants"
	"github.com/cp-helper/judge/pkg/errors"
	"github.com/cp-helper/judge/pkg/messages"
)

type Client interface {
	// FetchProblem takes the pending problem. It returns ErrMailboxEmpty
	// when none is waiting.
	FetchProblem(ctx context.Context) (messages.ProblemMessage, error)
	Submit(ctx context.Context, solution messages.SolutionMessage) error
}

type client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) Client {
	return &client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: constants.DefaultRelayTimeoutSec * time.Second},
	}
}

func (c *client) FetchProblem(ctx context.Context) (messages.ProblemMessage, error) {
	var problem messages.ProblemMessage

	body, err := c.do(ctx, http.MethodGet, constants.RelayProblemPath, nil)
	if err != nil {
		return problem, err
	}

	var empty messages.EmptyMessage
	if err := json.Unmarshal(body, &empty); err == nil && empty.Empty {
		return problem, errors.ErrMailboxEmpty
	}
	if err := json.Unmarshal(body, &problem); err != nil {
		return problem, fmt.Errorf("%w: invalid problem payload: %s", errors.ErrRelayRequest, err)
	}
	return problem, nil
}

func (c *client) Submit(ctx context.Context, solution messages.SolutionMessage) error {
	payload, err := json.Marshal(solution)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, constants.RelaySubmitPath, payload)
	return err
}

func (c *client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrRelayRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrRelayRequest, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s %s returned %d: %s", errors.ErrRelayRequest, method, path, resp.StatusCode, body)
	}
	return body, nil
}
