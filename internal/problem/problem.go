package problem

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cp-helper/judge/pkg/constants"
	"github.com/cp-helper/judge/pkg/errors"
	"github.com/cp-helper/judge/pkg/messages"
	"github.com/cp-helper/judge/pkg/solution"
	"github.com/cp-helper/judge/utils"
	"gopkg.in/yaml.v3"
)

// Problem is the problem currently being solved, persisted between runs.
type Problem struct {
	Name        string              `yaml:"name"`
	Group       string              `yaml:"group,omitempty"`
	URL         string              `yaml:"url"`
	TimeLimit   int                 `yaml:"time_limit"` // milliseconds
	MemoryLimit int                 `yaml:"memory_limit,omitempty"`
	Tests       []solution.TestCase `yaml:"tests"`
}

func FromMessage(msg messages.ProblemMessage) *Problem {
	return &Problem{
		Name:        msg.Name,
		Group:       msg.Group,
		URL:         msg.URL,
		TimeLimit:   msg.TimeLimit,
		MemoryLimit: msg.MemoryLimit,
		Tests:       msg.Tests,
	}
}

// Load reads the problem file. A missing file yields ErrProblemMissing.
func Load(path string) (*Problem, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s does not exist", errors.ErrProblemMissing, path)
		}
		return nil, err
	}

	var p Problem
	if err := yaml.Unmarshal(content, &p); err != nil {
		return nil, fmt.Errorf("failed to parse problem file %s: %w", path, err)
	}
	return &p, nil
}

func (p *Problem) Save(path string) error {
	content, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return utils.WriteFile(path, string(content))
}

// TimeLimitDuration falls back to the default limit when none is recorded.
func (p *Problem) TimeLimitDuration() time.Duration {
	if p.TimeLimit <= 0 {
		return constants.DefaultTimeLimitMs * time.Millisecond
	}
	return time.Duration(p.TimeLimit) * time.Millisecond
}

// ShortName joins the last two URL path segments, so
// https://codeforces.com/problemset/problem/1234/A becomes 1234A.
func (p *Problem) ShortName() string {
	segments := strings.Split(strings.TrimRight(p.URL, "/"), "/")
	if len(segments) < 2 {
		return strings.Join(segments, "")
	}
	return strings.Join(segments[len(segments)-2:], "")
}

// TemplateContext is the data file name and source templates are rendered with.
func (p *Problem) TemplateContext(author string) map[string]interface{} {
	return map[string]interface{}{
		"title":      p.Name,
		"name":       p.Name,
		"group":      p.Group,
		"url":        p.URL,
		"short_name": p.ShortName(),
		"author":     author,
		"date":       time.Now().Format("2006-01-02"),
	}
}
