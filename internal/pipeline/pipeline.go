package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cp-helper/judge/internal/logger"
	"github.com/cp-helper/judge/internal/stages/compiler"
	"github.com/cp-helper/judge/internal/stages/executor"
	"github.com/cp-helper/judge/internal/stages/packager"
	"github.com/cp-helper/judge/pkg/constants"
	customErr "github.com/cp-helper/judge/pkg/errors"
	"github.com/cp-helper/judge/pkg/languages"
	"github.com/cp-helper/judge/pkg/solution"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Request is one judge session: a bundled source, the target to build and
// run it with, and the tests to run it on.
type Request struct {
	Target    languages.ExecutionTarget
	Source    string
	Tests     []solution.TestCase
	TimeLimit time.Duration
}

type Judge interface {
	RunJudgeSession(ctx context.Context, req Request) ([]solution.Verdict, error)
	GetState() SessionState
	UpdateStatus(status constants.SessionStatus)
}

type SessionState struct {
	Status              constants.SessionStatus `json:"status"`
	ProcessingSessionID string                  `json:"processing_session_id"`
}

type judge struct {
	mu       sync.Mutex
	state    SessionState
	compiler compiler.Compiler
	packager packager.Packager
	executor executor.Executor
	notifier Notifier
	logger   *zap.SugaredLogger
}

func NewJudge(
	compiler compiler.Compiler,
	packager packager.Packager,
	executor executor.Executor,
	notifier Notifier,
) Judge {
	if notifier == nil {
		notifier = MultiNotifier{}
	}
	return &judge{
		state:    SessionState{Status: constants.SessionStatusIdle},
		compiler: compiler,
		packager: packager,
		executor: executor,
		notifier: notifier,
		logger:   logger.NewNamedLogger("judge"),
	}
}

func (j *judge) GetState() SessionState {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

func (j *judge) UpdateStatus(status constants.SessionStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.state.Status = status
}

func (j *judge) setProcessingSessionID(id string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.state.ProcessingSessionID = id
}

// SessionError is returned by RunJudgeSession for every failure, carrying the
// id of the session it ended, even one that failed before its first event.
type SessionError struct {
	SessionID string
	Err       error
}

func (e *SessionError) Error() string { return e.Err.Error() }

func (e *SessionError) Unwrap() error { return e.Err }

// SessionIDOf returns the session id carried by err, or "" when there is none.
func SessionIDOf(err error) string {
	var se *SessionError
	if errors.As(err, &se) {
		return se.SessionID
	}
	return ""
}

// RunJudgeSession compiles req.Source once and runs every test in order.
// Compile failures and per-test failures are reported as verdicts; only a
// failure of the judge itself returns an error, always as a *SessionError.
// The working directory is removed on every path.
func (j *judge) RunJudgeSession(ctx context.Context, req Request) ([]solution.Verdict, error) {
	sessionID := uuid.New().String()
	verdicts, err := j.runSession(ctx, req, sessionID)
	if err != nil {
		return nil, &SessionError{SessionID: sessionID, Err: err}
	}
	return verdicts, nil
}

func (j *judge) runSession(ctx context.Context, req Request, sessionID string) (verdicts []solution.Verdict, err error) {
	if err := req.Target.Validate(); err != nil {
		j.logger.Errorf("Invalid target %s: %s [SessionID: %s]", req.Target.Name, err, sessionID)
		return nil, err
	}

	j.setProcessingSessionID(sessionID)
	defer j.setProcessingSessionID("")
	j.logger.Infof("Starting session for %d tests [SessionID: %s]", len(req.Tests), sessionID)

	dc, err := j.packager.PrepareSolutionPackage(req.Target, req.Source, sessionID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cleanupErr := j.packager.Cleanup(dc); cleanupErr != nil && err == nil {
			verdicts, err = nil, cleanupErr
		}
	}()

	target := req.Target
	target.WorkingDirectory = dc.TmpDirPath
	verdicts = solution.NewPendingVerdicts(req.Tests)

	if target.RequiresCompilation() {
		setAll(verdicts, solution.Compiling)
		j.notify(sessionID, constants.StageCompiling, verdicts)

		output, compileErr := j.compiler.CompileSolutionIfNeeded(ctx, target, sessionID)
		if compileErr != nil {
			if !errors.Is(compileErr, customErr.ErrCompilationFailed) {
				return nil, compileErr
			}
			for i := range verdicts {
				verdicts[i].Output = output
				verdicts[i].SetStatus(solution.CompilationError)
			}
			j.notify(sessionID, constants.StageCompileError, verdicts)
			j.logger.Infof("Compilation failed, no tests run [SessionID: %s]", sessionID)
			return verdicts, nil
		}
	}

	setAll(verdicts, solution.Running)
	j.notify(sessionID, constants.StageRunning, verdicts)

	for i, tc := range req.Tests {
		verdict, runErr := j.executor.RunTestCase(ctx, target, tc, req.TimeLimit)
		if runErr != nil {
			j.logger.Errorf("Test %d aborted the session: %s [SessionID: %s]", i+1, runErr, sessionID)
			return nil, fmt.Errorf("test %d: %w", i+1, runErr)
		}
		verdicts[i] = verdict
		j.notify(sessionID, constants.StageTestCompleted, verdicts)
	}

	j.notify(sessionID, constants.StageFinished, verdicts)
	j.logger.Infof("Finished session [SessionID: %s]", sessionID)
	return verdicts, nil
}

func (j *judge) notify(sessionID, stage string, verdicts []solution.Verdict) {
	j.notifier.Notify(Event{
		SessionID: sessionID,
		Stage:     stage,
		Verdicts:  solution.Snapshot(verdicts),
	})
}

func setAll(verdicts []solution.Verdict, status solution.Status) {
	for i := range verdicts {
		verdicts[i].SetStatus(status)
	}
}
