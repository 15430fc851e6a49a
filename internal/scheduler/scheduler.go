package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/cp-helper/judge/internal/logger"
	"github.com/cp-helper/judge/internal/pipeline"
	"github.com/cp-helper/judge/pkg/constants"
	"github.com/cp-helper/judge/pkg/errors"
	"github.com/cp-helper/judge/pkg/solution"
	"go.uber.org/zap"
)

// DoneFunc receives the outcome of a submitted session.
type DoneFunc func(verdicts []solution.Verdict, err error)

// Scheduler runs at most one judge session at a time in the background.
// Triggers that arrive while a session runs are rejected, not queued.
type Scheduler interface {
	Submit(ctx context.Context, req pipeline.Request, done DoneFunc) error
	GetStatus() map[string]interface{}
	// Wait blocks until the running session, if any, has finished.
	Wait()
}

type scheduler struct {
	mu        sync.Mutex
	wg        sync.WaitGroup
	judge     pipeline.Judge
	completed int
	rejected  int
	logger    *zap.SugaredLogger
}

func NewScheduler(judge pipeline.Judge) Scheduler {
	return &scheduler{
		judge:  judge,
		logger: logger.NewNamedLogger("scheduler"),
	}
}

func (s *scheduler) GetStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.judge.GetState()
	status := state.Status.String()
	if state.Status == constants.SessionStatusBusy && state.ProcessingSessionID != "" {
		status += " Processing session: " + state.ProcessingSessionID
	}

	return map[string]interface{}{
		"status":             status,
		"completed_sessions": s.completed,
		"rejected_sessions":  s.rejected,
	}
}

func (s *scheduler) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.judge.GetState().Status == constants.SessionStatusBusy {
		s.rejected++
		return errors.ErrSessionBusy
	}
	s.judge.UpdateStatus(constants.SessionStatusBusy)
	s.wg.Add(1)
	return nil
}

func (s *scheduler) Submit(ctx context.Context, req pipeline.Request, done DoneFunc) error {
	if err := s.acquire(); err != nil {
		s.logger.Warnf("Session already running, ignoring trigger: %s", err)
		return err
	}
	s.logger.Infof("Starting %s session with %d tests", req.Target.Name, len(req.Tests))

	go func() {
		defer s.markIdle()

		var (
			verdicts []solution.Verdict
			err      error
		)
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Errorf("Judge session panicked: %v", r)
					verdicts, err = nil, fmt.Errorf("judge session panicked: %v", r)
				}
			}()
			verdicts, err = s.judge.RunJudgeSession(ctx, req)
		}()

		if done != nil {
			done(verdicts, err)
		}
	}()

	return nil
}

func (s *scheduler) markIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.judge.UpdateStatus(constants.SessionStatusIdle)
	s.completed++
	s.wg.Done()
	s.logger.Infof("Judge marked as idle")
}

func (s *scheduler) Wait() {
	s.wg.Wait()
}
