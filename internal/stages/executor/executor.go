package executor

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/cp-helper/judge/internal/logger"
	"github.com/cp-helper/judge/internal/process"
	"github.com/cp-helper/judge/internal/stages/verifier"
	"github.com/cp-helper/judge/pkg/constants"
	customErr "github.com/cp-helper/judge/pkg/errors"
	"github.com/cp-helper/judge/pkg/languages"
	"github.com/cp-helper/judge/pkg/solution"
	"go.uber.org/zap"
)

type Executor interface {
	// RunTestCase runs the target once on test.Input inside its working
	// directory and classifies the result. Only failures of the judge itself
	// are returned as errors.
	RunTestCase(
		ctx context.Context,
		target languages.ExecutionTarget,
		test solution.TestCase,
		timeLimit time.Duration,
	) (solution.Verdict, error)
}

type executor struct {
	verifier verifier.Verifier
	goos     string
	logger   *zap.SugaredLogger
}

func NewExecutor(v verifier.Verifier) Executor {
	return &executor{
		verifier: v,
		goos:     runtime.GOOS,
		logger:   logger.NewNamedLogger("executor"),
	}
}

func (e *executor) RunTestCase(
	ctx context.Context,
	target languages.ExecutionTarget,
	test solution.TestCase,
	timeLimit time.Duration,
) (solution.Verdict, error) {
	verdict := solution.Verdict{Input: test.Input, Answer: test.Output}

	dir := target.WorkingDirectory
	command := languages.ResolveCommand(dir, target.RunCommandFor(e.goos))
	res, err := process.Run(ctx, process.Spec{
		Command: command,
		Args:    target.RunArgs,
		Dir:     dir,
		Stdin:   test.Input,
		Timeout: timeLimit,
	})
	verdict.TimeMs = float64(res.Elapsed.Microseconds()) / 1000

	if err != nil {
		if errors.Is(err, customErr.ErrLaunchFailed) {
			e.logger.Warnf("Could not start %s: %s", command, err)
			verdict.Output = fmt.Sprintf(constants.LaunchMessageFailed, command, err)
			verdict.SetStatus(solution.RuntimeErrorLaunchFailure)
			return verdict, nil
		}
		e.logger.Errorf("Failed to run %s: %s", command, err)
		return verdict, err
	}

	switch {
	case res.Outcome == process.TimedOut:
		verdict.SetStatus(solution.TimeLimitExceeded)
	case res.ExitCode != constants.ExitCodeSuccess:
		verdict.Output = res.Stderr
		verdict.SetStatus(solution.RuntimeErrorNonZeroExit)
	case e.verifier.CompareOutput(test.Output, res.Stdout):
		verdict.Output = res.Stdout
		verdict.SetStatus(solution.Accepted)
	default:
		verdict.Output = res.Stdout
		verdict.SetStatus(solution.WrongAnswer)
	}

	e.logger.Debugf("Test finished with %s in %.3fms", verdict.Status, verdict.TimeMs)
	return verdict, nil
}
