package compiler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cp-helper/judge/internal/logger"
	"github.com/cp-helper/judge/internal/process"
	"github.com/cp-helper/judge/pkg/constants"
	customErr "github.com/cp-helper/judge/pkg/errors"
	"github.com/cp-helper/judge/pkg/languages"
	"go.uber.org/zap"
)

type Compiler interface {
	// CompileSolutionIfNeeded runs the target's compile command inside its
	// working directory.
	// On failure it returns the compiler diagnostics together with an error
	// wrapping ErrCompilationFailed.
	CompileSolutionIfNeeded(
		ctx context.Context,
		target languages.ExecutionTarget,
		sessionID string,
	) (string, error)
}

type compiler struct {
	timeout time.Duration
	logger  *zap.SugaredLogger
}

func NewCompiler(timeout time.Duration) Compiler {
	return &compiler{
		timeout: timeout,
		logger:  logger.NewNamedLogger("compiler"),
	}
}

func (c *compiler) CompileSolutionIfNeeded(
	ctx context.Context,
	target languages.ExecutionTarget,
	sessionID string,
) (string, error) {
	if !target.RequiresCompilation() {
		c.logger.Infof("Language %s needs no compilation [SessionID: %s]", target.Name, sessionID)
		return "", nil
	}

	dir := target.WorkingDirectory
	command := languages.ResolveCommand(dir, target.CompileCommand)
	c.logger.Infof("Compiling %s with %s %v [SessionID: %s]", target.SourceFile, command, target.CompileArgs, sessionID)

	res, err := process.Run(ctx, process.Spec{
		Command: command,
		Args:    target.CompileArgs,
		Dir:     dir,
		Timeout: c.timeout,
	})
	if err != nil {
		if errors.Is(err, customErr.ErrLaunchFailed) {
			c.logger.Errorf("Could not start compiler. %s [SessionID: %s]", err, sessionID)
			return fmt.Sprintf(constants.LaunchMessageFailed, command, err), fmt.Errorf("%w: %s", customErr.ErrCompilationFailed, err)
		}
		c.logger.Errorf("Error during compilation. %s [SessionID: %s]", err, sessionID)
		return "", err
	}

	if res.Outcome == process.TimedOut {
		message := fmt.Sprintf(constants.CompileMessageTimeout, c.timeout)
		c.logger.Errorf("%s [SessionID: %s]", message, sessionID)
		return message, fmt.Errorf("%w: %s", customErr.ErrCompilationFailed, message)
	}

	if res.ExitCode != constants.ExitCodeSuccess {
		c.logger.Errorf("Compiler exited with code %d [SessionID: %s]", res.ExitCode, sessionID)
		return res.Stderr + res.Stdout, fmt.Errorf("%w: exit code %d", customErr.ErrCompilationFailed, res.ExitCode)
	}

	c.logger.Infof("Compilation successful in %s [SessionID: %s]", res.Elapsed, sessionID)
	return "", nil
}
