package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/cp-helper/judge/internal/problem"
	"github.com/cp-helper/judge/internal/relay"
	"github.com/cp-helper/judge/internal/storage"
	pkgErr "github.com/cp-helper/judge/pkg/errors"
	"github.com/cp-helper/judge/pkg/messages"
	"github.com/cp-helper/judge/utils"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var (
	relaySave bool
	fetchOpen bool
)

// relayCmd runs the local relay for the browser extension
var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Run the local relay the browser extension talks to",
	Long: `Serves the problem and solution mailboxes on RELAY_HOST:RELAY_PORT until
interrupted. Problems posted by the extension wait there until "judge fetch"
takes them, unless --save stores them right away.`,
	Args: cobra.NoArgs,
	RunE: runRelay,
}

// fetchCmd takes the pending problem from the relay
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Take the pending problem from the relay and prepare its solution file",
	Args:  cobra.NoArgs,
	RunE:  runFetch,
}

func runRelay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	gin.SetMode(gin.ReleaseMode)

	var onProblem func(messages.ProblemMessage)
	if relaySave {
		onProblem = func(msg messages.ProblemMessage) {
			if _, err := a.saveProblem(msg); err != nil {
				a.logger.Errorf("Failed to save problem %q: %s", msg.Name, err)
			}
		}
	}

	fmt.Fprintf(os.Stderr, "Relay listening on %s\n", a.cfg.RelayURL())
	return relay.NewServer(onProblem).Run(ctx, a.cfg.RelayAddress())
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	msg, err := relay.NewClient(a.cfg.RelayURL()).FetchProblem(ctx)
	if errors.Is(err, pkgErr.ErrMailboxEmpty) {
		fmt.Fprintln(os.Stderr, "No problem is waiting on the relay.")
		return nil
	}
	if err != nil {
		return err
	}

	path, err := a.saveProblem(msg)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, path)

	if fetchOpen && a.settings.Editor != "" {
		editor := exec.Command(a.settings.Editor, storage.ResolvePath(a.cfg.Workspace, path))
		if err := editor.Start(); err != nil {
			a.logger.Warnf("Failed to open editor %s: %s", a.settings.Editor, err)
		} else {
			_ = editor.Process.Release()
		}
	}
	return nil
}

// saveProblem stores msg as the current problem and, when create_file is on,
// creates its solution file from the template. It returns the solution path.
func (a *app) saveProblem(msg messages.ProblemMessage) (string, error) {
	p := problem.FromMessage(msg)
	if err := p.Save(a.problemPath()); err != nil {
		return "", fmt.Errorf("failed to save problem: %w", err)
	}
	a.logger.Infof("Saved problem %q with %d tests", p.Name, len(p.Tests))

	path, err := a.solutionPath(p)
	if err != nil {
		return "", err
	}
	if !a.settings.Toggle.CreateFile {
		return path, nil
	}

	full := storage.ResolvePath(a.cfg.Workspace, path)
	if _, err := os.Stat(full); err == nil {
		return path, nil
	}
	content, err := a.settings.SourceTemplate(a.renderer, a.cfg.Workspace, p)
	if err != nil {
		return "", err
	}
	if err := utils.WriteFile(full, content); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", full, err)
	}
	a.logger.Infof("Created %s", path)
	return path, nil
}
