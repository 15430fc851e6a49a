package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cp-helper/judge/internal/scheduler"
	"github.com/cp-helper/judge/internal/storage"
	"github.com/cp-helper/judge/pkg/constants"
	pkgErr "github.com/cp-helper/judge/pkg/errors"
	"github.com/cp-helper/judge/pkg/solution"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchCmd judges the solution every time it is saved
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the tests every time the solution file is saved",
	Long: `Watches the solution of the current problem and starts a judge session after
every save. Saves that arrive while a session is running are ignored.
Requires run_on_save in the settings file.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if !a.settings.Toggle.RunOnSave {
		return errors.New("run_on_save is disabled in the settings file")
	}

	p, err := a.loadProblem()
	if err != nil {
		return err
	}
	path, err := a.solutionPath(p)
	if err != nil {
		return err
	}
	target, err := a.settings.Target(language)
	if err != nil {
		return err
	}
	j, err := a.newJudge(target)
	if err != nil {
		return err
	}
	sched := scheduler.NewScheduler(j)
	defer sched.Wait()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often save by renaming over the file, so watch its directory.
	full := filepath.Clean(storage.ResolvePath(a.cfg.Workspace, path))
	if err := watcher.Add(filepath.Dir(full)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(full), err)
	}
	fmt.Fprintf(os.Stderr, "Watching %s\n", path)

	debounce := time.NewTicker(constants.WatchDebounceMs * time.Millisecond)
	defer debounce.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Stopping watch")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != full {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				pending = true
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Errorf("Watcher error: %s", err)

		case <-debounce.C:
			if pending {
				pending = false
				a.startSession(ctx, sched, path)
			}
		}
	}
}

// startSession bundles the saved file and hands it to the scheduler. The
// problem is reloaded so a fetch during watch takes effect.
func (a *app) startSession(ctx context.Context, sched scheduler.Scheduler, path string) {
	p, err := a.loadProblem()
	if err != nil {
		a.logger.Errorf("Failed to load problem: %s", err)
		return
	}
	bundled, target, err := a.bundle(path)
	if err != nil {
		a.logger.Errorf("Failed to bundle %s: %s", path, err)
		return
	}

	err = sched.Submit(ctx, newRequest(target, bundled, p), func(verdicts []solution.Verdict, err error) {
		if err := a.report(ctx, p, path, bundled, verdicts, err); err != nil {
			a.logger.Error(err)
		}
	})
	if err != nil && !errors.Is(err, pkgErr.ErrSessionBusy) {
		a.logger.Errorf("Failed to start session: %s", err)
	}
}
