//go:build !windows

package process_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/cp-helper/judge/internal/process"
	pkgErr "github.com/cp-helper/judge/pkg/errors"
	"github.com/cp-helper/judge/tests"
)

func TestRun_CapturesStdout(t *testing.T) {
	defer tests.VerifyNoLeaks(t)

	res, err := Run(context.Background(), Spec{Command: "echo", Args: []string{"hello"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != Completed || res.ExitCode != 0 {
		t.Fatalf("expected completed with exit 0, got %v/%d", res.Outcome, res.ExitCode)
	}
	if res.Stdout != "hello\n" {
		t.Fatalf("unexpected stdout %q", res.Stdout)
	}
}

func TestRun_FeedsStdin(t *testing.T) {
	defer tests.VerifyNoLeaks(t)

	res, err := Run(context.Background(), Spec{Command: "cat", Stdin: "1 2 3\n4 5 6\n", Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stdout != "1 2 3\n4 5 6\n" {
		t.Fatalf("unexpected stdout %q", res.Stdout)
	}
}

func TestRun_NonZeroExitIsCompleted(t *testing.T) {
	defer tests.VerifyNoLeaks(t)

	res, err := Run(context.Background(), Spec{
		Command: "sh",
		Args:    []string{"-c", "printf boom >&2; exit 3"},
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != Completed {
		t.Fatalf("expected completed, got %v", res.Outcome)
	}
	if res.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", res.ExitCode)
	}
	if res.Stderr != "boom" {
		t.Fatalf("unexpected stderr %q", res.Stderr)
	}
}

func TestRun_LaunchFailure(t *testing.T) {
	defer tests.VerifyNoLeaks(t)

	_, err := Run(context.Background(), Spec{Command: "definitely-not-a-real-command-1b7e"})
	if !errors.Is(err, pkgErr.ErrLaunchFailed) {
		t.Fatalf("expected ErrLaunchFailed, got %v", err)
	}
}

func TestRun_RunsInDir(t *testing.T) {
	defer tests.VerifyNoLeaks(t)

	dir := t.TempDir()
	res, err := Run(context.Background(), Spec{Command: "pwd", Dir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(res.Stdout), strings.TrimPrefix(dir, "/private")) {
		t.Fatalf("expected to run in %s, got %q", dir, res.Stdout)
	}
}

func TestRun_TimeoutKillsProcessGroup(t *testing.T) {
	defer tests.VerifyNoLeaks(t)

	limit := 200 * time.Millisecond
	// The shell forks sleep, which inherits the output pipes; only a group
	// kill lets Run return without waiting for the pipe delay.
	res, err := Run(context.Background(), Spec{
		Command: "sh",
		Args:    []string{"-c", "sleep 10; echo done"},
		Timeout: limit,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != TimedOut {
		t.Fatalf("expected timeout, got %v", res.Outcome)
	}
	if res.Elapsed < limit {
		t.Fatalf("elapsed %s shorter than limit %s", res.Elapsed, limit)
	}
	if res.Elapsed > limit+800*time.Millisecond {
		t.Fatalf("elapsed %s exceeds limit plus slack", res.Elapsed)
	}
	if res.Stdout != "" {
		t.Fatalf("expected no output from killed process, got %q", res.Stdout)
	}
}

func TestRun_BackgroundDescendantDoesNotHoldRun(t *testing.T) {
	defer tests.VerifyNoLeaks(t)

	// The shell exits at once while sleep keeps its stdout open.
	res, err := Run(context.Background(), Spec{
		Command: "sh",
		Args:    []string{"-c", "echo hi; sleep 30 &"},
		Timeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != Completed || res.ExitCode != 0 {
		t.Fatalf("expected completed with exit 0, got %v/%d", res.Outcome, res.ExitCode)
	}
	if res.Stdout != "hi\n" {
		t.Fatalf("unexpected stdout %q", res.Stdout)
	}
	if res.Elapsed > 500*time.Millisecond {
		t.Fatalf("elapsed %s should reflect the shell's exit", res.Elapsed)
	}
}

func TestRun_ContextCancel(t *testing.T) {
	defer tests.VerifyNoLeaks(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Run(ctx, Spec{Command: "sleep", Args: []string{"10"}})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline error, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("cancellation did not stop the process promptly")
	}
}

func TestOutcomeString(t *testing.T) {
	if Completed.String() != "completed" || TimedOut.String() != "timed_out" {
		t.Fatalf("unexpected outcome labels %q %q", Completed, TimedOut)
	}
}
