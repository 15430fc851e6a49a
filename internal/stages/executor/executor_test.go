//go:build !windows

package executor_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/cp-helper/judge/internal/stages/executor"
	"github.com/cp-helper/judge/internal/stages/verifier"
	"github.com/cp-helper/judge/pkg/languages"
	"github.com/cp-helper/judge/pkg/solution"
	"github.com/cp-helper/judge/tests"
)

func shTarget(args ...string) languages.ExecutionTarget {
	return languages.ExecutionTarget{
		Name:       "sh",
		SourceFile: "main.sh",
		RunCommand: "sh",
		RunArgs:    args,
	}
}

func inDir(target languages.ExecutionTarget, dir string) languages.ExecutionTarget {
	target.WorkingDirectory = dir
	return target
}

func newExecutor() Executor {
	return NewExecutor(verifier.NewDefaultVerifier())
}

func TestRunTestCase_Accepted(t *testing.T) {
	defer tests.VerifyNoLeaks(t)

	v, err := newExecutor().RunTestCase(
		context.Background(),
		inDir(shTarget("-c", "echo hello"), t.TempDir()),
		solution.TestCase{Input: "", Output: "hello"},
		2*time.Second,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.StatusID != solution.Accepted || v.Status != "Accepted" {
		t.Fatalf("expected Accepted, got %+v", v)
	}
	if v.Output != "hello\n" {
		t.Fatalf("unexpected output %q", v.Output)
	}
	if v.TimeMs <= 0 {
		t.Fatalf("expected positive elapsed time, got %f", v.TimeMs)
	}
}

func TestRunTestCase_WrongAnswer(t *testing.T) {
	defer tests.VerifyNoLeaks(t)

	v, err := newExecutor().RunTestCase(
		context.Background(),
		inDir(shTarget("-c", "read a b; echo $((a - b))"), t.TempDir()),
		solution.TestCase{Input: "2 3\n", Output: "5"},
		2*time.Second,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.StatusID != solution.WrongAnswer {
		t.Fatalf("expected WrongAnswer, got %+v", v)
	}
	if strings.TrimSpace(v.Output) != "-1" {
		t.Fatalf("unexpected output %q", v.Output)
	}
	if v.Input != "2 3\n" || v.Answer != "5" {
		t.Fatalf("input and answer must be carried over, got %+v", v)
	}
}

func TestRunTestCase_NonZeroExit(t *testing.T) {
	defer tests.VerifyNoLeaks(t)

	v, err := newExecutor().RunTestCase(
		context.Background(),
		inDir(shTarget("-c", "echo partial; echo boom >&2; exit 1"), t.TempDir()),
		solution.TestCase{Output: "partial"},
		2*time.Second,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.StatusID != solution.RuntimeErrorNonZeroExit {
		t.Fatalf("expected NZEC, got %+v", v)
	}
	if v.Output != "boom\n" {
		t.Fatalf("expected stderr as output, got %q", v.Output)
	}
}

func TestRunTestCase_TimeLimitExceeded(t *testing.T) {
	defer tests.VerifyNoLeaks(t)

	limit := 300 * time.Millisecond
	v, err := newExecutor().RunTestCase(
		context.Background(),
		inDir(shTarget("-c", "echo early; sleep 10"), t.TempDir()),
		solution.TestCase{Output: "early"},
		limit,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.StatusID != solution.TimeLimitExceeded {
		t.Fatalf("expected TLE, got %+v", v)
	}
	if v.Output != "" {
		t.Fatalf("TLE must not report output, got %q", v.Output)
	}
	if v.TimeMs < float64(limit.Milliseconds()) {
		t.Fatalf("elapsed %fms below limit", v.TimeMs)
	}
}

func TestRunTestCase_LaunchFailure(t *testing.T) {
	defer tests.VerifyNoLeaks(t)

	target := languages.ExecutionTarget{Name: "bin", SourceFile: "main.c", RunCommand: "./missing-binary"}
	v, err := newExecutor().RunTestCase(context.Background(), inDir(target, t.TempDir()), solution.TestCase{}, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.StatusID != solution.RuntimeErrorLaunchFailure {
		t.Fatalf("expected launch failure verdict, got %+v", v)
	}
	if !strings.Contains(v.Output, "missing-binary") {
		t.Fatalf("expected description naming the command, got %q", v.Output)
	}
}

func TestRunTestCase_RelativeCommandResolvesInDir(t *testing.T) {
	defer tests.VerifyNoLeaks(t)

	dir := t.TempDir()
	path := tests.WriteFile(t, dir, "run.sh", "#!/bin/sh\necho local\n")
	if err := makeExecutable(path); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}

	target := languages.ExecutionTarget{Name: "bin", SourceFile: "run.sh", RunCommand: "./run.sh", WorkingDirectory: dir}
	v, err := newExecutor().RunTestCase(context.Background(), target, solution.TestCase{Output: "local"}, 2*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.StatusID != solution.Accepted {
		t.Fatalf("expected Accepted, got %+v", v)
	}
}

func TestRunTestCase_ContextCancelled(t *testing.T) {
	defer tests.VerifyNoLeaks(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := newExecutor().RunTestCase(ctx, inDir(shTarget("-c", "sleep 10"), t.TempDir()), solution.TestCase{}, 0)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}
