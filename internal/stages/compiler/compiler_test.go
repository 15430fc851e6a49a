//go:build !windows

package compiler_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/cp-helper/judge/internal/stages/compiler"
	pkgErr "github.com/cp-helper/judge/pkg/errors"
	"github.com/cp-helper/judge/pkg/languages"
	"github.com/cp-helper/judge/tests"
)

func shTarget(dir, script string) languages.ExecutionTarget {
	return languages.ExecutionTarget{
		WorkingDirectory: dir,
		Name:             "sh",
		SourceFile:       "main.sh",
		CompileCommand:   "sh",
		CompileArgs:      []string{"-c", script},
		RunCommand:       "sh",
		RunArgs:          []string{"main.sh"},
	}
}

func TestNewCompiler(t *testing.T) {
	c := NewCompiler(time.Second)
	if c == nil {
		t.Fatalf("NewCompiler returned nil")
	}
}

func TestCompileSolutionIfNeeded_NoCompileCommand(t *testing.T) {
	c := NewCompiler(time.Second)
	target := languages.ExecutionTarget{Name: "python", SourceFile: "main.py", RunCommand: "python3", WorkingDirectory: t.TempDir()}

	out, err := c.CompileSolutionIfNeeded(context.Background(), target, "session")
	if err != nil || out != "" {
		t.Fatalf("expected no-op, got %q, %v", out, err)
	}
}

func TestCompileSolutionIfNeeded_Success(t *testing.T) {
	dir := t.TempDir()
	tests.WriteFile(t, dir, "main.sh", "echo hi\n")

	c := NewCompiler(5 * time.Second)
	out, err := c.CompileSolutionIfNeeded(context.Background(), shTarget(dir, "cp main.sh main.bin"), "session")
	if err != nil {
		t.Fatalf("expected compile to succeed, got: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no diagnostics, got %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "main.bin")); err != nil {
		t.Fatalf("expected artifact in working dir: %v", err)
	}
}

func TestCompileSolutionIfNeeded_FailureReturnsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	c := NewCompiler(5 * time.Second)

	out, err := c.CompileSolutionIfNeeded(
		context.Background(),
		shTarget(dir, "echo 'main.cpp:1: error' >&2; echo note; exit 1"),
		"session",
	)
	if !errors.Is(err, pkgErr.ErrCompilationFailed) {
		t.Fatalf("expected ErrCompilationFailed, got: %v", err)
	}
	if out != "main.cpp:1: error\nnote\n" {
		t.Fatalf("expected stderr followed by stdout, got %q", out)
	}
}

func TestCompileSolutionIfNeeded_LaunchFailure(t *testing.T) {
	target := shTarget(t.TempDir(), "")
	target.CompileCommand = "no-such-compiler-9f3a"

	c := NewCompiler(5 * time.Second)
	out, err := c.CompileSolutionIfNeeded(context.Background(), target, "session")
	if !errors.Is(err, pkgErr.ErrCompilationFailed) {
		t.Fatalf("expected ErrCompilationFailed, got: %v", err)
	}
	if !strings.Contains(out, "no-such-compiler-9f3a") {
		t.Fatalf("expected launch message naming the compiler, got %q", out)
	}
}

func TestCompileSolutionIfNeeded_Timeout(t *testing.T) {
	c := NewCompiler(200 * time.Millisecond)
	out, err := c.CompileSolutionIfNeeded(context.Background(), shTarget(t.TempDir(), "sleep 5"), "session")
	if !errors.Is(err, pkgErr.ErrCompilationFailed) {
		t.Fatalf("expected ErrCompilationFailed, got: %v", err)
	}
	if !strings.Contains(out, "timed out") {
		t.Fatalf("expected timeout message, got %q", out)
	}
}
