//go:build linux

package process_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	. "github.com/cp-helper/judge/internal/process"
	"github.com/cp-helper/judge/tests"
)

// processGone treats a missing /proc entry and an unreaped zombie alike.
func processGone(pid int) bool {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return true
	}
	fields := strings.Fields(string(data[strings.LastIndexByte(string(data), ')')+1:]))
	return len(fields) > 0 && (fields[0] == "Z" || fields[0] == "X")
}

func waitGone(t *testing.T, pid int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !processGone(pid) {
		if time.Now().After(deadline) {
			t.Fatalf("process %d outlived Run", pid)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestRun_CompletedRunKillsLingeringDescendant(t *testing.T) {
	defer tests.VerifyNoLeaks(t)

	res, err := Run(context.Background(), Spec{
		Command: "sh",
		Args:    []string{"-c", "sleep 30 & echo $!"},
		Timeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != Completed {
		t.Fatalf("expected completed, got %v", res.Outcome)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(res.Stdout))
	if err != nil {
		t.Fatalf("unexpected stdout %q: %v", res.Stdout, err)
	}
	waitGone(t, pid)
}

func TestRun_TimeoutKillsForkedChild(t *testing.T) {
	defer tests.VerifyNoLeaks(t)

	dir := t.TempDir()
	res, err := Run(context.Background(), Spec{
		Command: "sh",
		Args:    []string{"-c", "sleep 30 & echo $! > child.pid; wait"},
		Dir:     dir,
		Timeout: 300 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != TimedOut {
		t.Fatalf("expected timeout, got %v", res.Outcome)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(tests.ReadFile(t, filepath.Join(dir, "child.pid"))))
	if err != nil {
		t.Fatalf("bad pid file: %v", err)
	}
	waitGone(t, pid)
}
