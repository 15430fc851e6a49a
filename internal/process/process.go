// Package process runs one external command with captured output and an
// optional wall-clock watchdog. Compile and run steps both go through Run so
// that kill and reap logic lives in a single place.
package process

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/cp-helper/judge/pkg/constants"
	pkgErr "github.com/cp-helper/judge/pkg/errors"
)

type Outcome int

const (
	// Completed means the process exited on its own.
	Completed Outcome = iota
	// TimedOut means the watchdog fired and the process was killed.
	TimedOut
)

func (o Outcome) String() string {
	if o == TimedOut {
		return "timed_out"
	}
	return "completed"
}

type Spec struct {
	Command string
	Args    []string
	Dir     string
	Stdin   string
	// Timeout of zero leaves the run bounded only by ctx.
	Timeout time.Duration
}

type Result struct {
	Outcome  Outcome
	ExitCode int
	Stdout   string
	Stderr   string
	Elapsed  time.Duration
}

// Run spawns spec.Command, feeds it spec.Stdin and waits for it to exit, for
// spec.Timeout to elapse or for ctx to be cancelled. Outcome, exit code and
// elapsed time come from the exit of the spawned process itself. Whatever is
// left of its process group afterwards is killed before Run returns, so no
// descendant outlives the call even when it still holds the output pipes.
//
// A process that cannot be started yields an error wrapping ErrLaunchFailed.
// Cancellation of ctx is reported as ctx.Err() after the child is reaped.
func Run(ctx context.Context, spec Spec) (Result, error) {
	cmd := exec.Command(spec.Command, spec.Args...)
	cmd.Dir = spec.Dir
	setupProcessGroup(cmd)

	p, err := openPipes()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s", pkgErr.ErrProcessIO, err)
	}
	cmd.Stdin = p.stdinR
	cmd.Stdout = p.stdoutW
	cmd.Stderr = p.stderrW

	start := time.Now()
	if err := cmd.Start(); err != nil {
		p.closeChildEnds()
		p.closeParentEnds()
		return Result{Elapsed: time.Since(start)}, fmt.Errorf("%w: %s", pkgErr.ErrLaunchFailed, err)
	}
	p.closeChildEnds()

	var stdout, stderr bytes.Buffer
	copied := p.pump(spec.Stdin, &stdout, &stderr)

	exited := make(chan waitResult, 1)
	go func() {
		state, err := cmd.Process.Wait()
		exited <- waitResult{state: state, err: err, at: time.Now()}
	}()

	var timer <-chan time.Time
	if spec.Timeout > 0 {
		t := time.NewTimer(spec.Timeout)
		defer t.Stop()
		timer = t.C
	}

	select {
	case res := <-exited:
		_ = killProcessGroup(cmd)
		p.drain(copied)
		elapsed := res.at.Sub(start)
		if res.err != nil {
			return Result{Elapsed: elapsed}, fmt.Errorf("%w: %s", pkgErr.ErrProcessIO, res.err)
		}
		return Result{
			Outcome:  Completed,
			ExitCode: res.state.ExitCode(),
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			Elapsed:  elapsed,
		}, nil

	case <-timer:
		elapsed := time.Since(start)
		_ = killProcessGroup(cmd)
		<-exited
		p.drain(copied)
		return Result{
			Outcome:  TimedOut,
			ExitCode: -1,
			Elapsed:  elapsed,
		}, nil

	case <-ctx.Done():
		_ = killProcessGroup(cmd)
		<-exited
		p.drain(copied)
		return Result{Elapsed: time.Since(start)}, ctx.Err()
	}
}

type waitResult struct {
	state *os.ProcessState
	err   error
	at    time.Time
}

// pipes holds both ends of the child's standard streams. The child ends are
// closed in the parent right after Start.
type pipes struct {
	stdinR, stdinW   *os.File
	stdoutR, stdoutW *os.File
	stderrR, stderrW *os.File
}

func openPipes() (*pipes, error) {
	p := &pipes{}
	var err error
	if p.stdinR, p.stdinW, err = os.Pipe(); err != nil {
		return nil, err
	}
	if p.stdoutR, p.stdoutW, err = os.Pipe(); err != nil {
		closeFiles(p.stdinR, p.stdinW)
		return nil, err
	}
	if p.stderrR, p.stderrW, err = os.Pipe(); err != nil {
		closeFiles(p.stdinR, p.stdinW, p.stdoutR, p.stdoutW)
		return nil, err
	}
	return p, nil
}

func (p *pipes) closeChildEnds() {
	closeFiles(p.stdinR, p.stdoutW, p.stderrW)
}

func (p *pipes) closeParentEnds() {
	closeFiles(p.stdinW, p.stdoutR, p.stderrR)
}

// pump writes stdin and collects both output streams. The returned channel is
// closed once all three copies have finished.
func (p *pipes) pump(stdin string, stdout, stderr *bytes.Buffer) <-chan struct{} {
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		_, _ = io.WriteString(p.stdinW, stdin)
		_ = p.stdinW.Close()
	}()
	go func() {
		defer wg.Done()
		_, _ = io.Copy(stdout, p.stdoutR)
	}()
	go func() {
		defer wg.Done()
		_, _ = io.Copy(stderr, p.stderrR)
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	return done
}

// drain waits for the copies to hit EOF. A writer that escaped the process
// group can keep a pipe open forever, so after ProcessWaitDelaySec the parent
// ends are closed and whatever was read so far is kept.
func (p *pipes) drain(copied <-chan struct{}) {
	t := time.NewTimer(constants.ProcessWaitDelaySec * time.Second)
	defer t.Stop()
	select {
	case <-copied:
	case <-t.C:
	}
	p.closeParentEnds()
	<-copied
}

func closeFiles(files ...*os.File) {
	for _, f := range files {
		if f != nil {
			_ = f.Close()
		}
	}
}
