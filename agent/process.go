package agent

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/wirelit/agentdrive/internal/procattr"
)

// gracePeriod is how long Stop-style kills wait between SIGTERM and SIGKILL.
const gracePeriod = 500 * time.Millisecond

// exitStatus resolves a process exit exactly once. It tolerates the exit
// arriving before any waiter attaches: settle keeps the first value and
// every later call is a no-op, so both the reap-on-attach path and the
// kill path can feed it safely.
type exitStatus struct {
	done chan struct{}
	once sync.Once
	code int
	err  error
}

func newExitStatus() *exitStatus {
	return &exitStatus{done: make(chan struct{})}
}

func (s *exitStatus) settle(code int, err error) {
	s.once.Do(func() {
		s.code = code
		s.err = err
		close(s.done)
	})
}

func (s *exitStatus) wait(ctx context.Context) (int, error) {
	select {
	case <-s.done:
		return s.code, s.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// exitCodeOf converts a cmd.Wait error into an exit code. Signal-killed
// processes report -1.
func exitCodeOf(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

// execResult is the captured output of a blocking run.
type execResult struct {
	stdout   string
	stderr   string
	exitCode int
}

// writerFunc adapts a stderr handler to io.Writer for concurrent tee-ing.
type writerFunc func([]byte)

func (f writerFunc) Write(p []byte) (int, error) {
	f(p)
	return len(p), nil
}

// runBlocking spawns the CLI and waits for it to exit, collecting stdout
// and stderr concurrently with the exit wait so that neither pipe can
// fill up and deadlock the process.
//
// Stdin is inherited from the parent on purpose: the CLI may need the
// terminal for its own authentication prompts.
//
// If timeout is non-zero and elapses first, the process group is killed
// and a *TimeoutError is returned; partial output is discarded.
func runBlocking(ctx context.Context, cliPath string, args []string, config SessionConfig) (*execResult, error) {
	cmd := exec.Command(cliPath, args...)
	cmd.Dir = config.WorkDir
	cmd.Stdin = os.Stdin
	cmd.Env = mergedEnv(config.Env)
	procattr.Apply(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if config.StderrHandler != nil {
		cmd.Stderr = io.MultiWriter(&stderr, writerFunc(config.StderrHandler))
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Start(); err != nil {
		return nil, &ExecutionError{ExitCode: -1, Cause: err}
	}

	exit := newExitStatus()
	go func() {
		code, err := exitCodeOf(cmd.Wait())
		exit.settle(code, err)
	}()

	var expired <-chan time.Time
	if config.Timeout > 0 {
		timer := time.NewTimer(config.Timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-exit.done:
	case <-expired:
		killGroup(cmd, exit)
		return nil, &TimeoutError{Timeout: config.Timeout}
	case <-ctx.Done():
		killGroup(cmd, exit)
		return nil, ctx.Err()
	}

	// Wait has returned, so the stdout/stderr copiers are finished and
	// the buffers are safe to read.
	code, _ := exit.wait(ctx)
	return &execResult{
		stdout:   stdout.String(),
		stderr:   stderr.String(),
		exitCode: code,
	}, nil
}

// process is a live streaming-mode subprocess: a stdout pipe feeding the
// decoder, plus the exit status and kill capability.
type process struct {
	cmd      *exec.Cmd
	stdout   io.ReadCloser
	exit     *exitStatus
	reapOnce sync.Once
}

// startStreaming spawns the CLI with stdout piped for decoding. Stderr is
// deliberately not captured in this mode. No timeout applies: the caller
// bounds the run by consuming the stream or closing it.
func startStreaming(cliPath string, args []string, config SessionConfig) (*process, error) {
	cmd := exec.Command(cliPath, args...)
	cmd.Dir = config.WorkDir
	cmd.Stdin = os.Stdin
	cmd.Env = mergedEnv(config.Env)
	procattr.Apply(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &ExecutionError{ExitCode: -1, Cause: err}
	}

	if err := cmd.Start(); err != nil {
		return nil, &ExecutionError{ExitCode: -1, Cause: err}
	}

	return &process{
		cmd:    cmd,
		stdout: stdout,
		exit:   newExitStatus(),
	}, nil
}

// reap starts the exit-status collector. It must only run after stdout
// has been drained: cmd.Wait closes the pipe, and calling it while the
// decoder still reads would truncate buffered output. Idempotent.
func (p *process) reap() {
	p.reapOnce.Do(func() {
		go func() {
			code, err := exitCodeOf(p.cmd.Wait())
			p.exit.settle(code, err)
		}()
	})
}

// kill terminates the process group: SIGTERM, grace period, SIGKILL.
// Safe to call regardless of whether the process already exited.
func (p *process) kill() {
	if p.cmd.Process == nil {
		return
	}

	_ = procattr.Signal(p.cmd.Process, syscall.SIGTERM)
	p.reap()

	select {
	case <-p.exit.done:
		return
	case <-time.After(gracePeriod):
	}

	_ = procattr.Kill(p.cmd.Process)

	select {
	case <-p.exit.done:
	case <-time.After(100 * time.Millisecond):
	}
}

// killGroup is the blocking-mode variant of kill, reusing an already
// running exit collector.
func killGroup(cmd *exec.Cmd, exit *exitStatus) {
	if cmd.Process == nil {
		return
	}

	_ = procattr.Signal(cmd.Process, syscall.SIGTERM)

	select {
	case <-exit.done:
		return
	case <-time.After(gracePeriod):
	}

	_ = procattr.Kill(cmd.Process)
	<-exit.done
}

func mergedEnv(extra map[string]string) []string {
	env := os.Environ()
	for k, v := range extra {
		env = append(env, k+"="+v)
	}
	return env
}
