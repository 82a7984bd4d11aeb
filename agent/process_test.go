package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBlocking_CapturesOutput(t *testing.T) {
	res, err := runBlocking(context.Background(), "/bin/sh",
		[]string{"-c", "echo out; echo err >&2"}, SessionConfig{})
	require.NoError(t, err)
	assert.Equal(t, "out\n", res.stdout)
	assert.Equal(t, "err\n", res.stderr)
	assert.Equal(t, 0, res.exitCode)
}

func TestRunBlocking_NonZeroExit(t *testing.T) {
	res, err := runBlocking(context.Background(), "/bin/sh",
		[]string{"-c", "echo boom >&2; exit 3"}, SessionConfig{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.exitCode)
	assert.Equal(t, "boom\n", res.stderr)
}

func TestRunBlocking_Timeout(t *testing.T) {
	start := time.Now()
	_, err := runBlocking(context.Background(), "/bin/sh",
		[]string{"-c", "sleep 30"}, SessionConfig{Timeout: 100 * time.Millisecond})
	require.Error(t, err)

	var timeout *TimeoutError
	require.True(t, errors.As(err, &timeout))
	assert.Equal(t, 100*time.Millisecond, timeout.Timeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRunBlocking_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := runBlocking(ctx, "/bin/sh", []string{"-c", "sleep 30"}, SessionConfig{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunBlocking_StartFailure(t *testing.T) {
	_, err := runBlocking(context.Background(), "/no/such/binary", nil, SessionConfig{})
	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, -1, execErr.ExitCode)
	assert.Error(t, execErr.Cause)
}

func TestRunBlocking_StderrHandler(t *testing.T) {
	var seen []byte
	handler := func(p []byte) { seen = append(seen, p...) }

	res, err := runBlocking(context.Background(), "/bin/sh",
		[]string{"-c", "echo live >&2"}, SessionConfig{StderrHandler: handler})
	require.NoError(t, err)
	// Handler sees the same bytes that land in the capture buffer.
	assert.Equal(t, "live\n", res.stderr)
	assert.Equal(t, "live\n", string(seen))
}

func TestRunBlocking_Env(t *testing.T) {
	res, err := runBlocking(context.Background(), "/bin/sh",
		[]string{"-c", "printf %s \"$AGENTDRIVE_TEST\""},
		SessionConfig{Env: map[string]string{"AGENTDRIVE_TEST": "v1"}})
	require.NoError(t, err)
	assert.Equal(t, "v1", res.stdout)
}

func TestExitStatus_SettleOnce(t *testing.T) {
	exit := newExitStatus()
	exit.settle(7, nil)
	exit.settle(9, errors.New("late"))

	code, err := exit.wait(context.Background())
	assert.Equal(t, 7, code)
	assert.NoError(t, err)
}

func TestExitStatus_WaitHonorsContext(t *testing.T) {
	exit := newExitStatus()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := exit.wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStartStreaming_KillSettlesExit(t *testing.T) {
	proc, err := startStreaming("/bin/sh", []string{"-c", "sleep 30"}, SessionConfig{})
	require.NoError(t, err)

	proc.kill()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	code, err := proc.exit.wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, -1, code)
}
