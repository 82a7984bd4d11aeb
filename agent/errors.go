package agent

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wirelit/agentdrive/protocol"
)

// ErrEmptyPrompt is returned when a call is made with no prompt text,
// attachments, or prompt file.
var ErrEmptyPrompt = errors.New("prompt is empty")

// CLINotFoundError indicates the agent CLI binary was not found in any
// searched location. Searched preserves the attempt order.
type CLINotFoundError struct {
	Searched []string
}

func (e *CLINotFoundError) Error() string {
	return fmt.Sprintf("agent CLI not found (searched: %s)", strings.Join(e.Searched, ", "))
}

// TimeoutError indicates a blocking call exceeded its wall-clock budget.
// The process was killed as a side effect.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("agent CLI timed out after %s", e.Timeout)
}

// ExecutionError indicates the CLI process failed: non-zero exit in
// blocking mode, non-zero exit with no streamed events in streaming mode,
// or blocking output that was not a result payload. Stderr is empty in
// streaming mode, where stderr is not captured.
type ExecutionError struct {
	Cause     error
	Stderr    string
	SessionID string
	ExitCode  int
}

func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("agent CLI execution failed (exit code %d)", e.ExitCode)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Stderr != "" {
		msg += ": " + strings.TrimSpace(e.Stderr)
	}
	return msg
}

func (e *ExecutionError) Unwrap() error { return e.Cause }

// StreamError indicates the CLI's output stream itself failed, as opposed
// to a content problem on a record.
type StreamError struct {
	Cause error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("agent output stream failed: %v", e.Cause)
}

func (e *StreamError) Unwrap() error { return e.Cause }

// IsRecoverable returns true if retrying the call could succeed. The SDK
// never retries on its own; this only classifies for callers.
func IsRecoverable(err error) bool {
	if err == nil {
		return true
	}

	var notFound *CLINotFoundError
	if errors.As(err, &notFound) {
		return false
	}

	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return false
	}

	var parseErr *protocol.ParseError
	if errors.As(err, &parseErr) {
		return false
	}

	// Timeouts and stream failures are environmental; a retry may succeed.
	return true
}
