package agent

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wirelit/agentdrive/protocol"
)

func TestCLINotFoundError_Message(t *testing.T) {
	err := &CLINotFoundError{Searched: []string{"/a/agent", "/b/agent"}}
	assert.Equal(t, "agent CLI not found (searched: /a/agent, /b/agent)", err.Error())
}

func TestTimeoutError_Message(t *testing.T) {
	err := &TimeoutError{Timeout: 2 * time.Second}
	assert.Equal(t, "agent CLI timed out after 2s", err.Error())
}

func TestExecutionError_Message(t *testing.T) {
	err := &ExecutionError{ExitCode: 4, Stderr: "auth expired\n"}
	assert.Equal(t, "agent CLI execution failed (exit code 4): auth expired", err.Error())
}

func TestExecutionError_Unwrap(t *testing.T) {
	cause := errors.New("spawn failed")
	err := &ExecutionError{ExitCode: -1, Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "spawn failed")
}

func TestStreamError_Unwrap(t *testing.T) {
	cause := errors.New("pipe broke")
	err := &StreamError{Cause: cause}
	assert.ErrorIs(t, err, cause)
}

func TestIsRecoverable_Classification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"timeout", &TimeoutError{Timeout: time.Second}, true},
		{"stream", &StreamError{Cause: errors.New("x")}, true},
		{"not found", &CLINotFoundError{}, false},
		{"execution", &ExecutionError{ExitCode: 1}, false},
		{"parse", &protocol.ParseError{Raw: "x"}, false},
		{"unknown other", errors.New("misc"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRecoverable(tt.err))
		})
	}
}
