package agent

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blockingSuccess = `cat <<'EOF'
{"type":"result","subtype":"success","result":"all done","num_turns":3,"duration_ms":2100,"is_error":false,"session_id":"s-run"}
EOF`

func TestSessionRun(t *testing.T) {
	session := NewSession(WithCLIPath(fakeCLI(t, blockingSuccess)))

	result, err := session.Run(testCtx(t), "do the thing")
	require.NoError(t, err)
	assert.Equal(t, "all done", result.FinalResponse)
	assert.Equal(t, "s-run", result.SessionID)
	assert.Equal(t, 3, result.NumTurns)
	assert.Equal(t, int64(2100), result.DurationMs)
	assert.False(t, result.IsError)
	assert.Empty(t, result.Items)

	// The reported session identifier sticks to the Session.
	assert.Equal(t, "s-run", session.ID())
}

func TestSessionRun_EmptyPrompt(t *testing.T) {
	session := NewSession(WithCLIPath(fakeCLI(t, blockingSuccess)))
	_, err := session.Run(testCtx(t), "")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestSessionRun_CLINotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	session := NewSession()

	_, err := session.Run(testCtx(t), "go")
	var notFound *CLINotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestSessionRun_NonZeroExit(t *testing.T) {
	session := NewSession(WithCLIPath(fakeCLI(t, "echo auth expired >&2; exit 4")))

	_, err := session.Run(testCtx(t), "go")
	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, 4, execErr.ExitCode)
	assert.Equal(t, "auth expired\n", execErr.Stderr)
}

func TestSessionRun_GarbageStdout(t *testing.T) {
	session := NewSession(WithCLIPath(fakeCLI(t, "echo not json at all")))

	_, err := session.Run(testCtx(t), "go")
	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, 0, execErr.ExitCode)
	assert.Error(t, execErr.Cause)
}

func TestSessionRun_TurnFailedResult(t *testing.T) {
	body := `cat <<'EOF'
{"type":"result","subtype":"error","error":"quota exhausted","code":"QUOTA","session_id":"s-f"}
EOF`
	session := NewSession(WithCLIPath(fakeCLI(t, body)))

	result, err := session.Run(testCtx(t), "go")
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "quota exhausted", result.FinalResponse)
	assert.Equal(t, "s-f", result.SessionID)
}

func TestSessionRunFile(t *testing.T) {
	promptFile := filepath.Join(t.TempDir(), "prompt.md")
	require.NoError(t, os.WriteFile(promptFile, []byte("long prompt"), 0o644))

	argsFile := filepath.Join(t.TempDir(), "args")
	body := `printf '%s\n' "$@" > ` + argsFile + "\n" + blockingSuccess
	session := NewSession(WithCLIPath(fakeCLI(t, body)))

	_, err := session.RunFile(testCtx(t), promptFile)
	require.NoError(t, err)

	argv, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, strings.Split(string(argv), "\n"), "--prompt-file")
	assert.Contains(t, strings.Split(string(argv), "\n"), promptFile)
}

func TestSessionRun_ResumePassedOnSecondCall(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	body := `printf '%s\n' "$@" > ` + argsFile + "\n" + blockingSuccess
	session := NewSession(WithCLIPath(fakeCLI(t, body)))

	ctx := testCtx(t)
	_, err := session.Run(ctx, "first")
	require.NoError(t, err)
	_, err = session.Run(ctx, "second")
	require.NoError(t, err)

	argv, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	lines := strings.Split(string(argv), "\n")
	assert.Contains(t, lines, "--resume")
	assert.Contains(t, lines, "s-run")
}

func TestSessionID_ConfiguredResume(t *testing.T) {
	session := NewSession(WithResume("s-old"))
	assert.Equal(t, "s-old", session.ID())
}

func TestQuery(t *testing.T) {
	result, err := Query(testCtx(t), "go", WithCLIPath(fakeCLI(t, blockingSuccess)))
	require.NoError(t, err)
	assert.Equal(t, "all done", result.FinalResponse)
}

func TestQueryStream(t *testing.T) {
	ctx := testCtx(t)
	stream, err := QueryStream(ctx, "go", WithCLIPath(fakeCLI(t, happyTurn)))
	require.NoError(t, err)

	events := collectEvents(t, stream)
	assert.Len(t, events, 5)

	result, err := stream.Result(ctx)
	require.NoError(t, err)
	assert.Equal(t, "done", result.FinalResponse)
}
