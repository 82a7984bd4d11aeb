package agent

import (
	"context"
	"sync"
)

// Session drives the agent CLI for one logical conversation. Each call
// spawns its own subprocess; what persists across calls is the
// configuration and the latched session identifier, which later calls
// pass as --resume so the agent restores its conversational context.
//
// A Session does not serialize its own use: run one call at a time.
type Session struct {
	config SessionConfig

	mu        sync.Mutex
	sessionID string
}

// NewSession creates a Session with the given options.
func NewSession(opts ...SessionOption) *Session {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Session{config: config}
}

// ID returns the latched session identifier, or "" before the agent has
// reported one. A non-empty identifier is never displaced by an empty one.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessionID == "" {
		return s.config.Resume
	}
	return s.sessionID
}

func (s *Session) latch(sessionID string) {
	if sessionID == "" {
		return
	}
	s.mu.Lock()
	s.sessionID = sessionID
	s.mu.Unlock()
}

// Run executes one blocking turn: the CLI runs to completion under the
// configured timeout and its single JSON result is returned as a
// TurnResult. Fails with *CLINotFoundError, *TimeoutError, or
// *ExecutionError.
func (s *Session) Run(ctx context.Context, prompt string, attachments ...Attachment) (*TurnResult, error) {
	return s.runBlocking(ctx, promptSpec{Text: ComposePrompt(prompt, attachments)})
}

// RunFile is Run with the prompt read by the CLI from a file.
func (s *Session) RunFile(ctx context.Context, path string) (*TurnResult, error) {
	return s.runBlocking(ctx, promptSpec{File: path})
}

func (s *Session) runBlocking(ctx context.Context, prompt promptSpec) (*TurnResult, error) {
	if prompt.Text == "" && prompt.File == "" {
		return nil, ErrEmptyPrompt
	}

	cliPath, err := locateCLI(s.config.CLIPath)
	if err != nil {
		return nil, err
	}

	args := buildCLIArgs(s.config, prompt, formatJSON, s.ID())

	res, err := runBlocking(ctx, cliPath, args, s.config)
	if err != nil {
		return nil, err
	}

	if res.exitCode != 0 {
		return nil, &ExecutionError{
			ExitCode:  res.exitCode,
			Stderr:    res.stderr,
			SessionID: s.ID(),
		}
	}

	result, err := fromBlockingResponse(res.stdout)
	if err != nil {
		return nil, &ExecutionError{
			ExitCode:  res.exitCode,
			Stderr:    res.stderr,
			SessionID: s.ID(),
			Cause:     err,
		}
	}

	s.latch(result.SessionID)
	return result, nil
}

// Stream executes one streaming turn. The returned Stream exposes the
// live event sequence and the deferred TurnResult. Cancelling ctx closes
// the stream (killing the CLI); otherwise the caller bounds the run by
// consuming to completion or calling Close.
func (s *Session) Stream(ctx context.Context, prompt string, attachments ...Attachment) (*Stream, error) {
	full := ComposePrompt(prompt, attachments)
	if full == "" {
		return nil, ErrEmptyPrompt
	}

	cliPath, err := locateCLI(s.config.CLIPath)
	if err != nil {
		return nil, err
	}

	args := buildCLIArgs(s.config, promptSpec{Text: full}, formatStreamJSON, s.ID())

	proc, err := startStreaming(cliPath, args, s.config)
	if err != nil {
		return nil, err
	}

	stream := newStream(proc, s.config.EventBufferSize, s.latch)
	go stream.run()

	if ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				stream.Close()
			case <-stream.done:
			}
		}()
	}

	return stream, nil
}
