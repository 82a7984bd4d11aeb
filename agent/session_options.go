package agent

import (
	"encoding/json"
	"time"
)

// SessionConfig holds session configuration for the agent CLI.
type SessionConfig struct {
	StderrHandler   func([]byte)
	Env             map[string]string
	Model           string
	WorkDir         string
	CLIPath         string // explicit binary path, skips discovery of the default name
	ReasoningEffort string
	Resume          string // session identifier to resume
	OutputSchema    json.RawMessage
	AllowTools      []string
	DenyTools       []string
	ExtraArgs       []string
	Timeout         time.Duration // blocking mode only; 0 disables
	EventBufferSize int
	Force           bool // full autonomy: --force
}

// SessionOption is a functional option for configuring a Session.
type SessionOption func(*SessionConfig)

// WithModel sets the model to use.
func WithModel(model string) SessionOption {
	return func(c *SessionConfig) {
		c.Model = model
	}
}

// WithWorkDir sets the working directory for the CLI process.
func WithWorkDir(dir string) SessionOption {
	return func(c *SessionConfig) {
		c.WorkDir = dir
	}
}

// WithCLIPath sets an explicit CLI binary path, bypassing discovery.
func WithCLIPath(path string) SessionOption {
	return func(c *SessionConfig) {
		c.CLIPath = path
	}
}

// WithForce enables full autonomy (--force).
func WithForce() SessionOption {
	return func(c *SessionConfig) {
		c.Force = true
	}
}

// WithReasoningEffort sets the reasoning effort level.
func WithReasoningEffort(effort string) SessionOption {
	return func(c *SessionConfig) {
		c.ReasoningEffort = effort
	}
}

// WithAllowTools whitelists tools the agent may use.
func WithAllowTools(tools ...string) SessionOption {
	return func(c *SessionConfig) {
		c.AllowTools = tools
	}
}

// WithDenyTools blacklists tools the agent must not use.
func WithDenyTools(tools ...string) SessionOption {
	return func(c *SessionConfig) {
		c.DenyTools = tools
	}
}

// WithResume resumes an existing session by identifier.
func WithResume(sessionID string) SessionOption {
	return func(c *SessionConfig) {
		c.Resume = sessionID
	}
}

// WithTimeout sets the blocking-mode wall-clock timeout. Zero disables.
// Streaming calls are bounded by the caller consuming or closing the
// stream instead.
func WithTimeout(d time.Duration) SessionOption {
	return func(c *SessionConfig) {
		c.Timeout = d
	}
}

// WithEnv sets additional environment variables for the CLI process.
func WithEnv(env map[string]string) SessionOption {
	return func(c *SessionConfig) {
		c.Env = env
	}
}

// WithExtraArgs sets additional CLI arguments (escape hatch).
func WithExtraArgs(args ...string) SessionOption {
	return func(c *SessionConfig) {
		c.ExtraArgs = args
	}
}

// WithEventBufferSize sets the event channel buffer size.
func WithEventBufferSize(size int) SessionOption {
	return func(c *SessionConfig) {
		c.EventBufferSize = size
	}
}

// WithStderrHandler sets a handler for CLI stderr output (blocking mode).
func WithStderrHandler(h func([]byte)) SessionOption {
	return func(c *SessionConfig) {
		c.StderrHandler = h
	}
}

// WithStructuredOutput asks the CLI to shape its final response to the
// given JSON schema. See OutputSchema for generating one from a Go type.
func WithStructuredOutput(schema json.RawMessage) SessionOption {
	return func(c *SessionConfig) {
		c.OutputSchema = schema
	}
}

// defaultConfig returns the default configuration.
func defaultConfig() SessionConfig {
	return SessionConfig{
		EventBufferSize: 100,
	}
}
