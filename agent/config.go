package agent

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig holds on-disk defaults for a Session, typically from
// ~/.config/agentdrive/config.yaml. Options applied at NewSession time
// layer on top of it.
type FileConfig struct {
	Model           string   `yaml:"model"`
	CLIPath         string   `yaml:"cli_path"`
	ReasoningEffort string   `yaml:"reasoning_effort"`
	AllowTools      []string `yaml:"allow_tools"`
	DenyTools       []string `yaml:"deny_tools"`
	TimeoutMs       int64    `yaml:"timeout_ms"`
	Force           bool     `yaml:"force"`
}

// LoadFileConfig reads a YAML config file. A missing file yields an
// empty config rather than an error.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &FileConfig{}, nil
	}
	if err != nil {
		return nil, err
	}

	var config FileConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Options renders the file config as session options; zero-valued fields
// produce no option, so later options and built-in defaults still apply.
func (c *FileConfig) Options() []SessionOption {
	if c == nil {
		return nil
	}

	var opts []SessionOption
	if c.Model != "" {
		opts = append(opts, WithModel(c.Model))
	}
	if c.CLIPath != "" {
		opts = append(opts, WithCLIPath(c.CLIPath))
	}
	if c.ReasoningEffort != "" {
		opts = append(opts, WithReasoningEffort(c.ReasoningEffort))
	}
	if len(c.AllowTools) > 0 {
		opts = append(opts, WithAllowTools(c.AllowTools...))
	}
	if len(c.DenyTools) > 0 {
		opts = append(opts, WithDenyTools(c.DenyTools...))
	}
	if c.TimeoutMs > 0 {
		opts = append(opts, WithTimeout(time.Duration(c.TimeoutMs)*time.Millisecond))
	}
	if c.Force {
		opts = append(opts, WithForce())
	}
	return opts
}
