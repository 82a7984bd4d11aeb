package agent

// outputFormat selects the CLI's stdout shape.
type outputFormat string

const (
	formatJSON       outputFormat = "json"        // one result object, blocking mode
	formatStreamJSON outputFormat = "stream-json" // NDJSON events, streaming mode
)

// promptSpec is either inline prompt text or a path to a prompt file.
type promptSpec struct {
	Text string
	File string
}

// buildCLIArgs maps the merged configuration to the CLI's argument list.
//
// The CLI contract is: agent chat [-p <prompt> | --prompt-file <path>]
// --output-format <fmt> [options]. Working directory is not an argument;
// the runner sets the process cwd.
func buildCLIArgs(config SessionConfig, prompt promptSpec, format outputFormat, resume string) []string {
	args := []string{"chat"}

	if prompt.File != "" {
		args = append(args, "--prompt-file", prompt.File)
	} else {
		args = append(args, "-p", prompt.Text)
	}

	args = append(args, "--output-format", string(format))

	if config.Model != "" {
		args = append(args, "--model", config.Model)
	}

	if resume != "" {
		args = append(args, "--resume", resume)
	}

	if config.Force {
		args = append(args, "--force")
	}

	if config.ReasoningEffort != "" {
		args = append(args, "--reasoning-effort", config.ReasoningEffort)
	}

	for _, tool := range config.AllowTools {
		args = append(args, "--allow-tool", tool)
	}

	for _, tool := range config.DenyTools {
		args = append(args, "--deny-tool", tool)
	}

	if len(config.OutputSchema) > 0 {
		args = append(args, "--output-schema", string(config.OutputSchema))
	}

	// Extra args (escape hatch)
	args = append(args, config.ExtraArgs...)

	return args
}
