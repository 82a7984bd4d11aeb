// agentdrive - run prompts against the agent CLI from the command line.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wirelit/agentdrive/agent"
	"github.com/wirelit/agentdrive/protocol"
)

var (
	configPath string
	model      string
	workDir    string
	cliPath    string
	resume     string
	attach     []string
	timeout    time.Duration
	force      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "agentdrive",
	Short: "Drive the agent CLI with prompts",
	Long: `agentdrive - run prompts against the agent CLI.

Configuration is read from --config (default ~/.config/agentdrive/config.yaml),
then overridden by flags.`,
	SilenceUsage: true,
}

func init() {
	home, _ := os.UserHomeDir()
	defaultConfig := filepath.Join(home, ".config", "agentdrive", "config.yaml")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfig, "Config file path")
	rootCmd.PersistentFlags().StringVarP(&model, "model", "m", "", "Model to use")
	rootCmd.PersistentFlags().StringVarP(&workDir, "cwd", "C", "", "Working directory for the agent")
	rootCmd.PersistentFlags().StringVar(&cliPath, "cli", "", "Explicit agent CLI binary path")
	rootCmd.PersistentFlags().StringVar(&resume, "resume", "", "Session ID to resume")
	rootCmd.PersistentFlags().StringArrayVarP(&attach, "attach", "a", nil,
		"Attachment path, optionally with description as path=description (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, "Run with full autonomy")

	runCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Wall-clock timeout (0 disables)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(streamCmd)
}

func sessionOptions() ([]agent.SessionOption, error) {
	config, err := agent.LoadFileConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	opts := config.Options()
	if model != "" {
		opts = append(opts, agent.WithModel(model))
	}
	if workDir != "" {
		opts = append(opts, agent.WithWorkDir(workDir))
	}
	if cliPath != "" {
		opts = append(opts, agent.WithCLIPath(cliPath))
	}
	if resume != "" {
		opts = append(opts, agent.WithResume(resume))
	}
	if force {
		opts = append(opts, agent.WithForce())
	}
	return opts, nil
}

func attachments() []agent.Attachment {
	var atts []agent.Attachment
	for _, spec := range attach {
		path, desc, _ := strings.Cut(spec, "=")
		atts = append(atts, agent.Attachment{Path: path, Description: desc})
	}
	return atts
}

var runCmd = &cobra.Command{
	Use:   "run <prompt>",
	Short: "Run a prompt in blocking mode and print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := sessionOptions()
		if err != nil {
			return err
		}
		opts = append(opts, agent.WithTimeout(timeout))

		session := agent.NewSession(opts...)
		result, err := session.Run(cmd.Context(), args[0], attachments()...)
		if err != nil {
			return describeFailure(err)
		}

		fmt.Println(result.FinalResponse)
		if result.SessionID != "" {
			fmt.Fprintf(os.Stderr, "session: %s (%d turns, %dms)\n",
				result.SessionID, result.NumTurns, result.DurationMs)
		}
		if result.IsError {
			return errors.New("turn failed")
		}
		return nil
	},
}

var streamCmd = &cobra.Command{
	Use:   "stream <prompt>",
	Short: "Run a prompt in streaming mode, printing events live",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := sessionOptions()
		if err != nil {
			return err
		}

		session := agent.NewSession(opts...)
		stream, err := session.Stream(cmd.Context(), args[0], attachments()...)
		if err != nil {
			return describeFailure(err)
		}
		defer stream.Close()

		for ev := range stream.Events() {
			switch e := ev.(type) {
			case *protocol.SessionInitEvent:
				fmt.Fprintf(os.Stderr, "session %s (model %s)\n", e.SessionID, e.Model)
			case *protocol.MessageEvent:
				if e.Role == "assistant" {
					fmt.Println(e.Text)
				}
			case *protocol.ToolCallEvent:
				fmt.Fprintf(os.Stderr, "[tool %s started]\n", e.Tool)
			case *protocol.ToolResultEvent:
				status := "ok"
				if e.IsError {
					status = "error"
				}
				fmt.Fprintf(os.Stderr, "[tool %s %s]\n", e.Tool, status)
			case *protocol.TurnFailedEvent:
				fmt.Fprintf(os.Stderr, "turn failed: %s\n", e.ErrorMessage)
			}
		}

		result, err := stream.Result(cmd.Context())
		if err != nil {
			return describeFailure(err)
		}
		fmt.Fprintf(os.Stderr, "done: session=%s turns=%d duration=%dms\n",
			result.SessionID, result.NumTurns, result.DurationMs)
		if result.IsError {
			return errors.New("turn failed")
		}
		return nil
	},
}

// describeFailure renders SDK failure kinds with their detail fields.
func describeFailure(err error) error {
	var notFound *agent.CLINotFoundError
	if errors.As(err, &notFound) {
		return fmt.Errorf("agent CLI not found; searched:\n  %s",
			strings.Join(notFound.Searched, "\n  "))
	}

	var timeoutErr *agent.TimeoutError
	if errors.As(err, &timeoutErr) {
		return fmt.Errorf("timed out after %s (increase --timeout)", timeoutErr.Timeout)
	}

	var execErr *agent.ExecutionError
	if errors.As(err, &execErr) {
		msg := fmt.Sprintf("agent CLI failed with exit code %d", execErr.ExitCode)
		if execErr.Stderr != "" {
			msg += "\n" + strings.TrimSpace(execErr.Stderr)
		}
		return errors.New(msg)
	}

	return err
}
