// Package agent provides a Go SDK for driving a coding-agent CLI.
//
// The SDK spawns the CLI as a subprocess, feeds it a prompt, and converts
// its NDJSON output into typed events and an aggregated TurnResult. Two
// execution modes are supported: blocking, where the CLI runs to
// completion and prints one JSON result, and streaming, where events are
// delivered live while the aggregate settles at the end.
//
// # Quick Start
//
// For simple one-shot queries:
//
//	result, err := agent.Query(ctx, "What does this repo do?",
//	    agent.WithWorkDir("/path/to/project"),
//	    agent.WithTimeout(2*time.Minute),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.FinalResponse)
//
// # Streaming Usage
//
// For live events plus the deferred aggregate:
//
//	stream, err := agent.QueryStream(ctx, "Fix the failing test")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for ev := range stream.Events() {
//	    switch e := ev.(type) {
//	    case *protocol.MessageEvent:
//	        fmt.Print(e.Text)
//	    case *protocol.ToolCallEvent:
//	        fmt.Printf("\n[%s]\n", e.Tool)
//	    }
//	}
//	result, err := stream.Result(ctx)
//
// # Sessions
//
// A Session latches the agent's session identifier and resumes it on
// later turns:
//
//	session := agent.NewSession(agent.WithModel("fast"))
//	first, _ := session.Run(ctx, "Read main.go and summarize it")
//	followup, _ := session.Run(ctx, "Now add error handling to it")
//
// # Failure kinds
//
// Every failure is a distinct type carrying machine-readable fields:
// *CLINotFoundError (searched locations), *TimeoutError (configured
// timeout), *ExecutionError (exit code, stderr, session), *StreamError
// (underlying cause), and *protocol.ParseError (offending text). Branch
// with errors.As rather than string matching. The SDK never retries.
package agent
