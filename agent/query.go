package agent

import "context"

// Query sends a one-shot prompt in blocking mode and returns the result.
func Query(ctx context.Context, prompt string, opts ...SessionOption) (*TurnResult, error) {
	return NewSession(opts...).Run(ctx, prompt)
}

// QueryStream sends a one-shot prompt in streaming mode. The caller
// should range over the stream's Events channel until it closes, then
// call Result for the aggregate.
func QueryStream(ctx context.Context, prompt string, opts ...SessionOption) (*Stream, error) {
	return NewSession(opts...).Stream(ctx, prompt)
}
