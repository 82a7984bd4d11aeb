package agent

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// OutputSchema generates a JSON schema for T from its json and
// jsonschema struct tags, suitable for WithStructuredOutput.
//
// Example:
//
//	type Review struct {
//	    Verdict string `json:"verdict" jsonschema:"required,enum=approve,enum=reject"`
//	    Notes   string `json:"notes"`
//	}
//
//	schema, _ := agent.OutputSchema[Review]()
//	result, err := agent.Query(ctx, "Review this diff", agent.WithStructuredOutput(schema))
func OutputSchema[T any]() (json.RawMessage, error) {
	reflector := &jsonschema.Reflector{
		DoNotReference: true, // inline definitions instead of $ref
		ExpandedStruct: true,
	}

	var zero T
	schema := reflector.Reflect(zero)

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("generate schema for %T: %w", zero, err)
	}
	return json.RawMessage(data), nil
}

// DecodeStructured unmarshals a structured-output final response into T.
func DecodeStructured[T any](result *TurnResult) (T, error) {
	var value T
	if result == nil {
		return value, fmt.Errorf("nil result")
	}
	if result.IsError {
		return value, fmt.Errorf("turn failed: %s", result.FinalResponse)
	}
	if err := json.Unmarshal([]byte(result.FinalResponse), &value); err != nil {
		return value, fmt.Errorf("decode structured output: %w", err)
	}
	return value, nil
}
