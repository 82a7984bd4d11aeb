package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// previewLimit bounds how much offending text a ParseError retains.
const previewLimit = 100

// ParseError indicates a record that could not be parsed as JSON.
// Raw holds a truncated preview of the offending text.
type ParseError struct {
	Cause error
	Raw   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse event: %v (text: %q)", e.Cause, e.Raw)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// UnknownEventError indicates a well-formed record whose type tag is not
// part of the protocol.
type UnknownEventError struct {
	Type    string
	Subtype string
}

func (e *UnknownEventError) Error() string {
	if e.Subtype != "" {
		return fmt.Sprintf("unknown event type %q subtype %q", e.Type, e.Subtype)
	}
	return fmt.Sprintf("unknown event type %q", e.Type)
}

// ParseEvent parses one NDJSON record into a typed event.
//
// Dispatch is on the type tag only. Shape mismatches inside a recognized
// tag are tolerated: fields that fail to decode are left at their zero
// value. A record that is not JSON at all yields a *ParseError; a tag the
// protocol does not define yields an *UnknownEventError.
func ParseEvent(line []byte) (Event, error) {
	var raw struct {
		Type    string `json:"type"`
		Subtype string `json:"subtype"`
	}
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, &ParseError{Cause: err, Raw: preview(line)}
	}

	switch raw.Type {
	case "system":
		if raw.Subtype != "init" {
			return nil, &UnknownEventError{Type: raw.Type, Subtype: raw.Subtype}
		}
		var ev SessionInitEvent
		decodeLenient(line, &ev)
		return &ev, nil

	case "message":
		var ev MessageEvent
		decodeLenient(line, &ev)
		return &ev, nil

	case "tool_call":
		var ev ToolCallEvent
		decodeLenient(line, &ev)
		return &ev, nil

	case "tool_result":
		var ev ToolResultEvent
		decodeLenient(line, &ev)
		return &ev, nil

	case "result":
		switch raw.Subtype {
		case "success":
			var ev TurnCompletedEvent
			decodeLenient(line, &ev)
			return &ev, nil
		case "error":
			var ev TurnFailedEvent
			decodeLenient(line, &ev)
			return &ev, nil
		default:
			return nil, &UnknownEventError{Type: raw.Type, Subtype: raw.Subtype}
		}

	default:
		return nil, &UnknownEventError{Type: raw.Type}
	}
}

// decodeLenient unmarshals line into ev, ignoring field type mismatches.
// Syntax errors cannot occur here: line already parsed during dispatch.
func decodeLenient(line []byte, ev interface{}) {
	err := json.Unmarshal(line, ev)
	if err == nil {
		return
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return
	}
	// Anything else is unreachable for valid JSON; keep the zero value.
}

func preview(line []byte) string {
	if len(line) > previewLimit {
		return string(line[:previewLimit])
	}
	return string(line)
}
