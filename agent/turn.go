package agent

import (
	"fmt"
	"strings"

	"github.com/wirelit/agentdrive/protocol"
)

// TurnItemType discriminates between TurnItem kinds.
type TurnItemType string

const (
	TurnItemMessage    TurnItemType = "message"
	TurnItemToolCall   TurnItemType = "tool_call"
	TurnItemToolResult TurnItemType = "tool_result"
)

// TurnItem is one retained record of a turn: a message, a tool call, or a
// tool result. Items are plain values owned by their TurnResult; fields
// not meaningful for the item's type stay zero.
type TurnItem struct {
	Args      map[string]interface{}
	Type      TurnItemType
	ID        string
	MessageID string
	Role      string
	Text      string
	Tool      string
	Value     string
	Ts        int64
	IsError   bool
}

// TurnResult is the aggregate outcome of one turn. When IsError is set,
// FinalResponse holds the failure message rather than agent output.
type TurnResult struct {
	FinalResponse string
	SessionID     string
	Items         []TurnItem
	DurationMs    int64
	NumTurns      int
	IsError       bool
}

// FoldEvents folds an event sequence into a TurnResult. It is pure and
// order-sensitive: items appear in arrival order, the last completion
// event wins on text/timing, and a failure event wins on text and the
// error flag. A failure arriving after a completion keeps the earlier
// completion's duration and turn count; the two sets of fields are
// updated independently.
//
// A non-empty session identifier, once seen, is never displaced by an
// empty one. Folding itself cannot fail.
func FoldEvents(events []protocol.Event) *TurnResult {
	result := &TurnResult{}

	for _, ev := range events {
		if sid := ev.Session(); sid != "" {
			result.SessionID = sid
		}

		switch e := ev.(type) {
		case *protocol.SessionInitEvent:
			// Identity only; no item retained.

		case *protocol.MessageEvent:
			result.Items = append(result.Items, TurnItem{
				Type: TurnItemMessage,
				ID:   e.ID,
				Role: e.Role,
				Text: e.Text,
				Ts:   e.Ts,
			})

		case *protocol.ToolCallEvent:
			result.Items = append(result.Items, TurnItem{
				Type:      TurnItemToolCall,
				ID:        e.ID,
				MessageID: e.MessageID,
				Tool:      e.Tool,
				Args:      e.Args,
				Ts:        e.Ts,
			})

		case *protocol.ToolResultEvent:
			result.Items = append(result.Items, TurnItem{
				Type:      TurnItemToolResult,
				ID:        e.ID,
				MessageID: e.MessageID,
				Tool:      e.Tool,
				Value:     e.Value,
				IsError:   e.IsError,
				Ts:        e.Ts,
			})

		case *protocol.TurnCompletedEvent:
			result.FinalResponse = e.Result
			result.NumTurns = e.NumTurns
			result.DurationMs = e.DurationMs

		case *protocol.TurnFailedEvent:
			result.IsError = true
			result.FinalResponse = e.ErrorMessage
		}
	}

	return result
}

// fromBlockingResponse maps the single JSON object the CLI prints in
// blocking mode into a TurnResult. Blocking mode never exposes
// intermediate items, so Items is always empty.
func fromBlockingResponse(stdout string) (*TurnResult, error) {
	ev, err := protocol.ParseEvent([]byte(strings.TrimSpace(stdout)))
	if err != nil {
		return nil, err
	}

	switch e := ev.(type) {
	case *protocol.TurnCompletedEvent:
		return &TurnResult{
			FinalResponse: e.Result,
			SessionID:     e.SessionID,
			NumTurns:      e.NumTurns,
			DurationMs:    e.DurationMs,
			IsError:       e.IsError,
		}, nil

	case *protocol.TurnFailedEvent:
		return &TurnResult{
			FinalResponse: e.ErrorMessage,
			SessionID:     e.SessionID,
			IsError:       true,
		}, nil

	default:
		return nil, fmt.Errorf("expected a result payload, got %q event", ev.Kind())
	}
}
