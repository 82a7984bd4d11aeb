// Package protocol defines the NDJSON wire format of the agent CLI and
// the parser that turns one record into a typed event.
package protocol

// EventKind discriminates between event kinds.
type EventKind string

const (
	KindSessionInit   EventKind = "session_init"
	KindMessage       EventKind = "message"
	KindToolCall      EventKind = "tool_call"
	KindToolResult    EventKind = "tool_result"
	KindTurnCompleted EventKind = "turn_completed"
	KindTurnFailed    EventKind = "turn_failed"
)

// Event is the union type produced by ParseEvent.
//
// Session returns the session identifier carried by the event, or ""
// when the event does not carry one.
type Event interface {
	Kind() EventKind
	Session() string
}

// SessionInitEvent is the first event of a session.
// Wire: {"type":"system","subtype":"init","session_id":"...","model":"...","cwd":"...","tools":[...]}
type SessionInitEvent struct {
	SessionID string   `json:"session_id"`
	Model     string   `json:"model"`
	CWD       string   `json:"cwd"`
	Tools     []string `json:"tools"`
}

func (e *SessionInitEvent) Kind() EventKind { return KindSessionInit }
func (e *SessionInitEvent) Session() string { return e.SessionID }

// MessageEvent is a user or assistant text message.
// Wire: {"type":"message","id":"m1","role":"assistant","text":"...","session_id":"...","ts":1712345678901}
type MessageEvent struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Text      string `json:"text"`
	SessionID string `json:"session_id"`
	Ts        int64  `json:"ts"`
}

func (e *MessageEvent) Kind() EventKind { return KindMessage }
func (e *MessageEvent) Session() string { return e.SessionID }

// ToolCallEvent reports the agent invoking a tool.
// Wire: {"type":"tool_call","id":"c1","message_id":"m1","tool":"Read","args":{...},"session_id":"...","ts":...}
type ToolCallEvent struct {
	ID        string                 `json:"id"`
	MessageID string                 `json:"message_id"`
	Tool      string                 `json:"tool"`
	Args      map[string]interface{} `json:"args"`
	SessionID string                 `json:"session_id"`
	Ts        int64                  `json:"ts"`
}

func (e *ToolCallEvent) Kind() EventKind { return KindToolCall }
func (e *ToolCallEvent) Session() string { return e.SessionID }

// ToolResultEvent reports the outcome of a tool invocation. Value holds
// the success payload, or the error text when IsError is set.
// Wire: {"type":"tool_result","id":"r1","message_id":"m1","tool":"Read","is_error":false,"value":"...","session_id":"...","ts":...}
type ToolResultEvent struct {
	ID        string `json:"id"`
	MessageID string `json:"message_id"`
	Tool      string `json:"tool"`
	IsError   bool   `json:"is_error"`
	Value     string `json:"value"`
	SessionID string `json:"session_id"`
	Ts        int64  `json:"ts"`
}

func (e *ToolResultEvent) Kind() EventKind { return KindToolResult }
func (e *ToolResultEvent) Session() string { return e.SessionID }

// TurnCompletedEvent closes a turn. In blocking mode the CLI emits a
// single object of this shape as its whole stdout.
// Wire: {"type":"result","subtype":"success","result":"...","num_turns":1,"duration_ms":1500,"is_error":false,"session_id":"..."}
type TurnCompletedEvent struct {
	Result     string `json:"result"`
	NumTurns   int    `json:"num_turns"`
	DurationMs int64  `json:"duration_ms"`
	IsError    bool   `json:"is_error"`
	SessionID  string `json:"session_id"`
}

func (e *TurnCompletedEvent) Kind() EventKind { return KindTurnCompleted }
func (e *TurnCompletedEvent) Session() string { return e.SessionID }

// TurnFailedEvent reports a turn that failed inside the agent.
// Wire: {"type":"result","subtype":"error","error":"...","code":"ERR","session_id":"..."}
type TurnFailedEvent struct {
	ErrorMessage string `json:"error"`
	Code         string `json:"code,omitempty"`
	SessionID    string `json:"session_id"`
}

func (e *TurnFailedEvent) Kind() EventKind { return KindTurnFailed }
func (e *TurnFailedEvent) Session() string { return e.SessionID }
