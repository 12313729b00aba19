// Package protocol implements the NDJSON wire format streamed by the
// assistant backend's /api/chat endpoint: one JSON object per line, each
// carrying a "type" tag that discriminates the event kind.
package protocol

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// EventKind discriminates between wire event kinds. Values match the "type"
// field of the NDJSON records.
type EventKind string

const (
	// EventKindSession assigns or confirms the session identifier.
	EventKindSession EventKind = "session"
	// EventKindTextDelta carries an incremental text delta to append.
	EventKindTextDelta EventKind = "ai"
	// EventKindToolStart announces that a tool began running (informational).
	EventKindToolStart EventKind = "tool_start"
	// EventKindToolResult carries a completed tool invocation's raw payload.
	EventKindToolResult EventKind = "tool"
	// EventKindToolDone announces that a tool finished (informational).
	EventKindToolDone EventKind = "tool_done"
	// EventKindFinalSummary is the trailing structured summary the backend
	// emits after the text stream (references, per-tool call counts).
	EventKindFinalSummary EventKind = "ai_final"
)

// Event is the interface for all wire events.
type Event interface {
	Kind() EventKind
}

// SessionEvent assigns the session identifier for this conversation.
type SessionEvent struct {
	ID string
}

// Kind returns the event kind.
func (e SessionEvent) Kind() EventKind { return EventKindSession }

// TextDeltaEvent carries an incremental text delta.
type TextDeltaEvent struct {
	Text string
}

// Kind returns the event kind.
func (e TextDeltaEvent) Kind() EventKind { return EventKindTextDelta }

// ToolStartEvent announces a tool starting. No handling is required.
type ToolStartEvent struct {
	ToolName string
}

// Kind returns the event kind.
func (e ToolStartEvent) Kind() EventKind { return EventKindToolStart }

// ToolResultEvent carries a completed tool invocation's payload. The payload
// is opaque cargo: usually JSON, sometimes JSON double-encoded as a quoted
// string. It is passed through byte-for-byte, never parsed here.
type ToolResultEvent struct {
	ToolName string
	Payload  string
}

// Kind returns the event kind.
func (e ToolResultEvent) Kind() EventKind { return EventKindToolResult }

// ToolDoneEvent announces a tool finishing. No handling is required.
type ToolDoneEvent struct {
	ToolName string
}

// Kind returns the event kind.
func (e ToolDoneEvent) Kind() EventKind { return EventKindToolDone }

// Reference is one source citation from the final summary.
type Reference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// FinalSummaryEvent is the structured wrap-up record the backend emits after
// the answer text. Older backends never send it; its absence is normal.
type FinalSummaryEvent struct {
	IntentDeclaration string
	SearchSummary     map[string]int
	References        []Reference
}

// Kind returns the event kind.
func (e FinalSummaryEvent) Kind() EventKind { return EventKindFinalSummary }

// wireRecord is the superset of fields across all record kinds.
type wireRecord struct {
	Type              string          `json:"type"`
	Content           string          `json:"content"`
	ToolName          string          `json:"tool_name"`
	IntentDeclaration string          `json:"intent_declaration"`
	SearchSummary     map[string]int  `json:"search_summary"`
	References        []Reference     `json:"references"`
	Sections          json.RawMessage `json:"sections"`
}

// ParseEvent decodes one framed line into an Event.
//
// A blank line yields (nil, nil). Malformed JSON or a record missing a
// required field yields an error; callers drop the line and continue, so one
// bad record never aborts the stream. A well-formed record with an
// unrecognized "type" also yields (nil, nil): the producer may introduce new
// informational kinds without breaking older consumers.
func ParseEvent(line []byte) (Event, error) {
	if len(strings.TrimSpace(string(line))) == 0 {
		return nil, nil
	}

	var rec wireRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return nil, &ProtocolError{Message: "malformed record", Line: string(line), Cause: err}
	}

	switch EventKind(rec.Type) {
	case EventKindSession:
		if rec.Content == "" {
			return nil, &ProtocolError{Message: "session record without id", Line: string(line)}
		}
		return SessionEvent{ID: rec.Content}, nil
	case EventKindTextDelta:
		return TextDeltaEvent{Text: rec.Content}, nil
	case EventKindToolStart:
		return ToolStartEvent{ToolName: rec.ToolName}, nil
	case EventKindToolResult:
		return ToolResultEvent{ToolName: rec.ToolName, Payload: rec.Content}, nil
	case EventKindToolDone:
		return ToolDoneEvent{ToolName: rec.ToolName}, nil
	case EventKindFinalSummary:
		return FinalSummaryEvent{
			IntentDeclaration: rec.IntentDeclaration,
			SearchSummary:     rec.SearchSummary,
			References:        rec.References,
		}, nil
	default:
		slog.Debug("skipping unknown wire event type", "type", rec.Type)
		return nil, nil
	}
}
