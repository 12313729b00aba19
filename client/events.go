package client

import "github.com/tangde15/RAG-FastAPI-LangChain-Assistant/protocol"

// EventType discriminates between stream event kinds.
type EventType int

const (
	// EventTypeSessionID fires when the stream establishes its session id.
	EventTypeSessionID EventType = iota
	// EventTypeChunk fires for each text delta.
	EventTypeChunk
	// EventTypeToolStart fires when the backend reports a tool starting.
	EventTypeToolStart
	// EventTypeToolResult fires for each completed tool invocation.
	EventTypeToolResult
	// EventTypeToolDone fires when the backend reports a tool finishing.
	EventTypeToolDone
	// EventTypeFinal fires for the backend's structured wrap-up record.
	EventTypeFinal
	// EventTypeComplete fires exactly once when the stream ends cleanly.
	EventTypeComplete
	// EventTypeError fires exactly once on a transport failure.
	EventTypeError
)

// Event is the interface for all stream events. Events arrive on the
// Stream's channel in the exact order their records were framed.
type Event interface {
	Type() EventType
}

// SessionIDEvent carries the session id established by the stream. It fires
// once, for the first session record; the stored id still follows later
// records (last write wins).
type SessionIDEvent struct {
	ID string
}

// Type returns the event type.
func (e SessionIDEvent) Type() EventType { return EventTypeSessionID }

// ChunkEvent carries one text delta, not the full accumulated text, so the
// renderer can append incrementally.
type ChunkEvent struct {
	Delta string
}

// Type returns the event type.
func (e ChunkEvent) Type() EventType { return EventTypeChunk }

// ToolStartEvent is informational; the buffer does not change.
type ToolStartEvent struct {
	Name string
}

// Type returns the event type.
func (e ToolStartEvent) Type() EventType { return EventTypeToolStart }

// ToolResultEvent carries an opaque tool payload and the text anchor it was
// recorded at.
type ToolResultEvent struct {
	Name    string
	Payload string
	Anchor  int
}

// Type returns the event type.
func (e ToolResultEvent) Type() EventType { return EventTypeToolResult }

// ToolDoneEvent is informational; the buffer does not change.
type ToolDoneEvent struct {
	Name string
}

// Type returns the event type.
func (e ToolDoneEvent) Type() EventType { return EventTypeToolDone }

// FinalEvent carries the backend's trailing structured summary.
type FinalEvent struct {
	Summary protocol.FinalSummaryEvent
}

// Type returns the event type.
func (e FinalEvent) Type() EventType { return EventTypeFinal }

// CompleteEvent marks clean end-of-stream. It is always the last event.
type CompleteEvent struct{}

// Type returns the event type.
func (e CompleteEvent) Type() EventType { return EventTypeComplete }

// ErrorEvent marks a fatal transport failure. It is always the last event;
// whatever partial text and tool calls the buffer reached stay readable.
type ErrorEvent struct {
	Err error
}

// Type returns the event type.
func (e ErrorEvent) Type() EventType { return EventTypeError }
