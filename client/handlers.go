package client

import (
	"context"

	"github.com/tangde15/RAG-FastAPI-LangChain-Assistant/protocol"
	"github.com/tangde15/RAG-FastAPI-LangChain-Assistant/transcript"
)

// Handlers is the callback surface a renderer attaches to a stream. Every
// field is optional. Callbacks run on the dispatching goroutine in event
// order: OnSessionID at most once (first occurrence), then interleaved
// OnChunk/OnTool* callbacks, then exactly one of OnComplete or OnError.
type Handlers struct {
	OnSessionID  func(id string)
	OnChunk      func(delta string)
	OnToolStart  func(name string)
	OnToolResult func(payload, name string)
	OnToolDone   func(name string)
	OnFinal      func(summary protocol.FinalSummaryEvent)
	OnComplete   func()
	OnError      func(err error)
}

// Dispatch drains the stream's events through h and returns the terminal
// transport error, or nil after a clean completion.
func (s *Stream) Dispatch(h Handlers) error {
	var terminal error
	for ev := range s.events {
		switch e := ev.(type) {
		case SessionIDEvent:
			if h.OnSessionID != nil {
				h.OnSessionID(e.ID)
			}
		case ChunkEvent:
			if h.OnChunk != nil {
				h.OnChunk(e.Delta)
			}
		case ToolStartEvent:
			if h.OnToolStart != nil {
				h.OnToolStart(e.Name)
			}
		case ToolResultEvent:
			if h.OnToolResult != nil {
				h.OnToolResult(e.Payload, e.Name)
			}
		case ToolDoneEvent:
			if h.OnToolDone != nil {
				h.OnToolDone(e.Name)
			}
		case FinalEvent:
			if h.OnFinal != nil {
				h.OnFinal(e.Summary)
			}
		case CompleteEvent:
			if h.OnComplete != nil {
				h.OnComplete()
			}
		case ErrorEvent:
			terminal = e.Err
			if h.OnError != nil {
				h.OnError(e.Err)
			}
		}
	}
	return terminal
}

// Result is the outcome of a finished exchange.
type Result struct {
	// SessionID continues this conversation on the next send.
	SessionID string
	// Message is the assembled assistant message. On a transport error it
	// holds the partial output reached before the failure.
	Message transcript.Message
	// Final is the backend's structured summary, if it sent one.
	Final *protocol.FinalSummaryEvent
}

// Ask sends a question and blocks until the stream finishes, driving h (if
// any callbacks are set) along the way. The returned Result is populated
// even when err is a transport error, so partial answers stay visible.
func (c *Client) Ask(ctx context.Context, question, sessionID string, h Handlers) (*Result, error) {
	s, err := c.Send(ctx, question, sessionID)
	if err != nil {
		return nil, err
	}
	terminal := s.Dispatch(h)
	return &Result{
		SessionID: s.SessionID(),
		Message:   s.Message(),
		Final:     s.Final(),
	}, terminal
}
