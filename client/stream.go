package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/tangde15/RAG-FastAPI-LangChain-Assistant/protocol"
	"github.com/tangde15/RAG-FastAPI-LangChain-Assistant/transcript"
)

// chatRequest is the body of POST /api/chat. Omitting session_id asks the
// backend to start a new conversation.
type chatRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id,omitempty"`
}

// Stream is one in-flight streaming exchange. It exclusively owns the
// transcript buffer it assembles into; a Stream abandoned for a new
// conversation keeps writing to its own buffer and cannot touch the new
// one. Consume Events until it closes, or use Dispatch.
type Stream struct {
	buffer   *transcript.Buffer
	events   chan Event
	question string

	mu        sync.Mutex
	sessionID string
	final     *protocol.FinalSummaryEvent
	err       error
}

// Send starts one streaming exchange: a single POST of question (and
// sessionID, if continuing a conversation) whose NDJSON response body is
// consumed incrementally in the background.
//
// At most one send per Client is in flight; a second Send while one is
// active returns ErrSendActive without touching the active stream. Failures
// while dispatching the request (connection refused, non-success status)
// are returned here; failures after streaming begins arrive as a final
// ErrorEvent. Either way the guard clears for the next send.
//
// The caller must drain Events until closed, or cancel ctx to abandon the
// stream; events for an abandoned stream are dropped, never applied to
// anyone else's state.
func (c *Client) Send(ctx context.Context, question, sessionID string) (*Stream, error) {
	if err := c.sends.begin(); err != nil {
		return nil, err
	}

	body := chatRequest{Question: question, SessionID: sessionID}
	req, err := c.newChatRequest(ctx, body)
	if err != nil {
		c.sends.finish(false)
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.sends.finish(false)
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		c.sends.finish(false)
		return nil, newAPIError(resp)
	}
	if err := c.sends.streaming(); err != nil {
		resp.Body.Close()
		c.sends.finish(false)
		return nil, err
	}

	s := &Stream{
		buffer:    transcript.NewBuffer(),
		events:    make(chan Event, 64),
		question:  question,
		sessionID: sessionID,
	}
	go s.readLoop(ctx, c, resp.Body)
	return s, nil
}

func (c *Client) newChatRequest(ctx context.Context, body chatRequest) (*http.Request, error) {
	payload, err := marshalJSON(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/chat"), payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/x-ndjson")
	return req, nil
}

// Events returns the stream's event channel. It closes after the terminal
// CompleteEvent or ErrorEvent.
func (s *Stream) Events() <-chan Event {
	return s.events
}

// Question returns the question this stream was started with.
func (s *Stream) Question() string {
	return s.question
}

// SessionID returns the current session id: the id the send continued, or
// the id the backend assigned. A duplicate session record mid-stream
// overwrites it (last write wins).
func (s *Stream) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// Snapshot returns a copy of the text and tool calls assembled so far. Safe
// to call while the stream is still running.
func (s *Stream) Snapshot() (string, []transcript.ToolCall) {
	return s.buffer.Snapshot()
}

// Segments interleaves a snapshot of the buffer for rendering.
func (s *Stream) Segments() []transcript.Segment {
	text, calls := s.buffer.Snapshot()
	return transcript.Interleave(text, calls)
}

// Message freezes the assembled assistant message. Meaningful once the
// event channel has closed; on a transport error it holds the preserved
// partial output.
func (s *Stream) Message() transcript.Message {
	return s.buffer.Message()
}

// Final returns the backend's structured wrap-up summary, or nil if the
// producer never sent one.
func (s *Stream) Final() *protocol.FinalSummaryEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.final
}

// Err returns the terminal transport error, or nil after a clean stream.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// readLoop pulls chunks from the response body, frames them into lines, and
// dispatches decoded events in framing order. It is the only writer to the
// stream's buffer, so all mutation is sequential.
func (s *Stream) readLoop(ctx context.Context, c *Client, body io.ReadCloser) {
	defer close(s.events)
	defer body.Close()

	var framer protocol.Framer
	buf := make([]byte, c.chunkSize)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			for _, line := range framer.Push(buf[:n]) {
				s.handleLine(ctx, c, line)
			}
		}
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			// A producer that omits the last newline still gets its final
			// record decoded, best effort.
			if line, ok := framer.Flush(); ok {
				s.handleLine(ctx, c, line)
			}
			c.sends.finish(true)
			c.recordExchange(s)
			s.emit(ctx, CompleteEvent{})
			return
		}
		terr := &TransportError{Cause: err}
		s.mu.Lock()
		s.err = terr
		s.mu.Unlock()
		c.sends.finish(false)
		s.emit(ctx, ErrorEvent{Err: terr})
		return
	}
}

// handleLine decodes one framed line and applies it. Undecodable lines are
// dropped so one bad record never aborts the stream.
func (s *Stream) handleLine(ctx context.Context, c *Client, line []byte) {
	ev, err := protocol.ParseEvent(line)
	if err != nil {
		c.logger.Debug("dropping undecodable stream line", "err", err)
		return
	}
	if ev == nil {
		return
	}

	switch e := ev.(type) {
	case protocol.SessionEvent:
		s.mu.Lock()
		first := s.sessionID == ""
		s.sessionID = e.ID
		s.mu.Unlock()
		if first {
			s.emit(ctx, SessionIDEvent{ID: e.ID})
		}
	case protocol.TextDeltaEvent:
		s.buffer.AppendText(e.Text)
		s.emit(ctx, ChunkEvent{Delta: e.Text})
	case protocol.ToolResultEvent:
		anchor := s.buffer.RecordTool(e.ToolName, e.Payload)
		s.emit(ctx, ToolResultEvent{Name: e.ToolName, Payload: e.Payload, Anchor: anchor})
	case protocol.ToolStartEvent:
		s.emit(ctx, ToolStartEvent{Name: e.ToolName})
	case protocol.ToolDoneEvent:
		s.emit(ctx, ToolDoneEvent{Name: e.ToolName})
	case protocol.FinalSummaryEvent:
		s.mu.Lock()
		summary := e
		s.final = &summary
		s.mu.Unlock()
		s.emit(ctx, FinalEvent{Summary: e})
	}
}

// emit delivers an event, or drops it once the consumer has cancelled.
func (s *Stream) emit(ctx context.Context, ev Event) {
	select {
	case s.events <- ev:
	case <-ctx.Done():
	}
}
