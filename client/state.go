package client

import "sync"

// SendState is the lifecycle of a streaming send.
type SendState int

const (
	// SendStateIdle means no send has started yet.
	SendStateIdle SendState = iota
	// SendStateSending means the request is being dispatched.
	SendStateSending
	// SendStateStreaming means the response body is being consumed.
	SendStateStreaming
	// SendStateCompleted means the last send finished cleanly.
	SendStateCompleted
	// SendStateFailed means the last send hit a transport error.
	SendStateFailed
)

func (s SendState) String() string {
	switch s {
	case SendStateIdle:
		return "idle"
	case SendStateSending:
		return "sending"
	case SendStateStreaming:
		return "streaming"
	case SendStateCompleted:
		return "completed"
	case SendStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// terminal reports whether a new send may begin from s.
func (s SendState) terminal() bool {
	return s == SendStateIdle || s == SendStateCompleted || s == SendStateFailed
}

// sendGuard makes "reject concurrent sends" a checked state transition
// instead of an ad hoc boolean. One guard per Client: at most one stream is
// in flight, additional Send calls are rejected rather than queued.
type sendGuard struct {
	mu    sync.Mutex
	state SendState
}

// begin transitions to Sending, or reports ErrSendActive if a send is
// already in flight.
func (g *sendGuard) begin() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.state.terminal() {
		return ErrSendActive
	}
	g.state = SendStateSending
	return nil
}

// streaming transitions Sending → Streaming.
func (g *sendGuard) streaming() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != SendStateSending {
		return ErrInvalidState
	}
	g.state = SendStateStreaming
	return nil
}

// finish transitions to Completed or Failed and clears the guard for the
// next send.
func (g *sendGuard) finish(ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if ok {
		g.state = SendStateCompleted
	} else {
		g.state = SendStateFailed
	}
}

// current returns the current state.
func (g *sendGuard) current() SendState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// SendState returns the client's current streaming lifecycle state.
func (c *Client) SendState() SendState {
	return c.sends.current()
}
