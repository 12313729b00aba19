package transcript

import (
	"strings"
	"sync"
)

// Buffer owns the mutable state of the assistant message currently being
// streamed: the accumulated text and the ordered tool calls with their
// anchors. One stream owns one buffer; mutation is serialized behind a
// mutex so renderers may snapshot concurrently while the read loop writes.
type Buffer struct {
	mu    sync.RWMutex
	text  strings.Builder
	calls []ToolCall
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// AppendText concatenates delta onto the accumulated text. It is the only
// mutator of text length.
func (b *Buffer) AppendText(delta string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text.WriteString(delta)
}

// RecordTool captures the current text length as the new call's anchor, then
// appends the call. The anchor read and the append happen under one lock
// acquisition so no interleaved AppendText can slip between them. Returns
// the anchor used.
func (b *Buffer) RecordTool(name, payload string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	anchor := b.text.Len()
	b.calls = append(b.calls, ToolCall{Name: name, Payload: payload, Anchor: anchor})
	return anchor
}

// Reset clears text and tool calls, returning the buffer to its empty
// state for reuse.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text.Reset()
	b.calls = nil
}

// Snapshot returns a copy of the accumulated text and tool calls. The copy
// is safe to hold while the buffer keeps mutating.
func (b *Buffer) Snapshot() (string, []ToolCall) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	calls := make([]ToolCall, len(b.calls))
	copy(calls, b.calls)
	return b.text.String(), calls
}

// Text returns the accumulated text.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.String()
}

// Len returns the accumulated text length in bytes.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.Len()
}

// Message freezes the buffer contents into an assistant Message. The
// returned message shares nothing with the buffer.
func (b *Buffer) Message() Message {
	text, calls := b.Snapshot()
	return Message{Role: RoleAssistant, Text: text, ToolCalls: calls}
}
