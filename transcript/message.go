// Package transcript holds the conversational document model: messages,
// the mutable buffer for the message currently being streamed, and the
// interleaving of text segments with positionally anchored tool results.
package transcript

import "time"

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ToolCall is one completed tool invocation attached to an assistant
// message. Anchor is the byte offset into the message text at the moment the
// result arrived; it positions the result among the text segments even after
// more text streams in behind it.
type ToolCall struct {
	Name    string
	Payload string
	Anchor  int
}

// Message is one entry in a transcript. A user message never carries tool
// calls. An assistant message mutates monotonically while its stream is
// active (text and tool calls grow by append only) and is immutable after
// the stream completes or fails.
type Message struct {
	CreatedAt time.Time
	Role      Role
	Text      string
	ToolCalls []ToolCall
}

// Transcript is an ordered sequence of messages, append-only while a session
// is active and replaced wholesale when switching to a stored session.
type Transcript []Message

// Append returns the transcript with msg added.
func (t Transcript) Append(msg Message) Transcript {
	return append(t, msg)
}

// LastAssistant returns a pointer to the most recent assistant message, or
// nil if there is none.
func (t Transcript) LastAssistant() *Message {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].Role == RoleAssistant {
			return &t[i]
		}
	}
	return nil
}
