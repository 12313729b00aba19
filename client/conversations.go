package client

import (
	"context"
	"time"

	"github.com/tangde15/RAG-FastAPI-LangChain-Assistant/transcript"
)

// Exchange is one stored question/answer pair.
type Exchange struct {
	SessionID   string  `json:"session_id,omitempty"`
	UserMessage string  `json:"user_message"`
	AIMessage   string  `json:"ai_message"`
	// Timestamp is unix seconds with fractional part, as stored server-side.
	Timestamp float64 `json:"timestamp"`
}

// Conversations fetches every stored exchange across all sessions. The
// sidebar index is rebuilt wholesale from this result on each fetch; nothing
// is patched incrementally against in-flight streams.
func (c *Client) Conversations(ctx context.Context) ([]Exchange, error) {
	var resp struct {
		Success       bool       `json:"success"`
		Conversations []Exchange `json:"conversations"`
	}
	if err := c.getJSON(ctx, "/api/conversations/all", &resp); err != nil {
		return nil, err
	}
	return resp.Conversations, nil
}

// SessionExchanges fetches the stored exchanges of one session, oldest
// first.
func (c *Client) SessionExchanges(ctx context.Context, sessionID string) ([]Exchange, error) {
	var resp struct {
		Success       bool       `json:"success"`
		SessionID     string     `json:"session_id"`
		Conversations []Exchange `json:"conversations"`
	}
	body := map[string]string{"session_id": sessionID}
	if err := c.postJSON(ctx, "/api/conversations/get", body, &resp); err != nil {
		return nil, err
	}
	for i := range resp.Conversations {
		resp.Conversations[i].SessionID = sessionID
	}
	return resp.Conversations, nil
}

// DeleteSession deletes all stored exchanges of a session and returns how
// many were removed.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) (int, error) {
	var resp struct {
		Success      bool   `json:"success"`
		SessionID    string `json:"session_id"`
		DeletedCount int    `json:"deleted_count"`
	}
	body := map[string]string{"session_id": sessionID}
	if err := c.postJSON(ctx, "/api/conversations/delete", body, &resp); err != nil {
		return 0, err
	}
	return resp.DeletedCount, nil
}

// Summaries collapses a flat exchange list into the deduplicated,
// most-recent-first conversation index.
func Summaries(exchanges []Exchange) []transcript.ConversationSummary {
	summaries := make([]transcript.ConversationSummary, 0, len(exchanges))
	for _, ex := range exchanges {
		summaries = append(summaries, transcript.ConversationSummary{
			SessionID:        ex.SessionID,
			FirstUserMessage: ex.UserMessage,
			Timestamp:        unixMillis(ex.Timestamp),
		})
	}
	return transcript.DedupeSummaries(summaries)
}

// ToTranscript expands stored exchanges into the transcript model: a user
// message and a completed assistant message per exchange. Stored answers
// carry no tool anchors, so assistant messages come back as plain text.
func ToTranscript(exchanges []Exchange) transcript.Transcript {
	t := make(transcript.Transcript, 0, 2*len(exchanges))
	for _, ex := range exchanges {
		created := timeFromUnixSeconds(ex.Timestamp)
		t = append(t,
			transcript.Message{Role: transcript.RoleUser, Text: ex.UserMessage, CreatedAt: created},
			transcript.Message{Role: transcript.RoleAssistant, Text: ex.AIMessage, CreatedAt: created},
		)
	}
	return t
}

func unixMillis(seconds float64) int64 {
	return int64(seconds * 1000)
}

func timeFromUnixSeconds(seconds float64) time.Time {
	if seconds == 0 {
		return time.Time{}
	}
	return time.Unix(0, int64(seconds*float64(time.Second)))
}
