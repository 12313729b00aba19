package client

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tangde15/RAG-FastAPI-LangChain-Assistant/transcript"
)

// exchangeRecord is one line of a local session recording: the completed
// exchange as assembled client-side, including tool anchors the server
// never stores.
type exchangeRecord struct {
	SessionID string           `json:"session_id"`
	Question  string           `json:"question"`
	Answer    string           `json:"answer"`
	ToolCalls []toolCallRecord `json:"tool_calls,omitempty"`
	Timestamp int64            `json:"timestamp"`
}

type toolCallRecord struct {
	Name    string `json:"name"`
	Payload string `json:"payload"`
	Anchor  int    `json:"anchor"`
}

// recordExchange appends a completed stream to the recording directory, one
// JSONL file per session. Recording is best effort: failures are logged and
// never fail the stream.
func (c *Client) recordExchange(s *Stream) {
	if c.recordDir == "" {
		return
	}

	text, calls := s.buffer.Snapshot()
	rec := exchangeRecord{
		SessionID: s.SessionID(),
		Question:  s.question,
		Answer:    text,
		ToolCalls: toolCallRecords(calls),
		Timestamp: now().UnixMilli(),
	}

	name := rec.SessionID
	if name == "" {
		name = "unidentified"
	}

	if err := appendJSONL(filepath.Join(c.recordDir, name+".jsonl"), rec); err != nil {
		c.logger.Warn("failed to record exchange", "err", err)
	}
}

func toolCallRecords(calls []transcript.ToolCall) []toolCallRecord {
	if len(calls) == 0 {
		return nil
	}
	out := make([]toolCallRecord, len(calls))
	for i, call := range calls {
		out[i] = toolCallRecord{Name: call.Name, Payload: call.Payload, Anchor: call.Anchor}
	}
	return out
}

func appendJSONL(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	line, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(line, '\n'))
	return err
}
