package protocol

import (
	"errors"
	"testing"
)

func TestParseEvent_Session(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"type":"session","content":"abc-123"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	se, ok := ev.(SessionEvent)
	if !ok {
		t.Fatalf("expected SessionEvent, got %T", ev)
	}
	if se.ID != "abc-123" {
		t.Errorf("ID = %q, want %q", se.ID, "abc-123")
	}
	if se.Kind() != EventKindSession {
		t.Errorf("Kind = %q", se.Kind())
	}
}

func TestParseEvent_SessionWithoutID(t *testing.T) {
	_, err := ParseEvent([]byte(`{"type":"session"}`))
	if err == nil {
		t.Fatal("expected error for session record without id")
	}
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Errorf("expected *ProtocolError, got %T", err)
	}
}

func TestParseEvent_TextDelta(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"type":"ai","content":"Hello"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	td, ok := ev.(TextDeltaEvent)
	if !ok {
		t.Fatalf("expected TextDeltaEvent, got %T", ev)
	}
	if td.Text != "Hello" {
		t.Errorf("Text = %q", td.Text)
	}
}

func TestParseEvent_ToolResult(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"type":"tool","content":"{\"x\":1}","tool_name":"smart_search"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tr, ok := ev.(ToolResultEvent)
	if !ok {
		t.Fatalf("expected ToolResultEvent, got %T", ev)
	}
	if tr.ToolName != "smart_search" {
		t.Errorf("ToolName = %q", tr.ToolName)
	}
	if tr.Payload != `{"x":1}` {
		t.Errorf("Payload = %q", tr.Payload)
	}
}

// Double-encoded payloads must survive untouched; decoding them is the card
// renderer's job, not the protocol's.
func TestParseEvent_ToolResultDoubleEncodedPassthrough(t *testing.T) {
	line := `{"type":"tool","content":"\"{\\\"source\\\":\\\"web\\\"}\"","tool_name":"t"}`
	ev, err := ParseEvent([]byte(line))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tr := ev.(ToolResultEvent)
	if tr.Payload != `"{\"source\":\"web\"}"` {
		t.Errorf("Payload altered: %q", tr.Payload)
	}
}

func TestParseEvent_ToolLifecycle(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"type":"tool_start","tool_name":"smart_search"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts, ok := ev.(ToolStartEvent); !ok || ts.ToolName != "smart_search" {
		t.Errorf("got %#v", ev)
	}

	ev, err = ParseEvent([]byte(`{"type":"tool_done","tool_name":"smart_search"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if td, ok := ev.(ToolDoneEvent); !ok || td.ToolName != "smart_search" {
		t.Errorf("got %#v", ev)
	}
}

func TestParseEvent_FinalSummary(t *testing.T) {
	line := `{"type":"ai_final","intent_declaration":"","search_summary":{"smart_search":2},"sections":[],"references":[{"title":"Example","url":"https://example.com"}]}`
	ev, err := ParseEvent([]byte(line))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fs, ok := ev.(FinalSummaryEvent)
	if !ok {
		t.Fatalf("expected FinalSummaryEvent, got %T", ev)
	}
	if fs.SearchSummary["smart_search"] != 2 {
		t.Errorf("SearchSummary = %v", fs.SearchSummary)
	}
	if len(fs.References) != 1 || fs.References[0].URL != "https://example.com" {
		t.Errorf("References = %v", fs.References)
	}
}

func TestParseEvent_MalformedJSON(t *testing.T) {
	_, err := ParseEvent([]byte("not-json"))
	if err == nil {
		t.Fatal("expected error for malformed line")
	}
}

func TestParseEvent_UnknownTypeIgnored(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"type":"heartbeat","content":"x"}`))
	if err != nil {
		t.Fatalf("unexpected error for unknown type: %v", err)
	}
	if ev != nil {
		t.Errorf("expected nil event for unknown type, got %T", ev)
	}
}

func TestParseEvent_BlankLine(t *testing.T) {
	ev, err := ParseEvent([]byte("  "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev != nil {
		t.Errorf("expected nil event for blank line, got %T", ev)
	}
}
