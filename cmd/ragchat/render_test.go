package main

import (
	"strings"
	"testing"

	"github.com/tangde15/RAG-FastAPI-LangChain-Assistant/transcript"
)

func TestDecodeToolPayload(t *testing.T) {
	t.Run("json object is pretty-printed", func(t *testing.T) {
		got := decodeToolPayload(`{"source":"web","hits":3}`)
		if !strings.Contains(got, "\"source\": \"web\"") {
			t.Errorf("got %q", got)
		}
	})

	t.Run("double-encoded json is unwrapped", func(t *testing.T) {
		got := decodeToolPayload(`"{\"source\":\"web\"}"`)
		if !strings.Contains(got, "\"source\": \"web\"") {
			t.Errorf("got %q", got)
		}
	})

	t.Run("encoded plain string is unwrapped", func(t *testing.T) {
		got := decodeToolPayload(`"no results found"`)
		if got != "no results found" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("unicode escapes are decoded", func(t *testing.T) {
		got := decodeToolPayload(`"第一"`)
		if got != "第一" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("non-json passes through", func(t *testing.T) {
		got := decodeToolPayload("raw tool output")
		if got != "raw tool output" {
			t.Errorf("got %q", got)
		}
	})
}

func TestTruncateLines(t *testing.T) {
	text := strings.Repeat("line\n", 20) + "line"
	got := truncateLines(text, 3, 80)
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 3 + ellipsis", len(lines))
	}
	if lines[3] != "…" {
		t.Errorf("last line = %q, want ellipsis", lines[3])
	}

	wide := strings.Repeat("宽", 50)
	got = truncateLines(wide, 5, 10)
	if len([]rune(got)) >= 50 {
		t.Errorf("wide line was not truncated: %q", got)
	}
}

func TestRendererPlainMode(t *testing.T) {
	r := newRenderer("", true)

	if got := r.Markdown("# heading"); got != "# heading" {
		t.Errorf("plain Markdown = %q, want passthrough", got)
	}
	if got := r.ToolStart("vector_search"); !strings.Contains(got, "vector_search") {
		t.Errorf("ToolStart = %q", got)
	}
	card := r.ToolCard("vector_search", `{"hits":1}`)
	if !strings.Contains(card, "vector_search") || !strings.Contains(card, "\"hits\": 1") {
		t.Errorf("ToolCard = %q", card)
	}
}

func TestRendererTranscript(t *testing.T) {
	r := newRenderer("", true)
	tr := transcript.Transcript{
		{Role: transcript.RoleUser, Text: "what is Go?"},
		{Role: transcript.RoleAssistant, Text: "A language."},
	}
	out := r.Transcript(tr)
	if !strings.Contains(out, "what is Go?") {
		t.Errorf("missing user text: %q", out)
	}
	if !strings.Contains(out, "A language.") {
		t.Errorf("missing assistant text: %q", out)
	}
}

func TestHistoryTable(t *testing.T) {
	r := newRenderer("", true)
	out := r.HistoryTable([]transcript.ConversationSummary{
		{SessionID: "sess-1", FirstUserMessage: "first\nsecond line", Timestamp: 1700000000000},
		{SessionID: "sess-2", FirstUserMessage: "undated"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if strings.Contains(lines[0], "second line") {
		t.Error("multi-line first message should collapse to its first line")
	}
	if !strings.Contains(lines[1], "-") {
		t.Error("undated summary should show a placeholder timestamp")
	}
}
