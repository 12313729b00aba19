package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"

	"github.com/tangde15/RAG-FastAPI-LangChain-Assistant/protocol"
	"github.com/tangde15/RAG-FastAPI-LangChain-Assistant/transcript"
)

const renderWidth = 100

var (
	toolNameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	userStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	cardStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// renderer formats assistant output for the terminal. In plain mode (or when
// stdout is not a tty) it passes text through untouched.
type renderer struct {
	markdown *glamour.TermRenderer
	color    bool
}

func newRenderer(style string, plain bool) *renderer {
	if plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		return &renderer{}
	}
	if style == "" {
		style = "auto"
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(renderWidth),
	)
	if err != nil {
		// Colors without markdown beats no output at all.
		return &renderer{color: true}
	}
	return &renderer{markdown: md, color: true}
}

// Markdown renders text as terminal markdown, falling back to the raw text.
func (r *renderer) Markdown(text string) string {
	if r.markdown == nil {
		return text
	}
	out, err := r.markdown.Render(text)
	if err != nil {
		return text
	}
	return out
}

// ToolStart is the one-line notice that a retrieval tool began running.
func (r *renderer) ToolStart(name string) string {
	if !r.color {
		return fmt.Sprintf("[%s running...]", name)
	}
	return dimStyle.Render(fmt.Sprintf("⋯ %s running", name))
}

// ToolCard formats a tool result as a bordered card with the decoded
// payload inside.
func (r *renderer) ToolCard(name, payload string) string {
	body := decodeToolPayload(payload)
	body = truncateLines(body, 12, renderWidth-4)
	if !r.color {
		return fmt.Sprintf("[%s]\n%s", name, body)
	}
	return cardStyle.Render(toolNameStyle.Render(name) + "\n" + body)
}

// User formats the stored-history prompt line for a user message.
func (r *renderer) User(text string) string {
	if !r.color {
		return "> " + text
	}
	return userStyle.Render("> ") + text
}

// Dim formats auxiliary status text.
func (r *renderer) Dim(text string) string {
	if !r.color {
		return text
	}
	return dimStyle.Render(text)
}

// FinalSummary formats the backend's wrap-up: retrieval counts and source
// references.
func (r *renderer) FinalSummary(final protocol.FinalSummaryEvent) string {
	var b strings.Builder
	if len(final.SearchSummary) > 0 {
		names := make([]string, 0, len(final.SearchSummary))
		for name := range final.SearchSummary {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s ×%d", name, final.SearchSummary[name]))
		}
		b.WriteString(r.Dim("Retrieval: " + strings.Join(parts, ", ")))
		b.WriteByte('\n')
	}
	for i, ref := range final.References {
		line := fmt.Sprintf("[%d] %s", i+1, ref.Title)
		if ref.URL != "" {
			line += " — " + ref.URL
		}
		b.WriteString(r.Dim(line))
		b.WriteByte('\n')
	}
	return b.String()
}

// Transcript renders a stored conversation: user prompts verbatim,
// assistant messages through markdown, tool calls as cards at their
// recorded anchors.
func (r *renderer) Transcript(t transcript.Transcript) string {
	var b strings.Builder
	for _, msg := range t {
		switch msg.Role {
		case transcript.RoleUser:
			b.WriteString(r.User(msg.Text))
			b.WriteString("\n\n")
		case transcript.RoleAssistant:
			for _, seg := range transcript.Interleave(msg.Text, msg.ToolCalls) {
				switch seg.Kind {
				case transcript.SegmentText:
					b.WriteString(r.Markdown(seg.Text))
				case transcript.SegmentTool:
					b.WriteString(r.ToolCard(seg.ToolName, seg.Payload))
					b.WriteByte('\n')
				}
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// HistoryTable renders the conversation index, newest first.
func (r *renderer) HistoryTable(summaries []transcript.ConversationSummary) string {
	var b strings.Builder
	for _, s := range summaries {
		when := "-"
		if s.Timestamp != 0 {
			when = formatUnixMillis(s.Timestamp)
		}
		first := runewidth.Truncate(firstLine(s.FirstUserMessage), 60, "…")
		line := fmt.Sprintf("%-36s  %-16s  %s", s.SessionID, when, first)
		if r.color {
			line = fmt.Sprintf("%s  %s  %s",
				toolNameStyle.Render(fmt.Sprintf("%-36s", s.SessionID)),
				dimStyle.Render(fmt.Sprintf("%-16s", when)),
				first)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// decodeToolPayload makes a tool payload readable. The backend serializes
// tool output to a JSON string, so payloads usually arrive as JSON text
// (often with \uXXXX escapes); pretty-print when they parse, pass through
// when they don't.
func decodeToolPayload(payload string) string {
	trimmed := strings.TrimSpace(payload)
	if trimmed == "" {
		return trimmed
	}

	var raw json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return trimmed
	}

	// Some producers double-encode: the payload is a JSON string holding
	// more JSON. Unwrap one level before pretty-printing.
	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		if json.Valid([]byte(inner)) {
			raw = json.RawMessage(inner)
		} else {
			return inner
		}
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return trimmed
	}
	return pretty.String()
}

// truncateLines caps a block at maxLines lines of at most width cells.
func truncateLines(text string, maxLines, width int) string {
	lines := strings.Split(text, "\n")
	clipped := len(lines) > maxLines
	if clipped {
		lines = lines[:maxLines]
	}
	for i, line := range lines {
		lines[i] = runewidth.Truncate(line, width, "…")
	}
	if clipped {
		lines = append(lines, "…")
	}
	return strings.Join(lines, "\n")
}

func formatUnixMillis(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}
