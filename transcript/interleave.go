package transcript

import (
	"sort"
	"strings"
)

// SegmentKind discriminates between segment kinds.
type SegmentKind int

const (
	// SegmentText is a run of message text.
	SegmentText SegmentKind = iota
	// SegmentTool is a tool result positioned among the text.
	SegmentTool
)

// Segment is one renderable unit of an assistant message: either a text run
// or a tool result.
type Segment struct {
	Kind     SegmentKind
	Text     string
	ToolName string
	Payload  string
}

// Interleave orders tool calls among the text they were recorded against.
// Calls are stably sorted by anchor (ties keep arrival order, since several
// calls can land at the same text length), and a text segment is emitted for
// every non-whitespace gap between cut points. Whitespace-only gaps are
// elided rather than rendered as empty blocks.
//
// Interleave is pure: it copies its inputs, never mutates them, and returns
// identical output for identical inputs, so it may be called repeatedly
// against snapshots of a buffer that is still streaming.
func Interleave(text string, calls []ToolCall) []Segment {
	sorted := make([]ToolCall, len(calls))
	copy(sorted, calls)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Anchor < sorted[j].Anchor
	})

	segments := make([]Segment, 0, 2*len(sorted)+1)
	cut := 0
	for _, call := range sorted {
		anchor := call.Anchor
		if anchor > len(text) {
			anchor = len(text)
		}
		if anchor < cut {
			anchor = cut
		}
		if gap := text[cut:anchor]; strings.TrimSpace(gap) != "" {
			segments = append(segments, Segment{Kind: SegmentText, Text: gap})
		}
		segments = append(segments, Segment{
			Kind:     SegmentTool,
			ToolName: call.Name,
			Payload:  call.Payload,
		})
		cut = anchor
	}
	if tail := text[cut:]; strings.TrimSpace(tail) != "" {
		segments = append(segments, Segment{Kind: SegmentText, Text: tail})
	}
	return segments
}
