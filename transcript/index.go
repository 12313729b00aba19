package transcript

import "sort"

// ConversationSummary is one sidebar entry for a stored session.
type ConversationSummary struct {
	SessionID        string
	FirstUserMessage string
	// Timestamp is unix milliseconds; zero means the session is undated and
	// sorts last.
	Timestamp int64
}

// DedupeSummaries collapses a flat summary list to one entry per session id
// and orders it most-recent-first.
//
// The first-encountered summary per session wins; a later duplicate's
// content (including its timestamp) is discarded entirely, so dedup order
// never leaks into the final ordering — only the kept entry's timestamp is
// a sort key. Ties preserve the input's relative order.
func DedupeSummaries(in []ConversationSummary) []ConversationSummary {
	seen := make(map[string]struct{}, len(in))
	out := make([]ConversationSummary, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s.SessionID]; ok {
			continue
		}
		seen[s.SessionID] = struct{}{}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}
