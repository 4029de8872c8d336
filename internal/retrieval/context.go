package retrieval

import "strings"

// contextSeparator keeps chunk boundaries visually distinct in the
// assembled prompt.
const contextSeparator = "\n\n"

// BuildContext maps ranked indices back to their chunk text, in ranked
// order, and joins them into a single context block. An empty ranked
// result yields an empty string; callers decide what that means.
func BuildContext(results []ScoredChunk, corpus Corpus) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, corpus.ChunkAt(r.Index))
	}

	return strings.Join(parts, contextSeparator)
}
