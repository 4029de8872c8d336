package retrieval

import (
	"math"
	"sort"
)

// Corpus is the read-only view of the chunk store the retrieval step
// needs. The concrete implementation lives in internal/corpus.
type Corpus interface {
	Size() int
	ChunkAt(i int) string
	EmbeddingAt(i int) []float32
}

// ScoredChunk pairs a corpus index with its similarity score.
type ScoredChunk struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// Cosine computes the cosine similarity between two vectors, in [-1, 1].
// A zero-norm vector on either side scores -Inf instead of NaN so it
// always sorts last and never corrupts the ranking. Vectors of unequal
// length are compared over their common prefix.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return math.Inf(-1)
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores every chunk in the corpus against the query vector and
// returns at most topN results, score descending. Ties are broken by
// ascending corpus index so identical inputs always rank identically.
// An empty corpus yields an empty result. This is a brute-force linear
// scan; corpus sizes here are small enough that nothing smarter pays off.
func Rank(query []float32, corpus Corpus, topN int) []ScoredChunk {
	size := corpus.Size()
	if size == 0 || topN <= 0 {
		return nil
	}

	results := make([]ScoredChunk, size)
	for i := 0; i < size; i++ {
		results[i] = ScoredChunk{
			Index: i,
			Score: Cosine(query, corpus.EmbeddingAt(i)),
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Index < results[j].Index
	})

	if topN < len(results) {
		results = results[:topN]
	}

	return results
}
