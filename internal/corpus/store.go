package corpus

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// CorpusData is the on-disk layout of the precomputed index artifact.
// Chunks[i] and Embeddings[i] describe the same unit of source text.
type CorpusData struct {
	Chunks     []string
	Embeddings [][]float32
	ModelInfo  string
	Dimension  int
}

// Store holds the corpus in memory: parallel chunk and embedding
// sequences, loaded once at startup and never mutated afterwards. Reads
// need no locking because no writer exists post-initialization.
type Store struct {
	chunks     []string
	embeddings [][]float32
	modelInfo  string
	dimension  int
}

// Load reads and validates the gob artifact at path. A missing or
// malformed artifact is a startup failure, not a per-request condition.
func Load(path string, logger *zerolog.Logger) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus artifact %s: %w", path, err)
	}
	defer file.Close()

	var data CorpusData
	if err := gob.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode corpus artifact %s: %w", path, err)
	}

	store, err := New(data)
	if err != nil {
		return nil, fmt.Errorf("corpus artifact %s: %w", path, err)
	}

	logger.Info().
		Int("chunks", store.Size()).
		Int("dimension", store.Dimension()).
		Str("model", store.ModelInfo()).
		Msg("Corpus loaded")

	return store, nil
}

// New validates the corpus invariants and builds a Store. Every embedding
// must have the same dimension, and chunk and embedding counts must match.
func New(data CorpusData) (*Store, error) {
	if len(data.Chunks) != len(data.Embeddings) {
		return nil, fmt.Errorf("chunk/embedding count mismatch: %d chunks, %d embeddings",
			len(data.Chunks), len(data.Embeddings))
	}

	dim := data.Dimension
	for i, emb := range data.Embeddings {
		if dim == 0 {
			dim = len(emb)
		}
		if len(emb) != dim {
			return nil, fmt.Errorf("embedding %d has dimension %d, expected %d", i, len(emb), dim)
		}
	}

	return &Store{
		chunks:     data.Chunks,
		embeddings: data.Embeddings,
		modelInfo:  data.ModelInfo,
		dimension:  dim,
	}, nil
}

// Size returns the number of chunks in the corpus.
func (s *Store) Size() int {
	return len(s.chunks)
}

// ChunkAt returns the raw text of chunk i.
func (s *Store) ChunkAt(i int) string {
	return s.chunks[i]
}

// EmbeddingAt returns the embedding vector of chunk i. Callers must not
// modify the returned slice.
func (s *Store) EmbeddingAt(i int) []float32 {
	return s.embeddings[i]
}

// ModelInfo returns the name of the model that produced the stored
// embeddings, or an empty string for artifacts that predate the field.
func (s *Store) ModelInfo() string {
	return s.modelInfo
}

// Dimension returns the embedding dimensionality.
func (s *Store) Dimension() int {
	return s.dimension
}
