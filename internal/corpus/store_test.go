package corpus

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_Valid(t *testing.T) {
	store, err := New(CorpusData{
		Chunks:     []string{"alpha", "beta"},
		Embeddings: [][]float32{{1, 0}, {0, 1}},
		ModelInfo:  "test-model",
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if store.Size() != 2 {
		t.Errorf("Expected size 2, got %d", store.Size())
	}
	if store.ChunkAt(1) != "beta" {
		t.Errorf("Expected chunk 'beta', got '%s'", store.ChunkAt(1))
	}
	if got := store.EmbeddingAt(0); got[0] != 1 || got[1] != 0 {
		t.Errorf("Unexpected embedding at 0: %v", got)
	}
	if store.Dimension() != 2 {
		t.Errorf("Expected dimension 2, got %d", store.Dimension())
	}
	if store.ModelInfo() != "test-model" {
		t.Errorf("Expected model info 'test-model', got '%s'", store.ModelInfo())
	}
}

func TestNew_Empty(t *testing.T) {
	store, err := New(CorpusData{})
	if err != nil {
		t.Fatalf("New failed for empty corpus: %v", err)
	}
	if store.Size() != 0 {
		t.Errorf("Expected size 0, got %d", store.Size())
	}
}

func TestNew_CountMismatch(t *testing.T) {
	_, err := New(CorpusData{
		Chunks:     []string{"alpha", "beta"},
		Embeddings: [][]float32{{1, 0}},
	})
	if err == nil {
		t.Error("Expected error for chunk/embedding count mismatch")
	}
}

func TestNew_RaggedDimensions(t *testing.T) {
	_, err := New(CorpusData{
		Chunks:     []string{"alpha", "beta"},
		Embeddings: [][]float32{{1, 0}, {0, 1, 2}},
	})
	if err == nil {
		t.Error("Expected error for ragged embedding dimensions")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	logger := zerolog.Nop()

	_, err := Load(filepath.Join(t.TempDir(), "missing.gob"), &logger)
	if err == nil {
		t.Error("Expected error for missing artifact")
	}
}

func TestLoad_Malformed(t *testing.T) {
	logger := zerolog.Nop()
	path := filepath.Join(t.TempDir(), "corpus.gob")
	if err := os.WriteFile(path, []byte("not a gob stream"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := Load(path, &logger)
	if err == nil {
		t.Error("Expected error for malformed artifact")
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	logger := zerolog.Nop()
	path := filepath.Join(t.TempDir(), "corpus.gob")

	data := CorpusData{
		Chunks:     []string{"the company was founded in 2015", "offices in london and leeds"},
		Embeddings: [][]float32{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}},
		ModelInfo:  "text-embedding-3-small",
		Dimension:  3,
	}

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := gob.NewEncoder(file).Encode(data); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	file.Close()

	store, err := Load(path, &logger)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if store.Size() != 2 {
		t.Errorf("Expected 2 chunks, got %d", store.Size())
	}
	if store.ChunkAt(0) != data.Chunks[0] {
		t.Errorf("Chunk 0 mismatch: got '%s'", store.ChunkAt(0))
	}
	if store.Dimension() != 3 {
		t.Errorf("Expected dimension 3, got %d", store.Dimension())
	}
}
