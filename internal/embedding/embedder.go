package embedding

import "context"

// Embedder maps free text to a fixed-dimension dense vector. The serving
// process must use the same model that produced the stored corpus
// embeddings; ModelInfo lets the wiring layer verify that at startup.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	ModelInfo() string
}
