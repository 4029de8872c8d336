package main

import (
	"context"
	"encoding/gob"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/joho/godotenv"

	"github.com/merlin-analytics/chatbot-backend/internal/chunker"
	"github.com/merlin-analytics/chatbot-backend/internal/corpus"
	"github.com/merlin-analytics/chatbot-backend/internal/embedding"
	"github.com/merlin-analytics/chatbot-backend/internal/setup/logger"
)

const maxConcurrentRequests = 10

func main() {
	docs := flag.String("docs", "docs", "Directory with markdown/text documents")
	out := flag.String("out", "data/corpus.gob", "Output corpus file")
	model := flag.String("model", "text-embedding-3-small", "Embedding model")
	flag.Parse()

	log := logger.NewConsole(os.Getenv("LOG_LEVEL"))

	_ = godotenv.Load()

	if err := run(*docs, *out, *model); err != nil {
		log.Fatal().Err(err).Msg("Indexing failed")
	}

	log.Info().Str("output", *out).Msg("Corpus built")
}

func run(docsDir, outPath, model string) error {
	log := logger.NewConsole(os.Getenv("LOG_LEVEL"))
	ctx := context.Background()

	documents, err := chunker.LoadDocuments(docsDir)
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}
	if len(documents) == 0 {
		return fmt.Errorf("no documents found in %s", docsDir)
	}

	// Deterministic chunk order so rebuilding from the same docs gives
	// the same corpus indexes.
	paths := make([]string, 0, len(documents))
	for path := range documents {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var chunks []string
	for _, path := range paths {
		chunks = append(chunks, chunker.SplitMarkdown(documents[path])...)
	}

	log.Info().Int("documents", len(documents)).Int("chunks", len(chunks)).Msg("Documents chunked")

	embedder, err := embedding.NewOpenAIEmbedder(embedding.Config{
		APIKey:  os.Getenv("EMBEDDINGS_API_KEY"),
		BaseURL: os.Getenv("EMBEDDINGS_BASE_URL"),
		Model:   model,
	})
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	embeddings := make([][]float32, len(chunks))

	var wg sync.WaitGroup
	errChan := make(chan error, len(chunks))
	sem := make(chan struct{}, maxConcurrentRequests)

	for i := range chunks {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			vector, err := embedder.Embed(ctx, chunks[i])
			if err != nil {
				errChan <- fmt.Errorf("chunk %d: %w", i, err)
				return
			}
			embeddings[i] = vector
		}(i)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return err
		}
	}

	dimension := 0
	if len(embeddings) > 0 {
		dimension = len(embeddings[0])
	}

	data := corpus.CorpusData{
		Chunks:     chunks,
		Embeddings: embeddings,
		ModelInfo:  embedder.ModelInfo(),
		Dimension:  dimension,
	}

	// Reject inconsistent data before writing anything.
	if _, err := corpus.New(data); err != nil {
		return fmt.Errorf("corpus validation failed: %w", err)
	}

	return writeCorpus(outPath, data)
}

// writeCorpus writes to a temp file and renames, so a crash mid-write
// never leaves a truncated corpus behind.
func writeCorpus(outPath string, data corpus.CorpusData) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := gob.NewEncoder(file).Encode(data); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to encode corpus: %w", err)
	}

	if err := file.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, outPath)
}
