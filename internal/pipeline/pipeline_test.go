package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/merlin-analytics/chatbot-backend/internal/corpus"
	"github.com/merlin-analytics/chatbot-backend/internal/generator"
)

type mockEmbedder struct {
	VectorToReturn []float32
	ErrorToReturn  error
	CallCount      int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.CallCount++
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	return m.VectorToReturn, nil
}

func (m *mockEmbedder) ModelInfo() string { return "mock-embedder" }

type mockGenerator struct {
	AnswerToReturn string
	Succeeded      bool
	CallCount      int
	LastQuestion   string
	LastContext    string
}

func (m *mockGenerator) Generate(ctx context.Context, question, contextBlock string) (string, bool) {
	m.CallCount++
	m.LastQuestion = question
	m.LastContext = contextBlock
	return m.AnswerToReturn, m.Succeeded
}

func testStore(t *testing.T, chunks []string, embeddings [][]float32) *corpus.Store {
	t.Helper()
	store, err := corpus.New(corpus.CorpusData{Chunks: chunks, Embeddings: embeddings})
	if err != nil {
		t.Fatalf("corpus.New failed: %v", err)
	}
	return store
}

func TestAnswerQuestion_EmptyInput(t *testing.T) {
	logger := zerolog.Nop()
	embedder := &mockEmbedder{}
	gen := &mockGenerator{}
	store := testStore(t, []string{"a"}, [][]float32{{1}})

	pipe := New(embedder, store, gen, 3, &logger)

	tests := []string{"", "   ", "\n\t "}
	for _, question := range tests {
		_, err := pipe.AnswerQuestion(context.Background(), question)
		if !errors.Is(err, ErrEmptyQuestion) {
			t.Errorf("Expected ErrEmptyQuestion for %q, got %v", question, err)
		}
	}

	if embedder.CallCount != 0 {
		t.Errorf("Embedder called %d times for empty input, expected 0", embedder.CallCount)
	}
	if gen.CallCount != 0 {
		t.Errorf("Generator called %d times for empty input, expected 0", gen.CallCount)
	}
}

func TestAnswerQuestion_EmbeddingFailure(t *testing.T) {
	logger := zerolog.Nop()
	embedder := &mockEmbedder{ErrorToReturn: errors.New("model unavailable")}
	gen := &mockGenerator{}
	store := testStore(t, []string{"a"}, [][]float32{{1}})

	pipe := New(embedder, store, gen, 3, &logger)

	answer, err := pipe.AnswerQuestion(context.Background(), "who are you?")
	if err != nil {
		t.Fatalf("Expected no error (failure collapses to apology), got %v", err)
	}

	if answer.Succeeded {
		t.Error("Expected Succeeded=false after embedding failure")
	}
	if answer.Answer != generator.Apology {
		t.Errorf("Expected apology, got %q", answer.Answer)
	}
	if gen.CallCount != 0 {
		t.Error("Generator must not run when no context could be assembled")
	}
}

func TestAnswerQuestion_FullPipeline(t *testing.T) {
	logger := zerolog.Nop()
	embedder := &mockEmbedder{VectorToReturn: []float32{1, 0}}
	gen := &mockGenerator{AnswerToReturn: "Merlin Analytics is a consultancy.", Succeeded: true}
	store := testStore(t, []string{"the only chunk"}, [][]float32{{1, 0}})

	pipe := New(embedder, store, gen, 3, &logger)

	answer, err := pipe.AnswerQuestion(context.Background(), "  What does the company do?  ")
	if err != nil {
		t.Fatalf("AnswerQuestion failed: %v", err)
	}

	if !answer.Succeeded {
		t.Error("Expected Succeeded=true")
	}
	if answer.Answer != "Merlin Analytics is a consultancy." {
		t.Errorf("Expected mocked completion text, got %q", answer.Answer)
	}
	if answer.Question != "What does the company do?" {
		t.Errorf("Expected trimmed question echoed back, got %q", answer.Question)
	}
	if embedder.CallCount != 1 {
		t.Errorf("Expected exactly one embed call, got %d", embedder.CallCount)
	}
	if gen.LastContext != "the only chunk" {
		t.Errorf("Expected context to be the single chunk, got %q", gen.LastContext)
	}
	if gen.LastQuestion != "What does the company do?" {
		t.Errorf("Generator got question %q", gen.LastQuestion)
	}
}

func TestAnswerQuestion_RankedOrderInContext(t *testing.T) {
	logger := zerolog.Nop()
	embedder := &mockEmbedder{VectorToReturn: []float32{1, 0}}
	gen := &mockGenerator{AnswerToReturn: "ok", Succeeded: true}
	store := testStore(t,
		[]string{"orthogonal", "best match", "close second"},
		[][]float32{{0, 1}, {1, 0}, {0.9, 0.1}},
	)

	pipe := New(embedder, store, gen, 2, &logger)

	if _, err := pipe.AnswerQuestion(context.Background(), "q"); err != nil {
		t.Fatalf("AnswerQuestion failed: %v", err)
	}

	want := "best match\n\nclose second"
	if gen.LastContext != want {
		t.Errorf("Expected context %q, got %q", want, gen.LastContext)
	}
}

func TestAnswerQuestion_EmptyCorpus(t *testing.T) {
	logger := zerolog.Nop()
	embedder := &mockEmbedder{VectorToReturn: []float32{1, 0}}
	gen := &mockGenerator{AnswerToReturn: "I have no information about that.", Succeeded: true}
	store := testStore(t, nil, nil)

	pipe := New(embedder, store, gen, 3, &logger)

	answer, err := pipe.AnswerQuestion(context.Background(), "anything?")
	if err != nil {
		t.Fatalf("AnswerQuestion failed: %v", err)
	}

	if gen.LastContext != "" {
		t.Errorf("Expected empty context for empty corpus, got %q", gen.LastContext)
	}
	if !answer.Succeeded {
		t.Error("Empty corpus must still produce a non-crashing response")
	}
}

func TestNew_DefaultTopN(t *testing.T) {
	logger := zerolog.Nop()
	store := testStore(t, []string{"a"}, [][]float32{{1}})

	pipe := New(&mockEmbedder{}, store, &mockGenerator{}, 0, &logger)
	if pipe.topN != defaultTopN {
		t.Errorf("Expected default topN %d, got %d", defaultTopN, pipe.topN)
	}
}
