package pipeline

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/merlin-analytics/chatbot-backend/internal/embedding"
	"github.com/merlin-analytics/chatbot-backend/internal/generator"
	"github.com/merlin-analytics/chatbot-backend/internal/models"
	"github.com/merlin-analytics/chatbot-backend/internal/retrieval"
)

// ErrEmptyQuestion is returned for empty or whitespace-only input before
// any model call is made, so callers can report it as a validation error
// rather than a generation failure.
var ErrEmptyQuestion = errors.New("no question provided")

const defaultTopN = 3

// Generator produces the final answer text from a question and its
// assembled context.
type Generator interface {
	Generate(ctx context.Context, question, contextBlock string) (string, bool)
}

// Pipeline wires question → embed → rank → assemble → generate. All
// collaborators are constructed once at startup and shared read-only
// across requests; the pipeline holds no per-request state or locks.
type Pipeline struct {
	embedder  embedding.Embedder
	corpus    retrieval.Corpus
	generator Generator
	topN      int
	logger    *zerolog.Logger
}

func New(embedder embedding.Embedder, corpus retrieval.Corpus, gen Generator, topN int, logger *zerolog.Logger) *Pipeline {
	if topN <= 0 {
		topN = defaultTopN
	}

	return &Pipeline{
		embedder:  embedder,
		corpus:    corpus,
		generator: gen,
		topN:      topN,
		logger:    logger,
	}
}

// AnswerQuestion runs the full retrieval-augmented pipeline for one
// question. An embedding failure cannot produce meaningful context, so it
// collapses to the generator's apology contract: the cause is logged and
// the caller sees a safe answer with Succeeded=false.
func (p *Pipeline) AnswerQuestion(ctx context.Context, question string) (models.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return models.Answer{}, ErrEmptyQuestion
	}

	answer := models.Answer{Question: question}

	queryVector, err := p.embedder.Embed(ctx, question)
	if err != nil {
		p.logger.Error().Err(err).Msg("query embedding failed")
		answer.Answer = generator.Apology
		return answer, nil
	}

	ranked := retrieval.Rank(queryVector, p.corpus, p.topN)
	contextBlock := retrieval.BuildContext(ranked, p.corpus)

	p.logger.Debug().
		Int("retrieved", len(ranked)).
		Int("context_bytes", len(contextBlock)).
		Msg("context assembled")

	answer.Answer, answer.Succeeded = p.generator.Generate(ctx, question, contextBlock)
	return answer, nil
}

// CorpusSize reports how many chunks are loaded, for health reporting.
func (p *Pipeline) CorpusSize() int {
	return p.corpus.Size()
}
