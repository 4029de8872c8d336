package generator

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/rs/zerolog"

	"github.com/merlin-analytics/chatbot-backend/internal/config"
	"github.com/merlin-analytics/chatbot-backend/internal/llm"
)

// Apology is the only failure text end users ever see. Root causes are
// logged for operators, never returned to callers.
const Apology = "Sorry, I encountered an error generating the response. Please try again."

// Generator turns a question and its retrieved context into an answer via
// a single completion call. It never returns an error: any failure of the
// remote call collapses to Apology with succeeded=false. Retries are a
// caller policy, not built in here.
type Generator struct {
	llmClient    llm.LLMClient
	system       string
	userTemplate *template.Template
	maxTokens    int
	temperature  float64
	logger       *zerolog.Logger
}

type promptData struct {
	Context  string
	Question string
}

func New(cfg *config.ChatbotConfig, llmClient llm.LLMClient, logger *zerolog.Logger) (*Generator, error) {
	tmpl, err := template.New("user-turn").Parse(cfg.Prompts.UserTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user prompt template: %w", err)
	}

	return &Generator{
		llmClient:    llmClient,
		system:       cfg.Prompts.System,
		userTemplate: tmpl,
		maxTokens:    cfg.Generation.MaxTokens,
		temperature:  cfg.Generation.Temperature,
		logger:       logger,
	}, nil
}

// Generate answers the question from the supplied context block. The
// context may be empty; the system instruction tells the model to decline
// politely when it has nothing to ground on.
func (g *Generator) Generate(ctx context.Context, question, contextBlock string) (string, bool) {
	prompt, err := g.buildPrompt(contextBlock, question)
	if err != nil {
		g.logger.Error().Err(err).Msg("failed to build prompt from template")
		return Apology, false
	}

	resp, err := g.llmClient.InvokeModel(ctx, llm.LLMRequest{
		System:      g.system,
		Prompt:      prompt,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		g.logger.Error().Err(err).Msg("completion call failed")
		return Apology, false
	}

	if resp.Content == "" {
		g.logger.Error().Str("stop_reason", resp.StopReason).Msg("completion returned empty content")
		return Apology, false
	}

	return resp.Content, true
}

func (g *Generator) buildPrompt(contextBlock, question string) (string, error) {
	var buf bytes.Buffer
	if err := g.userTemplate.Execute(&buf, promptData{Context: contextBlock, Question: question}); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}
	return buf.String(), nil
}
