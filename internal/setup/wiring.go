package setup

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/merlin-analytics/chatbot-backend/internal/config"
	"github.com/merlin-analytics/chatbot-backend/internal/corpus"
	"github.com/merlin-analytics/chatbot-backend/internal/embedding"
	"github.com/merlin-analytics/chatbot-backend/internal/generator"
	"github.com/merlin-analytics/chatbot-backend/internal/llm"
	"github.com/merlin-analytics/chatbot-backend/internal/llm/bedrock"
	"github.com/merlin-analytics/chatbot-backend/internal/llm/gpt"
	"github.com/merlin-analytics/chatbot-backend/internal/pipeline"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

type Config struct {
	CorpusPath      string
	DefaultProvider string

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModelID string

	AWSRegion     string
	ClaudeModelID string

	EmbeddingsKey     string
	EmbeddingsBaseURL string
	EmbeddingModel    string
}

type Dependencies struct {
	Pipeline *pipeline.Pipeline
	Store    *corpus.Store
	Logger   *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		CorpusPath:      getEnv("CORPUS_PATH", "data/corpus.gob"),
		DefaultProvider: getEnv("DEFAULT_LLM_PROVIDER", "openai"),

		OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", groqBaseURL),
		OpenAIModelID: getEnv("OPENAI_MODEL_ID", "llama-3.1-8b-instant"),

		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID: getEnv("CLAUDE_MODEL_ID", ""),

		EmbeddingsKey:     getEnv("EMBEDDINGS_API_KEY", os.Getenv("OPENAI_API_KEY")),
		EmbeddingsBaseURL: getEnv("EMBEDDINGS_BASE_URL", ""),
		EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	store, err := corpus.Load(cfg.CorpusPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	embedder, err := embedding.NewOpenAIEmbedder(embedding.Config{
		APIKey:  cfg.EmbeddingsKey,
		BaseURL: cfg.EmbeddingsBaseURL,
		Model:   cfg.EmbeddingModel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	// Query vectors are only comparable to corpus vectors produced by the
	// same model. Refuse to start on a mismatch.
	if info := store.ModelInfo(); info != "" && info != embedder.ModelInfo() {
		return nil, fmt.Errorf("corpus was built with embedding model %q but runtime uses %q", info, embedder.ModelInfo())
	}

	llmClient, err := createLLMClient(ctx, cfg.DefaultProvider, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	chatbotConfig, err := config.LoadChatbotConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load chatbot config: %w", err)
	}

	gen, err := generator.New(chatbotConfig, llmClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	pipe := pipeline.New(embedder, store, gen, chatbotConfig.Retrieval.TopN, logger)

	logger.Info().
		Int("chunks", store.Size()).
		Str("provider", cfg.DefaultProvider).
		Str("embedding_model", embedder.ModelInfo()).
		Msg("Pipeline wired")

	return &Dependencies{
		Pipeline: pipe,
		Store:    store,
		Logger:   logger,
	}, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func createLLMClient(ctx context.Context, provider string, cfg *Config) (llm.LLMClient, error) {
	switch provider {
	case "bedrock":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID, cfg.OpenAIBaseURL)
	default:
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID, cfg.OpenAIBaseURL)
	}
}
