package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultSystemPrompt = `You are a helpful assistant for Merlin Analytics, a specialist consultancy focused on EPM-based finance transformations. Answer questions about the company using the provided context. Be professional, concise, and friendly. If you don't know something based on the context, say so politely.`

	defaultUserTemplate = `Context about Merlin Analytics:
{{.Context}}

Question: {{.Question}}

Please provide a helpful answer based on the context above.`
)

// LoadChatbotConfig reads the YAML config from CHATBOT_CONFIG_PATH
// (default configs/chatbot.yaml). A missing file yields the built-in
// defaults; a malformed file is an error.
func LoadChatbotConfig() (*ChatbotConfig, error) {
	path := os.Getenv("CHATBOT_CONFIG_PATH")
	if path == "" {
		path = "configs/chatbot.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := &ChatbotConfig{}
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, err
	}

	var cfg ChatbotConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *ChatbotConfig) {
	if cfg.Prompts.System == "" {
		cfg.Prompts.System = defaultSystemPrompt
	}
	if cfg.Prompts.UserTemplate == "" {
		cfg.Prompts.UserTemplate = defaultUserTemplate
	}
	if cfg.Generation.MaxTokens == 0 {
		cfg.Generation.MaxTokens = 500
	}
	if cfg.Generation.Temperature == 0 {
		cfg.Generation.Temperature = 0.7
	}
	if cfg.Retrieval.TopN == 0 {
		cfg.Retrieval.TopN = 3
	}
}

func (c *ChatbotConfig) Validate() error {
	if c.Generation.MaxTokens < 0 {
		return fmt.Errorf("generation.max_tokens must be positive, got %d", c.Generation.MaxTokens)
	}
	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		return fmt.Errorf("generation.temperature must be in [0, 2], got %f", c.Generation.Temperature)
	}
	if c.Retrieval.TopN < 0 {
		return fmt.Errorf("retrieval.top_n must be positive, got %d", c.Retrieval.TopN)
	}
	return nil
}
