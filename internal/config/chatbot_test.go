package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadChatbotConfig_MissingFileUsesDefaults(t *testing.T) {
	os.Setenv("CHATBOT_CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
	defer os.Unsetenv("CHATBOT_CONFIG_PATH")

	cfg, err := LoadChatbotConfig()
	if err != nil {
		t.Fatalf("LoadChatbotConfig failed: %v", err)
	}

	if cfg.Generation.MaxTokens != 500 {
		t.Errorf("Expected default max_tokens 500, got %d", cfg.Generation.MaxTokens)
	}
	if cfg.Generation.Temperature != 0.7 {
		t.Errorf("Expected default temperature 0.7, got %f", cfg.Generation.Temperature)
	}
	if cfg.Retrieval.TopN != 3 {
		t.Errorf("Expected default top_n 3, got %d", cfg.Retrieval.TopN)
	}
	if cfg.Prompts.System == "" {
		t.Error("Expected default system prompt")
	}
	if !strings.Contains(cfg.Prompts.UserTemplate, "{{.Question}}") {
		t.Error("Expected default user template to reference the question")
	}
}

func TestLoadChatbotConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatbot.yaml")
	content := `
prompts:
  system: "You answer questions about Acme."
generation:
  max_tokens: 256
retrieval:
  top_n: 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	os.Setenv("CHATBOT_CONFIG_PATH", path)
	defer os.Unsetenv("CHATBOT_CONFIG_PATH")

	cfg, err := LoadChatbotConfig()
	if err != nil {
		t.Fatalf("LoadChatbotConfig failed: %v", err)
	}

	if cfg.Prompts.System != "You answer questions about Acme." {
		t.Errorf("Unexpected system prompt: %q", cfg.Prompts.System)
	}
	if cfg.Generation.MaxTokens != 256 {
		t.Errorf("Expected max_tokens 256, got %d", cfg.Generation.MaxTokens)
	}
	// Unset fields still pick up defaults.
	if cfg.Generation.Temperature != 0.7 {
		t.Errorf("Expected default temperature 0.7, got %f", cfg.Generation.Temperature)
	}
	if cfg.Retrieval.TopN != 5 {
		t.Errorf("Expected top_n 5, got %d", cfg.Retrieval.TopN)
	}
}

func TestLoadChatbotConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatbot.yaml")
	if err := os.WriteFile(path, []byte("prompts: [not: a: mapping"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	os.Setenv("CHATBOT_CONFIG_PATH", path)
	defer os.Unsetenv("CHATBOT_CONFIG_PATH")

	if _, err := LoadChatbotConfig(); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ChatbotConfig)
		wantErr bool
	}{
		{"defaults pass", func(c *ChatbotConfig) {}, false},
		{"negative max_tokens", func(c *ChatbotConfig) { c.Generation.MaxTokens = -1 }, true},
		{"temperature too high", func(c *ChatbotConfig) { c.Generation.Temperature = 2.5 }, true},
		{"negative top_n", func(c *ChatbotConfig) { c.Retrieval.TopN = -2 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &ChatbotConfig{}
			applyDefaults(cfg)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}
