package gpt

import (
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Client struct {
	Client  openai.Client
	ModelID string
}

// NewClient builds a chat-completions client for any OpenAI-compatible
// endpoint. baseURL may be empty for the OpenAI default; pointing it at
// Groq's compatibility endpoint works unchanged.
func NewClient(apiKey string, model string, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("completion API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("completion model ID is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(3),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{
		Client:  openai.NewClient(opts...),
		ModelID: model,
	}, nil
}
