package config

// ChatbotConfig is the complete chatbot configuration: the prompt
// contract, sampling parameters, and retrieval tuning.
type ChatbotConfig struct {
	Prompts    PromptsConfig    `yaml:"prompts"`
	Generation GenerationConfig `yaml:"generation"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
}

// PromptsConfig holds the fixed system instruction and the user-turn
// template. The template is rendered with {{.Context}} and {{.Question}}.
type PromptsConfig struct {
	System       string `yaml:"system"`
	UserTemplate string `yaml:"user_template"`
}

// GenerationConfig bounds cost and latency of the completion call.
type GenerationConfig struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// RetrievalConfig tunes how much context is assembled per question.
type RetrievalConfig struct {
	TopN int `yaml:"top_n"`
}
