package llm

// LLMRequest carries one completion call: a system instruction, a user
// turn, and the fixed sampling parameters.
type LLMRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

type LLMResponse struct {
	Content    string
	StopReason string
}
