package llm

import (
	"context"
)

// LLM is the chat-completion client used by the answer pipeline and by the
// evaluation metrics.
type LLM interface {
	// Generate sends prompt as a single user message.
	Generate(ctx context.Context, prompt string, options ...GenerateOption) (*Generation, error)
	// GenerateContent sends a full message list.
	GenerateContent(ctx context.Context, messages []Message, options ...GenerateOption) (*Generation, error)
}

// Generation is the assembled result of one completion call.
type Generation struct {
	Role             string `json:"role"`
	Content          string `json:"content"`
	ReasoningContent string `json:"reasoning_content,omitempty"`
	StopReason       string `json:"stop_reason"`
	Usage            *Usage `json:"usage,omitempty"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
