package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Provider is the contract for an OpenAI-compatible chat completions
// backend. Implementations own transport and authentication.
type Provider interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error)
}
