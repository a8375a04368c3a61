package backend

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// OpenAIClient targets any OpenAI-compatible completion server (including
// Ollama's /v1 surface) through langchaingo.
type OpenAIClient struct {
	llm    *openai.LLM
	logger *zap.Logger
}

func NewOpenAIClient(baseURL, model, token string, logger *zap.Logger) (*OpenAIClient, error) {
	if token == "" {
		// Local OpenAI-compatible servers ignore the token but the client
		// refuses to build without one.
		token = "unused"
	}
	llm, err := openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithToken(strings.TrimPrefix(token, "Bearer ")),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, &Error{Provider: "openai", Err: err}
	}
	return &OpenAIClient{llm: llm, logger: logger}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, llms.WithMaxTokens(ollamaMaxTokens))
	if err != nil {
		return "", &Error{Provider: "openai", Err: err}
	}
	return out, nil
}
