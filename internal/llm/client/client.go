// Package client builds eino chat models against the configured
// OpenAI-compatible endpoint (vLLM in the shipped deployment). It only
// constructs and delegates; retries, pooling and transport concerns are
// left to the SDK.
package client

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/schema"

	"opennotebook/internal/config"
)

// LLMClient holds one chat model per configured role. Construction does
// not touch the network; the endpoint is first contacted on Generate.
type LLMClient struct {
	chat      *openai.ChatModel
	transform *openai.ChatModel

	embeddingModel string
}

// New constructs chat models for the default chat and transformation
// models named in settings, both pointed at the configured API base.
func New(ctx context.Context, settings *config.Settings) (*LLMClient, error) {
	chat, err := newChatModel(ctx, settings, settings.DefaultChatModel)
	if err != nil {
		return nil, fmt.Errorf("chat model: %w", err)
	}
	transform, err := newChatModel(ctx, settings, settings.DefaultTransformationModel)
	if err != nil {
		return nil, fmt.Errorf("transformation model: %w", err)
	}

	return &LLMClient{
		chat:           chat,
		transform:      transform,
		embeddingModel: settings.DefaultEmbeddingModel,
	}, nil
}

func newChatModel(ctx context.Context, settings *config.Settings, model string) (*openai.ChatModel, error) {
	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: settings.OpenAIAPIBase,
		APIKey:  settings.OpenAIAPIKey,
		Model:   model,
	})
}

// Complete sends a single user prompt to the default chat model and
// returns the assistant content.
func (c *LLMClient) Complete(ctx context.Context, prompt string) (string, error) {
	return generate(ctx, c.chat, prompt)
}

// Transform runs a prompt through the transformation model.
func (c *LLMClient) Transform(ctx context.Context, prompt string) (string, error) {
	return generate(ctx, c.transform, prompt)
}

// EmbeddingModel returns the configured embedding model name for callers
// that drive the embeddings endpoint directly.
func (c *LLMClient) EmbeddingModel() string {
	return c.embeddingModel
}

func generate(ctx context.Context, model *openai.ChatModel, prompt string) (string, error) {
	msg, err := model.Generate(ctx, []*schema.Message{
		schema.UserMessage(prompt),
	})
	if err != nil {
		return "", err
	}
	if msg == nil {
		return "", fmt.Errorf("model returned no message")
	}
	return msg.Content, nil
}
