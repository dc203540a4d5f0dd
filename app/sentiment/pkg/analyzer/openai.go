package analyzer

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const systemPrompt = "You are a JSON generator. Output only the JSON object."

// ChatModel adapts an eino chat model to Model.
type ChatModel struct {
	cm model.ChatModel
}

// NewOpenAI builds an OpenAI-compatible chat model.
func NewOpenAI(ctx context.Context, baseURL, apiKey, modelName string) (*ChatModel, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("init openai chat model: %w", err)
	}
	return &ChatModel{cm: cm}, nil
}

// NewChatModel wraps an existing eino chat model.
func NewChatModel(cm model.ChatModel) *ChatModel {
	return &ChatModel{cm: cm}
}

// Generate implements Model.
func (m *ChatModel) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := m.cm.Generate(ctx, []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: prompt},
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
