package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"controle-financeiro/pkg/config"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAI serves prompts and image transcription through the chat completions
// API. BaseURL allows compatible gateways.
type OpenAI struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func NewOpenAI(cfg config.OpenAIConfig, logger *zap.Logger) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	logger.Info("OpenAI client ready", zap.String("model", cfg.Model))
	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logger,
	}, nil
}

// Generate implements extraction.Generator.
func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	return o.complete(ctx, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})
}

// DetectText implements extraction.TextDetector with the image sent as a data URL.
func (o *OpenAI) DetectText(ctx context.Context, data []byte, contentType string) (string, error) {
	dataURL := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)

	text, err := o.complete(ctx, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: transcribePrompt},
			{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
				URL:    dataURL,
				Detail: openai.ImageURLDetailHigh,
			}},
		},
	})
	if err != nil {
		return "", err
	}
	return transcription("openai", text)
}

func (o *OpenAI) complete(ctx context.Context, msg openai.ChatCompletionMessage) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.1,
		Messages:    []openai.ChatCompletionMessage{msg},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in chat completion")
	}
	return resp.Choices[0].Message.Content, nil
}
