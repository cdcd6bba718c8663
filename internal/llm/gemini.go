package llm

import (
	"context"
	"errors"
	"fmt"

	"controle-financeiro/pkg/config"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Gemini serves prompts and image transcription through the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGemini(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logger.Info("Gemini client ready", zap.String("model", cfg.Model))
	return &Gemini{client: client, model: cfg.Model, logger: logger}, nil
}

// Generate implements extraction.Generator.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

// DetectText implements extraction.TextDetector with the image sent inline.
func (g *Gemini) DetectText(ctx context.Context, data []byte, contentType string) (string, error) {
	contents := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				{Text: transcribePrompt},
				{InlineData: &genai.Blob{MIMEType: contentType, Data: data}},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("transcribe image: %w", err)
	}
	return transcription("gemini", resp.Text())
}
