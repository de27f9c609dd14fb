package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// ErrNotConfigured is returned when no Gemini API key is set. Callers check
// it to hide assistant features instead of failing requests.
var ErrNotConfigured = errors.New("ai: no Gemini API key configured")

// Assistant wraps the Gemini client behind typed prompt helpers. Every helper
// is a single structured-output call; there is no conversation state.
type Assistant struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, apiKey, model string) (*Assistant, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &Assistant{client: client, model: model}, nil
}

// complete sends one prompt and returns the raw JSON text of the response.
// responseSchema constrains the model to the expected shape.
func (a *Assistant) complete(ctx context.Context, system, prompt string, responseSchema *genai.Schema) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema,
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("empty model response")
	}
	return text, nil
}
