package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// contentGenerator is the slice of the Gemini API the cloud backend needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model, prompt string) (string, error)
}

// Cloud sends prompts to a hosted Gemini model.
type Cloud struct {
	gen   contentGenerator
	model string
}

// NewCloud creates a Gemini API client for apiKey. The client is created once and
// shared by every request.
func NewCloud(ctx context.Context, apiKey, model string) (*Cloud, error) {
	if apiKey == "" {
		return nil, errors.New("cloud backend: api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Cloud{gen: &genaiGenerator{client: client}, model: model}, nil
}

func (c *Cloud) Kind() Kind { return KindCloud }

// CloudPrompt joins the instruction and the transcript with a blank line.
func CloudPrompt(prompt, transcript string) string {
	return prompt + "\n\n" + transcript
}

func (c *Cloud) Generate(ctx context.Context, transcript, prompt string) (Output, error) {
	text, err := c.gen.GenerateContent(ctx, c.model, CloudPrompt(prompt, transcript))
	if err != nil {
		return Output{}, fmt.Errorf("%w: gemini: %w", ErrRemoteGeneration, err)
	}
	if strings.TrimSpace(text) == "" {
		return Output{}, fmt.Errorf("%w: gemini: empty response", ErrRemoteGeneration)
	}
	return Output{Text: text}, nil
}

type genaiGenerator struct {
	client *genai.Client
}

func (g *genaiGenerator) GenerateContent(ctx context.Context, model, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", errors.New("response has no candidates")
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	return text.String(), nil
}
