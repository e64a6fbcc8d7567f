package detect

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

// Generator is the single model call both pipeline stages go through.
// It exists so tests can substitute a fake for the Gemini client.
type Generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (string, error)
}

// GeminiGenerator runs a deterministic, JSON-only generation against one
// Gemini model through a process-wide client.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(client *genai.Client, model string) *GeminiGenerator {
	return &GeminiGenerator{
		client: client,
		model:  model,
	}
}

func (g *GeminiGenerator) GenerateContent(ctx context.Context, parts ...genai.Part) (string, error) {
	m := g.client.GenerativeModel(g.model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	txt := firstText(resp)
	if txt == "" {
		return "", fmt.Errorf("gemini generate: empty response")
	}
	return txt, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
