package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/saulo-duarte/accountability-buddy/internal/config"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

var ErrEmptyResponse = errors.New("empty response from model")

type Provider interface {
	SendPrompt(ctx context.Context, system, user string) ([]string, error)
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) SendPrompt(ctx context.Context, system, user string) ([]string, error) {
	log := config.WithContext(ctx)
	prompt := system + "\n\n" + user

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		log.WithError(err).Error("Failed to generate content from Gemini")
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw := result.Text()
	log.Debugf("[PLANNER] Raw Gemini response:\n%s", raw)

	return parseSuggestions(raw)
}

// parseSuggestions decodes a JSON array of strings, tolerating a markdown
// code fence around it.
func parseSuggestions(raw string) ([]string, error) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return nil, ErrEmptyResponse
	}
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var titles []string
	if err := json.Unmarshal([]byte(clean), &titles); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}
	return titles, nil
}
