package llm

import (
	"context"
	"errors"
	"fmt"

	"dealflow/pkg/metrics"

	"google.golang.org/genai"
)

// GeminiProvider serves the search-augmented path: when useWebSearch is
// set the completion is grounded with the Google Search tool.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

func (p *GeminiProvider) Name() string {
	return "gemini"
}

func (p *GeminiProvider) Invoke(ctx context.Context, prompt string, schema map[string]any, useWebSearch bool) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if useWebSearch {
		cfg.Tools = []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		}
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt+schemaSuffix(schema), genai.RoleUser),
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		metrics.LLMCallsTotal.WithLabelValues(p.Name(), "error").Inc()
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := result.Text()
	if text == "" {
		metrics.LLMCallsTotal.WithLabelValues(p.Name(), "empty").Inc()
		return "", errors.New("empty response from gemini")
	}

	metrics.LLMCallsTotal.WithLabelValues(p.Name(), "ok").Inc()
	return text, nil
}
