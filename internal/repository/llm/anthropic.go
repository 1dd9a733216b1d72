package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dealflow/pkg/logger"
	"dealflow/pkg/metrics"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicMaxTokens = 4096

// AnthropicProvider is the generic prompt -> structured JSON path.
// Web search requests are served without grounding; the Gemini provider
// owns the search-augmented path.
type AnthropicProvider struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewAnthropicProvider(apiKey, model string) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}

	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &AnthropicProvider{
		client: &client,
		model:  anthropic.Model(model),
	}, nil
}

func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// schemaSuffix turns the schema hint into a response-format instruction.
func schemaSuffix(schema map[string]any) string {
	if schema == nil {
		return ""
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		return ""
	}

	return fmt.Sprintf("\n\nRespond with only valid JSON matching this schema, no prose:\n%s", raw)
}

func (p *AnthropicProvider) Invoke(ctx context.Context, prompt string, schema map[string]any, useWebSearch bool) (string, error) {
	if useWebSearch {
		logger.Debug("Anthropic provider ignoring web search request")
	}

	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model: p.model,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt + schemaSuffix(schema)),
			),
		},
		MaxTokens: anthropicMaxTokens,
	})
	if err != nil {
		metrics.LLMCallsTotal.WithLabelValues(p.Name(), "error").Inc()
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	if message == nil || len(message.Content) == 0 {
		metrics.LLMCallsTotal.WithLabelValues(p.Name(), "empty").Inc()
		return "", errors.New("empty response from anthropic")
	}

	var responseText string
	if block := message.Content[0]; block.Type == "text" {
		responseText = block.Text
	}

	metrics.LLMCallsTotal.WithLabelValues(p.Name(), "ok").Inc()
	logger.Debug("Anthropic response",
		"prompt_tokens", message.Usage.InputTokens,
		"completion_tokens", message.Usage.OutputTokens,
	)

	return responseText, nil
}
