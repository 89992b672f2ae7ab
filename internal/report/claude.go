package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeGenerator implements TextGenerator using the Anthropic Messages
// API at a low, near-deterministic temperature.
type ClaudeGenerator struct {
	client      anthropic.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewClaudeGenerator creates a generator for the given model.
func NewClaudeGenerator(apiKey, model string, temperature float64, maxTokens int) *ClaudeGenerator {
	return &ClaudeGenerator{
		client:      anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Generate sends the prompt as a single user message and returns the
// concatenated text blocks of the response verbatim.
func (g *ClaudeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: int64(g.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if g.temperature > 0 {
		params.Temperature = anthropic.Float(g.temperature)
	}

	resp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic api: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("anthropic api: empty response")
	}
	return b.String(), nil
}
