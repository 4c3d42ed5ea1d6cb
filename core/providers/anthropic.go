package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider sends generation requests to the Claude Messages API.
type AnthropicProvider struct {
	config Config
}

// NewAnthropicProvider creates a Claude-backed provider.
func NewAnthropicProvider(config Config) (*AnthropicProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid anthropic config: %w", err)
	}
	return &AnthropicProvider{config: config}, nil
}

// ID returns the provider key.
func (p *AnthropicProvider) ID() ID {
	return IDAnthropic
}

// Send submits the conversation to Claude and concatenates the text blocks
// of the reply.
func (p *AnthropicProvider) Send(ctx context.Context, userText, systemPrompt string, history []Turn, apiKey string) (string, error) {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	messages := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, turn := range history {
		if turn.Role == RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(turn.Text)))
		} else {
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(turn.Text)))
		}
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(userText)))

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.config.Model),
		MaxTokens: p.config.MaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: messages,
	}
	if p.config.Temperature > 0 {
		params.Temperature = anthropic.Float(p.config.Temperature)
	}
	if p.config.TopP > 0 {
		params.TopP = anthropic.Float(p.config.TopP)
	}

	message, err := client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude api error: %w", err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(textBlock.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("empty response from claude")
	}
	return text.String(), nil
}

// TestConnection issues a minimal request to validate the credential.
func (p *AnthropicProvider) TestConnection(ctx context.Context, apiKey string) error {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	_, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.config.Model),
		MaxTokens: connectionProbeMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(connectionProbeText)),
		},
	})
	if err != nil {
		return fmt.Errorf("claude api error: %w", err)
	}
	return nil
}
