package providers

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

// OpenAIProvider sends generation requests to the OpenAI Responses API.
type OpenAIProvider struct {
	config Config
}

// NewOpenAIProvider creates a GPT-backed provider.
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid openai config: %w", err)
	}
	return &OpenAIProvider{config: config}, nil
}

// ID returns the provider key.
func (p *OpenAIProvider) ID() ID {
	return IDOpenAI
}

// Send submits the conversation, system prompt first, and returns the
// aggregated output text.
func (p *OpenAIProvider) Send(ctx context.Context, userText, systemPrompt string, history []Turn, apiKey string) (string, error) {
	client := openai.NewClient(option.WithAPIKey(apiKey))

	input := make(responses.ResponseInputParam, 0, len(history)+2)
	input = append(input, responses.ResponseInputItemParamOfMessage(systemPrompt, responses.EasyInputMessageRoleSystem))
	for _, turn := range history {
		role := responses.EasyInputMessageRoleUser
		if turn.Role == RoleAssistant {
			role = responses.EasyInputMessageRoleAssistant
		}
		input = append(input, responses.ResponseInputItemParamOfMessage(turn.Text, role))
	}
	input = append(input, responses.ResponseInputItemParamOfMessage(userText, responses.EasyInputMessageRoleUser))

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(p.config.Model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: input,
		},
		MaxOutputTokens: openai.Int(p.config.MaxTokens),
	}
	if p.config.Temperature > 0 {
		params.Temperature = openai.Float(p.config.Temperature)
	}
	if p.config.TopP > 0 {
		params.TopP = openai.Float(p.config.TopP)
	}

	result, err := client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}

	text := result.OutputText()
	if text == "" {
		return "", fmt.Errorf("empty response from gpt")
	}
	return text, nil
}

// TestConnection issues a minimal request to validate the credential.
func (p *OpenAIProvider) TestConnection(ctx context.Context, apiKey string) error {
	client := openai.NewClient(option.WithAPIKey(apiKey))

	_, err := client.Responses.New(ctx, responses.ResponseNewParams{
		Model: shared.ResponsesModel(p.config.Model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(connectionProbeText, responses.EasyInputMessageRoleUser),
			},
		},
		MaxOutputTokens: openai.Int(connectionProbeMaxTokens),
	})
	if err != nil {
		return fmt.Errorf("openai api error: %w", err)
	}
	return nil
}
