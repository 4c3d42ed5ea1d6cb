package providers

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider sends generation requests to the Gemini API. Assistant
// turns are remapped to Gemini's "model" role on the wire.
type GeminiProvider struct {
	config Config
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(config Config) (*GeminiProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gemini config: %w", err)
	}
	return &GeminiProvider{config: config}, nil
}

// ID returns the provider key.
func (p *GeminiProvider) ID() ID {
	return IDGemini
}

// Send submits the conversation with the system prompt as a system
// instruction and returns the concatenated reply text.
func (p *GeminiProvider) Send(ctx context.Context, userText, systemPrompt string, history []Turn, apiKey string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("gemini api error: %w", err)
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		var role genai.Role = genai.RoleUser
		if turn.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(userText, genai.RoleUser))

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		MaxOutputTokens:   int32(p.config.MaxTokens),
	}
	if p.config.Temperature > 0 {
		genConfig.Temperature = genai.Ptr(float32(p.config.Temperature))
	}
	if p.config.TopP > 0 {
		genConfig.TopP = genai.Ptr(float32(p.config.TopP))
	}

	resp, err := client.Models.GenerateContent(ctx, p.config.Model, contents, genConfig)
	if err != nil {
		return "", fmt.Errorf("gemini api error: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from gemini")
	}
	return text, nil
}

// TestConnection issues a minimal request to validate the credential.
func (p *GeminiProvider) TestConnection(ctx context.Context, apiKey string) error {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("gemini api error: %w", err)
	}

	_, err = client.Models.GenerateContent(ctx, p.config.Model,
		[]*genai.Content{genai.NewContentFromText(connectionProbeText, genai.RoleUser)},
		&genai.GenerateContentConfig{MaxOutputTokens: connectionProbeMaxTokens},
	)
	if err != nil {
		return fmt.Errorf("gemini api error: %w", err)
	}
	return nil
}
