// Package providers implements the generation capability behind the chat
// loop: one interface, three interchangeable vendor implementations
// selected by a runtime key.
package providers

import (
	"context"
	"fmt"
)

// =============================================================================
// Conversation Types
// =============================================================================

// Role tags one side of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one exchange entry forwarded to a provider. Only the bounded
// history window reaches a provider; display history is kept elsewhere.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// =============================================================================
// Provider Interface
// =============================================================================

// Provider is the abstract generation capability. Send issues one
// generation request and returns the assistant text; TestConnection issues
// a minimal low-token probe to validate a credential. Both surface vendor
// failures as errors carrying a human-readable message.
type Provider interface {
	// ID returns the stable provider key ("anthropic", "openai", "gemini").
	ID() ID

	// Send submits the user text with the system prompt and bounded history
	// and returns the generated assistant text.
	Send(ctx context.Context, userText, systemPrompt string, history []Turn, apiKey string) (string, error)

	// TestConnection validates the credential with a minimal request.
	TestConnection(ctx context.Context, apiKey string) error
}

// Probe text and token cap shared by the TestConnection implementations.
const (
	connectionProbeText      = "Say OK"
	connectionProbeMaxTokens = 10
)

// =============================================================================
// Generation Configuration
// =============================================================================

// Config holds per-provider generation parameters. A zero Temperature or
// TopP means the vendor default is used.
type Config struct {
	// Model is the vendor model identifier.
	Model string `yaml:"model"`

	// MaxTokens caps the generated output length.
	MaxTokens int64 `yaml:"max_tokens"`

	// Temperature controls sampling randomness when non-zero.
	Temperature float64 `yaml:"temperature"`

	// TopP controls nucleus sampling when non-zero.
	TopP float64 `yaml:"top_p"`
}

// DefaultAnthropicConfig returns the generation parameters for Claude.
func DefaultAnthropicConfig() Config {
	return Config{
		Model:     "claude-sonnet-4-5-20250929",
		MaxTokens: 1024,
	}
}

// DefaultOpenAIConfig returns the generation parameters for GPT.
func DefaultOpenAIConfig() Config {
	return Config{
		Model:       "gpt-4o-mini",
		MaxTokens:   1024,
		Temperature: 0.4,
		TopP:        0.9,
	}
}

// DefaultGeminiConfig returns the generation parameters for Gemini.
func DefaultGeminiConfig() Config {
	return Config{
		Model:       "gemini-2.0-flash",
		MaxTokens:   1024,
		Temperature: 0.4,
		TopP:        0.9,
	}
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("provider model must not be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("provider max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("provider temperature must be in [0, 2], got %g", c.Temperature)
	}
	if c.TopP < 0 || c.TopP > 1 {
		return fmt.Errorf("provider top_p must be in [0, 1], got %g", c.TopP)
	}
	return nil
}
