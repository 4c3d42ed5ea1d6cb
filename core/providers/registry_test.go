package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKnownProviders(t *testing.T) {
	for _, id := range IDs {
		p, err := New(id)
		require.NoError(t, err, "provider %s", id)
		assert.Equal(t, id, p.ID())
	}
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(ID("mystery"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestIDValid(t *testing.T) {
	assert.True(t, IDAnthropic.Valid())
	assert.True(t, IDOpenAI.Valid())
	assert.True(t, IDGemini.Valid())
	assert.False(t, ID("").Valid())
	assert.False(t, ID("mystery").Valid())
}

func TestDisplayConfigs(t *testing.T) {
	for _, id := range IDs {
		cfg, ok := Display(id)
		require.True(t, ok, "provider %s", id)
		assert.NotEmpty(t, cfg.Name)
		assert.NotEmpty(t, cfg.KeyPlaceholder)
		assert.NotEmpty(t, cfg.HelpURL)
		assert.NotEmpty(t, cfg.PrivacyNote)
	}

	_, ok := Display(ID("mystery"))
	assert.False(t, ok)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"default anthropic", DefaultAnthropicConfig(), false},
		{"default openai", DefaultOpenAIConfig(), false},
		{"default gemini", DefaultGeminiConfig(), false},
		{"missing model", Config{MaxTokens: 100}, true},
		{"zero max tokens", Config{Model: "m"}, true},
		{"temperature out of range", Config{Model: "m", MaxTokens: 10, Temperature: 3}, true},
		{"top_p out of range", Config{Model: "m", MaxTokens: 10, TopP: 1.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConstructorsRejectInvalidConfig(t *testing.T) {
	bad := Config{}
	_, err := NewAnthropicProvider(bad)
	assert.Error(t, err)
	_, err = NewOpenAIProvider(bad)
	assert.Error(t, err)
	_, err = NewGeminiProvider(bad)
	assert.Error(t, err)
}
