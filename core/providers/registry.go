package providers

import "fmt"

// =============================================================================
// Provider Registry
// =============================================================================

// ID is the stable runtime key selecting a provider implementation.
type ID string

const (
	IDGemini    ID = "gemini"
	IDAnthropic ID = "anthropic"
	IDOpenAI    ID = "openai"
)

// IDs lists every known provider in display order.
var IDs = []ID{IDGemini, IDAnthropic, IDOpenAI}

// Valid reports whether the ID names a known provider.
func (id ID) Valid() bool {
	switch id {
	case IDGemini, IDAnthropic, IDOpenAI:
		return true
	}
	return false
}

// DisplayConfig carries the UI-facing metadata for one provider.
type DisplayConfig struct {
	Name           string
	KeyPlaceholder string
	HelpURL        string
	HelpLabel      string
	PrivacyNote    string
}

// displayConfigs holds the fixed per-provider presentation strings.
var displayConfigs = map[ID]DisplayConfig{
	IDGemini: {
		Name:           "Gemini",
		KeyPlaceholder: "Enter Gemini API key...",
		HelpURL:        "https://aistudio.google.com",
		HelpLabel:      "aistudio.google.com",
		PrivacyNote:    "Your key is stored locally and only sent to Google's Gemini API.",
	},
	IDAnthropic: {
		Name:           "Claude",
		KeyPlaceholder: "Enter Anthropic API key...",
		HelpURL:        "https://console.anthropic.com",
		HelpLabel:      "console.anthropic.com",
		PrivacyNote:    "Your key is stored locally and only sent to Anthropic's API.",
	},
	IDOpenAI: {
		Name:           "GPT",
		KeyPlaceholder: "Enter OpenAI API key...",
		HelpURL:        "https://platform.openai.com/api-keys",
		HelpLabel:      "platform.openai.com",
		PrivacyNote:    "Your key is stored locally and only sent to OpenAI's API.",
	},
}

// Display returns the UI metadata for a provider.
func Display(id ID) (DisplayConfig, bool) {
	cfg, ok := displayConfigs[id]
	return cfg, ok
}

// New constructs the provider implementation for the given ID with its
// default generation configuration.
func New(id ID) (Provider, error) {
	switch id {
	case IDAnthropic:
		return NewAnthropicProvider(DefaultAnthropicConfig())
	case IDOpenAI:
		return NewOpenAIProvider(DefaultOpenAIConfig())
	case IDGemini:
		return NewGeminiProvider(DefaultGeminiConfig())
	default:
		return nil, fmt.Errorf("unknown provider %q", id)
	}
}

// NewWithConfig constructs the provider implementation for the given ID
// with explicit generation parameters.
func NewWithConfig(id ID, config Config) (Provider, error) {
	switch id {
	case IDAnthropic:
		return NewAnthropicProvider(config)
	case IDOpenAI:
		return NewOpenAIProvider(config)
	case IDGemini:
		return NewGeminiProvider(config)
	default:
		return nil, fmt.Errorf("unknown provider %q", id)
	}
}
