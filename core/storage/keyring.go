package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/nuckecy/sidekick/core/providers"
)

// Storage keys. The legacy key predates multi-provider support and is
// migrated on first read.
const (
	keyPrefix         = "ss_key_"
	activeProviderKey = "ss_active_provider"
	legacyGeminiKey   = "ss_gemini_key"
)

// envVars maps providers to the environment variables that override
// stored credentials.
var envVars = map[providers.ID]string{
	providers.IDAnthropic: "ANTHROPIC_API_KEY",
	providers.IDOpenAI:    "OPENAI_API_KEY",
	providers.IDGemini:    "GEMINI_API_KEY",
}

// Keyring resolves per-provider API keys and the active-provider selection
// on top of a Store. Persistence is best-effort: store failures surface as
// "no key" rather than errors, since a missing value and a failed read are
// handled identically by callers.
type Keyring struct {
	store Store
}

// NewKeyring creates a keyring over the given store.
func NewKeyring(store Store) *Keyring {
	return &Keyring{store: store}
}

// APIKey returns the credential for a provider: the environment variable
// when set, otherwise the stored value. The ok flag is false when neither
// exists.
func (k *Keyring) APIKey(ctx context.Context, id providers.ID) (string, bool) {
	if env := envVars[id]; env != "" {
		if v := os.Getenv(env); v != "" {
			return v, true
		}
	}

	value, ok, err := k.store.Get(ctx, keyPrefix+string(id))
	if err == nil && ok {
		return value, true
	}

	// One-time migration: early versions stored only a Gemini key under
	// its own name.
	if id == providers.IDGemini {
		if legacy, ok, err := k.store.Get(ctx, legacyGeminiKey); err == nil && ok {
			_ = k.store.Set(ctx, keyPrefix+string(id), legacy)
			_ = k.store.Delete(ctx, legacyGeminiKey)
			return legacy, true
		}
	}

	return "", false
}

// SetAPIKey stores a credential for a provider.
func (k *Keyring) SetAPIKey(ctx context.Context, id providers.ID, value string) error {
	if !id.Valid() {
		return fmt.Errorf("unknown provider %q", id)
	}
	return k.store.Set(ctx, keyPrefix+string(id), value)
}

// DeleteAPIKey removes a stored credential.
func (k *Keyring) DeleteAPIKey(ctx context.Context, id providers.ID) error {
	if !id.Valid() {
		return fmt.Errorf("unknown provider %q", id)
	}
	return k.store.Delete(ctx, keyPrefix+string(id))
}

// ActiveProvider returns the persisted provider selection, defaulting to
// Gemini when unset or unknown.
func (k *Keyring) ActiveProvider(ctx context.Context) providers.ID {
	value, ok, err := k.store.Get(ctx, activeProviderKey)
	if err != nil || !ok {
		return providers.IDGemini
	}
	id := providers.ID(value)
	if !id.Valid() {
		return providers.IDGemini
	}
	return id
}

// SetActiveProvider persists the provider selection.
func (k *Keyring) SetActiveProvider(ctx context.Context, id providers.ID) error {
	if !id.Valid() {
		return fmt.Errorf("unknown provider %q", id)
	}
	return k.store.Set(ctx, activeProviderKey, string(id))
}
