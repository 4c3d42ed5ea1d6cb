package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuckecy/sidekick/core/providers"
	"github.com/nuckecy/sidekick/core/storage"
)

func testDirs(t *testing.T) *storage.Dirs {
	t.Helper()

	base := t.TempDir()
	return &storage.Dirs{
		Config: filepath.Join(base, "config"),
		Data:   filepath.Join(base, "data"),
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, string(providers.IDGemini), cfg.Providers.Active)
	assert.Equal(t, "gemini-2.0-flash", cfg.Providers.Gemini.Model)
	assert.Equal(t, 5, cfg.Matcher.MaxResults)
	assert.Equal(t, 6, cfg.Session.MaxHistoryTurns)
	assert.Equal(t, 3, cfg.Snapshot.MaxDepth)
	assert.Equal(t, 5000, cfg.Snapshot.MaxNodes)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	m := NewManager(testDirs(t))
	require.NoError(t, m.Load())

	assert.Equal(t, DefaultConfig().Matcher, m.Get().Matcher)
}

func TestLoadUserConfig(t *testing.T) {
	dirs := testDirs(t)
	require.NoError(t, os.MkdirAll(dirs.Config, 0o755))

	yaml := `
providers:
  active: anthropic
  anthropic:
    max_tokens: 2048
matcher:
  max_results: 8
scene:
  document_path: /tmp/scene.json
`
	require.NoError(t, os.WriteFile(filepath.Join(dirs.Config, "config.yaml"), []byte(yaml), 0o644))

	m := NewManager(dirs)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, "anthropic", cfg.Providers.Active)
	assert.Equal(t, int64(2048), cfg.Providers.Anthropic.MaxTokens)
	assert.Equal(t, 8, cfg.Matcher.MaxResults)
	assert.Equal(t, "/tmp/scene.json", cfg.Scene.DocumentPath)

	// Fields not mentioned in the file keep their defaults.
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Providers.Anthropic.Model)
	assert.Equal(t, 6, cfg.Session.MaxHistoryTurns)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dirs := testDirs(t)
	require.NoError(t, os.MkdirAll(dirs.Config, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dirs.Config, "config.yaml"),
		[]byte("providers:\n  active: cohere\n"), 0o644,
	))

	m := NewManager(dirs)
	require.Error(t, m.Load())

	// The served config is untouched after a failed load.
	assert.Equal(t, string(providers.IDGemini), m.Get().Providers.Active)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("SIDEKICK_ACTIVE_PROVIDER", "openai")
	t.Setenv("SIDEKICK_MATCHER_MAX_RESULTS", "3")
	t.Setenv("SIDEKICK_SCENE_DOCUMENT", "/tmp/doc.json")

	m := NewManager(testDirs(t))
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, "openai", cfg.Providers.Active)
	assert.Equal(t, 3, cfg.Matcher.MaxResults)
	assert.Equal(t, "/tmp/doc.json", cfg.Scene.DocumentPath)
}

func TestProviderConfig(t *testing.T) {
	cfg := DefaultConfig()

	pc, err := cfg.ProviderConfig(providers.IDOpenAI)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", pc.Model)

	_, err = cfg.ProviderConfig(providers.ID("cohere"))
	assert.Error(t, err)
}

func TestOnChange(t *testing.T) {
	m := NewManager(testDirs(t))

	var seen *Config
	m.OnChange(func(c *Config) { seen = c })

	require.NoError(t, m.Load())
	require.NotNil(t, seen)
	assert.Equal(t, m.Get(), seen)
}
