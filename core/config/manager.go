// Package config loads and serves the application configuration: provider
// generation parameters, matcher and session bounds, snapshot budgets, and
// the scene document path. Defaults are merged with the user config file
// and then with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"unsafe"

	"gopkg.in/yaml.v3"

	"github.com/nuckecy/sidekick/core/providers"
	"github.com/nuckecy/sidekick/core/storage"
)

type Manager struct {
	configPtr unsafe.Pointer
	dirs      *storage.Dirs
	watchers  []func(*Config)
	watcherMu sync.RWMutex
}

type Config struct {
	Providers ProvidersConfig `yaml:"providers"`
	Matcher   MatcherConfig   `yaml:"matcher"`
	Session   SessionConfig   `yaml:"session"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Scene     SceneConfig     `yaml:"scene"`
}

type ProvidersConfig struct {
	Active    string           `yaml:"active"`
	Anthropic providers.Config `yaml:"anthropic"`
	OpenAI    providers.Config `yaml:"openai"`
	Gemini    providers.Config `yaml:"gemini"`
}

type MatcherConfig struct {
	MaxResults int `yaml:"max_results"`
	CacheSize  int `yaml:"cache_size"`
}

type SessionConfig struct {
	MaxHistoryTurns int `yaml:"max_history_turns"`
}

type SnapshotConfig struct {
	MaxDepth    int `yaml:"max_depth"`
	MaxPerLevel int `yaml:"max_per_level"`
	MaxNodes    int `yaml:"max_nodes"`
}

type SceneConfig struct {
	// DocumentPath points at the scene JSON backing the document host.
	DocumentPath string `yaml:"document_path"`
}

func NewManager(dirs *storage.Dirs) *Manager {
	m := &Manager{dirs: dirs}
	cfg := DefaultConfig()
	atomic.StorePointer(&m.configPtr, unsafe.Pointer(cfg))
	return m
}

func DefaultConfig() *Config {
	return &Config{
		Providers: ProvidersConfig{
			Active:    string(providers.IDGemini),
			Anthropic: providers.DefaultAnthropicConfig(),
			OpenAI:    providers.DefaultOpenAIConfig(),
			Gemini:    providers.DefaultGeminiConfig(),
		},
		Matcher: MatcherConfig{
			MaxResults: 5,
			CacheSize:  128,
		},
		Session: SessionConfig{
			MaxHistoryTurns: 6,
		},
		Snapshot: SnapshotConfig{
			MaxDepth:    3,
			MaxPerLevel: 20,
			MaxNodes:    5000,
		},
	}
}

func (m *Manager) Get() *Config {
	return (*Config)(atomic.LoadPointer(&m.configPtr))
}

func (m *Manager) Load() error {
	cfg := DefaultConfig()

	if err := m.loadUserConfig(cfg); err != nil {
		return fmt.Errorf("user config: %w", err)
	}

	m.applyEnvironment(cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	atomic.StorePointer(&m.configPtr, unsafe.Pointer(cfg))
	m.notifyWatchers(cfg)

	return nil
}

func (m *Manager) loadUserConfig(cfg *Config) error {
	return m.loadYAMLFile(filepath.Join(m.dirs.Config, "config.yaml"), cfg)
}

func (m *Manager) loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

func (m *Manager) applyEnvironment(cfg *Config) {
	if v := os.Getenv("SIDEKICK_ACTIVE_PROVIDER"); v != "" {
		cfg.Providers.Active = v
	}
	if v := os.Getenv("SIDEKICK_SCENE_DOCUMENT"); v != "" {
		cfg.Scene.DocumentPath = v
	}
	if v := os.Getenv("SIDEKICK_MATCHER_MAX_RESULTS"); v != "" {
		if n, err := parseInt(v); err == nil {
			cfg.Matcher.MaxResults = n
		}
	}
	if v := os.Getenv("SIDEKICK_SESSION_MAX_HISTORY_TURNS"); v != "" {
		if n, err := parseInt(v); err == nil {
			cfg.Session.MaxHistoryTurns = n
		}
	}
	if v := os.Getenv("SIDEKICK_SNAPSHOT_MAX_NODES"); v != "" {
		if n, err := parseInt(v); err == nil {
			cfg.Snapshot.MaxNodes = n
		}
	}
}

func (c *Config) Validate() error {
	if !providers.ID(c.Providers.Active).Valid() {
		return fmt.Errorf("unknown active provider %q", c.Providers.Active)
	}

	for _, pc := range []struct {
		name string
		cfg  providers.Config
	}{
		{"anthropic", c.Providers.Anthropic},
		{"openai", c.Providers.OpenAI},
		{"gemini", c.Providers.Gemini},
	} {
		if err := pc.cfg.Validate(); err != nil {
			return fmt.Errorf("provider %s: %w", pc.name, err)
		}
	}

	if c.Matcher.MaxResults <= 0 {
		return fmt.Errorf("matcher max results must be positive, got %d", c.Matcher.MaxResults)
	}
	if c.Matcher.CacheSize <= 0 {
		return fmt.Errorf("matcher cache size must be positive, got %d", c.Matcher.CacheSize)
	}
	if c.Session.MaxHistoryTurns <= 0 {
		return fmt.Errorf("session max history turns must be positive, got %d", c.Session.MaxHistoryTurns)
	}
	if c.Snapshot.MaxDepth <= 0 || c.Snapshot.MaxPerLevel <= 0 || c.Snapshot.MaxNodes <= 0 {
		return fmt.Errorf("snapshot bounds must be positive")
	}

	return nil
}

// ProviderConfig returns the generation parameters for a provider id.
func (c *Config) ProviderConfig(id providers.ID) (providers.Config, error) {
	switch id {
	case providers.IDAnthropic:
		return c.Providers.Anthropic, nil
	case providers.IDOpenAI:
		return c.Providers.OpenAI, nil
	case providers.IDGemini:
		return c.Providers.Gemini, nil
	default:
		return providers.Config{}, fmt.Errorf("unknown provider %q", id)
	}
}

func (m *Manager) OnChange(fn func(*Config)) {
	m.watcherMu.Lock()
	m.watchers = append(m.watchers, fn)
	m.watcherMu.Unlock()
}

func (m *Manager) notifyWatchers(cfg *Config) {
	m.watcherMu.RLock()
	watchers := m.watchers
	m.watcherMu.RUnlock()

	for _, fn := range watchers {
		fn(cfg)
	}
}

func (m *Manager) Reload() error {
	return m.Load()
}

func parseInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}
