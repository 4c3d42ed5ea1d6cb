// Package cmd provides CLI commands for the Sidekick application.
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nuckecy/sidekick/core/bridge"
	"github.com/nuckecy/sidekick/core/config"
	"github.com/nuckecy/sidekick/core/knowledge"
	"github.com/nuckecy/sidekick/core/providers"
	"github.com/nuckecy/sidekick/core/storage"
)

var rootCmd = &cobra.Command{
	Use:   "sidekick",
	Short: "Sidekick - a WCAG 2.2 accessibility assistant",
	Long: `Sidekick answers accessibility and design-system questions against the
WCAG 2.2 success criteria, inspects and exports scene documents, and can
route questions through a configured AI provider.`,
}

var sceneDocumentFlag string

func init() {
	rootCmd.PersistentFlags().StringVar(&sceneDocumentFlag, "scene", "", "path to a scene document JSON file")
}

func Execute() error {
	return rootCmd.Execute()
}

// ===== //

func loadConfig() (*config.Config, error) {
	manager := config.NewManager(storage.ResolveDirs())
	if err := manager.Load(); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cfg := manager.Get()
	if sceneDocumentFlag != "" {
		cfg.Scene.DocumentPath = sceneDocumentFlag
	}

	return cfg, nil
}

func newMatcher(cfg *config.Config) (*knowledge.Matcher, error) {
	corpus, err := knowledge.NewCorpus()
	if err != nil {
		return nil, fmt.Errorf("loading criteria corpus: %w", err)
	}

	return knowledge.NewMatcherWithConfig(corpus, knowledge.MatcherConfig{
		MaxResults: cfg.Matcher.MaxResults,
		CacheSize:  cfg.Matcher.CacheSize,
	})
}

func openKeyring() (*storage.Keyring, storage.Store, error) {
	dirs := storage.ResolveDirs()
	if err := storage.EnsureDir(dirs.Data, 0); err != nil {
		return nil, nil, fmt.Errorf("creating data directory: %w", err)
	}

	store, err := storage.OpenSQLiteStore(filepath.Join(dirs.Data, "sidekick.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening key store: %w", err)
	}

	return storage.NewKeyring(store), store, nil
}

// newHost opens the scene document named by config or --scene. It returns
// nil without error when no document is configured; callers treat that as
// "no canvas attached."
func newHost(cfg *config.Config) (*bridge.DocumentHost, error) {
	if cfg.Scene.DocumentPath == "" {
		return nil, nil
	}

	host, err := bridge.NewDocumentHost(cfg.Scene.DocumentPath)
	if err != nil {
		return nil, fmt.Errorf("opening scene document: %w", err)
	}

	return host, nil
}

// buildProvider constructs the given provider with its configured
// generation parameters.
func buildProvider(cfg *config.Config, id providers.ID) (providers.Provider, error) {
	pc, err := cfg.ProviderConfig(id)
	if err != nil {
		return nil, err
	}

	return providers.NewWithConfig(id, pc)
}
