package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nuckecy/sidekick/core/providers"
	"github.com/nuckecy/sidekick/core/session"
)

var askProviderFlag string

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single accessibility question",
	Long: `Ask one question and print the answer. Uses the active provider when an
API key is configured, keyword search otherwise.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askProviderFlag, "provider", "", "provider to use (gemini, anthropic, openai)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.Join(args, " ")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	matcher, err := newMatcher(cfg)
	if err != nil {
		return err
	}

	sess, err := session.NewSession(matcher, session.Config{
		MaxHistoryTurns: cfg.Session.MaxHistoryTurns,
		MaxResults:      cfg.Matcher.MaxResults,
	})
	if err != nil {
		return err
	}

	keyring, store, err := openKeyring()
	if err != nil {
		return err
	}
	defer store.Close()

	id := keyring.ActiveProvider(ctx)
	if askProviderFlag != "" {
		id = providers.ID(askProviderFlag)
		if !id.Valid() {
			return fmt.Errorf("unknown provider %q (valid: gemini, anthropic, openai)", askProviderFlag)
		}
	}

	if key, ok := keyring.APIKey(ctx, id); ok {
		provider, err := buildProvider(cfg, id)
		if err != nil {
			return err
		}
		sess.UseProvider(provider, key)
	}

	host, err := newHost(cfg)
	if err != nil {
		return err
	}
	if host != nil {
		defer host.Close()
		sess.AttachHost(host)
	}

	reply, err := sess.HandleTurn(ctx, query)
	if err != nil {
		return err
	}

	fmt.Println(reply.Text)
	printCards(reply.Cards)

	return nil
}
