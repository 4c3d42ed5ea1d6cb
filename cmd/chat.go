package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nuckecy/sidekick/core/knowledge"
	"github.com/nuckecy/sidekick/core/providers"
	"github.com/nuckecy/sidekick/core/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive accessibility chat",
	Long: `Start an interactive conversation. With an API key configured for the
active provider, questions are answered by the AI with WCAG context;
otherwise the session runs in keyword search mode and returns matching
success criteria directly.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

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
	aiMode := false
	if key, ok := keyring.APIKey(ctx, id); ok {
		provider, err := buildProvider(cfg, id)
		if err != nil {
			return err
		}
		sess.UseProvider(provider, key)
		aiMode = true
	}

	host, err := newHost(cfg)
	if err != nil {
		return err
	}
	if host != nil {
		defer host.Close()
		sess.AttachHost(host)
	}

	printChatBanner(id, aiMode)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/reset":
			sess.Reset()
			fmt.Println("Conversation cleared.")
			continue
		}

		reply, err := sess.HandleTurn(ctx, line)
		if err != nil {
			if errors.Is(err, session.ErrBusy) {
				fmt.Println("Still working on the previous question.")
				continue
			}
			return err
		}

		fmt.Println()
		fmt.Println(reply.Text)
		printCards(reply.Cards)
		fmt.Println()
	}
}

func printChatBanner(id providers.ID, aiMode bool) {
	fmt.Println("Sidekick — WCAG 2.2 accessibility assistant")
	if aiMode {
		name := string(id)
		if display, ok := providers.Display(id); ok {
			name = display.Name
		}
		fmt.Printf("AI responses enabled via %s.\n", name)
	} else {
		fmt.Println("Keyword search mode. Run `sidekick keys set <provider>` to enable AI responses.")
	}

	fmt.Println("Try asking about:")
	for _, chip := range session.Suggestions() {
		fmt.Printf("  - %s\n", chip.Query)
	}
	fmt.Println("Commands: /reset clears the conversation, /quit exits.")
	fmt.Println()
}

func printCards(cards []*knowledge.Criterion) {
	for _, card := range cards {
		fmt.Println()
		fmt.Printf("  SC %s — %s (Level %s)\n", card.RefID, card.Title, card.Level)
		fmt.Printf("  %s\n", card.Description)
		if card.URL != "" {
			fmt.Printf("  %s\n", card.URL)
		}
	}
}
