package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nuckecy/sidekick/core/providers"
)

var keysAPIKeyFlag string

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage provider API keys",
	Long: `Store, inspect, and remove the API keys used for AI responses. Keys are
kept in the local database; environment variables (GEMINI_API_KEY,
ANTHROPIC_API_KEY, OPENAI_API_KEY) take precedence when set.`,
}

var keysSetCmd = &cobra.Command{
	Use:   "set <provider>",
	Short: "Set the API key for a provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeysSet,
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show configured providers and their status",
	RunE:  runKeysList,
}

var keysDeleteCmd = &cobra.Command{
	Use:   "delete <provider>",
	Short: "Remove the stored API key for a provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeysDelete,
}

var keysUseCmd = &cobra.Command{
	Use:   "use <provider>",
	Short: "Select the active provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeysUse,
}

var keysTestCmd = &cobra.Command{
	Use:   "test <provider>",
	Short: "Validate a provider credential with a minimal request",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeysTest,
}

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.AddCommand(keysSetCmd)
	keysCmd.AddCommand(keysListCmd)
	keysCmd.AddCommand(keysDeleteCmd)
	keysCmd.AddCommand(keysUseCmd)
	keysCmd.AddCommand(keysTestCmd)

	keysSetCmd.Flags().StringVar(&keysAPIKeyFlag, "api-key", "", "API key (prompts without echo if not provided)")
}

func parseProviderArg(arg string) (providers.ID, error) {
	id := providers.ID(strings.ToLower(arg))
	if !id.Valid() {
		return "", fmt.Errorf("unknown provider %q (valid: gemini, anthropic, openai)", arg)
	}
	return id, nil
}

func runKeysSet(cmd *cobra.Command, args []string) error {
	id, err := parseProviderArg(args[0])
	if err != nil {
		return err
	}

	key := keysAPIKeyFlag
	if key == "" {
		key, err = readKeyInteractive(id)
		if err != nil {
			return err
		}
	}
	if key == "" {
		return fmt.Errorf("no API key provided")
	}

	keyring, store, err := openKeyring()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := keyring.SetAPIKey(cmd.Context(), id, key); err != nil {
		return fmt.Errorf("storing key: %w", err)
	}

	fmt.Printf("Stored API key for %s.\n", id)
	return nil
}

func runKeysList(cmd *cobra.Command, args []string) error {
	keyring, store, err := openKeyring()
	if err != nil {
		return err
	}
	defer store.Close()

	active := keyring.ActiveProvider(cmd.Context())

	fmt.Println("Provider Status:")
	fmt.Println("----------------")

	for _, id := range providers.IDs {
		status := "not configured"
		if _, ok := keyring.APIKey(cmd.Context(), id); ok {
			status = "configured"
		}

		marker := " "
		if id == active {
			marker = "*"
		}

		name := string(id)
		if display, ok := providers.Display(id); ok {
			name = display.Name
		}

		fmt.Printf("%s %-12s %-10s %s\n", marker, id+":", name, status)
	}

	fmt.Println()
	fmt.Println("* active provider")
	return nil
}

func runKeysDelete(cmd *cobra.Command, args []string) error {
	id, err := parseProviderArg(args[0])
	if err != nil {
		return err
	}

	keyring, store, err := openKeyring()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := keyring.DeleteAPIKey(cmd.Context(), id); err != nil {
		return fmt.Errorf("removing key: %w", err)
	}

	fmt.Printf("Removed API key for %s.\n", id)
	return nil
}

func runKeysUse(cmd *cobra.Command, args []string) error {
	id, err := parseProviderArg(args[0])
	if err != nil {
		return err
	}

	keyring, store, err := openKeyring()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := keyring.SetActiveProvider(cmd.Context(), id); err != nil {
		return fmt.Errorf("setting active provider: %w", err)
	}

	fmt.Printf("Active provider is now %s.\n", id)
	return nil
}

func runKeysTest(cmd *cobra.Command, args []string) error {
	id, err := parseProviderArg(args[0])
	if err != nil {
		return err
	}

	keyring, store, err := openKeyring()
	if err != nil {
		return err
	}
	defer store.Close()

	key, ok := keyring.APIKey(cmd.Context(), id)
	if !ok {
		return fmt.Errorf("no API key configured for %s", id)
	}

	provider, err := providers.New(id)
	if err != nil {
		return err
	}

	if err := provider.TestConnection(cmd.Context(), key); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}

	fmt.Printf("Connection to %s OK.\n", id)
	return nil
}

// readKeyInteractive prompts for a key. Echo is disabled when stdin is a
// terminal; piped input is read as a plain line.
func readKeyInteractive(id providers.ID) (string, error) {
	placeholder := "Enter API key"
	if display, ok := providers.Display(id); ok {
		placeholder = strings.TrimSuffix(display.KeyPlaceholder, "...")
	}
	fmt.Printf("%s: ", placeholder)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
