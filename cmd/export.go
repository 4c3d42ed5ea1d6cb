package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nuckecy/sidekick/core/snapshot"
)

var (
	exportOutFlag      string
	exportMaxNodesFlag int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the scene document as deep JSON",
	Long: `Serialize the whole scene tree to JSON under a shared node budget.
When the budget runs out, truncated positions emit markers carrying the
number of siblings left unvisited at that point.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportOutFlag, "out", "", "write to a file instead of stdout")
	exportCmd.Flags().IntVar(&exportMaxNodesFlag, "max-nodes", snapshot.MaxNodes, "total node visit budget")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	host, err := newHost(cfg)
	if err != nil {
		return err
	}
	if host == nil {
		return fmt.Errorf("no scene document configured (use --scene or set scene.document_path)")
	}
	defer host.Close()

	result := snapshot.SerializeWithBudget(host.Document().Root, exportMaxNodesFlag)

	data, err := json.MarshalIndent(result.Root, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}

	if exportOutFlag != "" {
		if err := os.WriteFile(exportOutFlag, data, 0o644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		fmt.Printf("Exported %d nodes to %s", result.NodeCount, exportOutFlag)
		if result.Truncated {
			fmt.Print(" (truncated at budget)")
		}
		fmt.Println()
		return nil
	}

	fmt.Println(string(data))
	if result.Truncated {
		fmt.Fprintln(os.Stderr, "export truncated at node budget")
	}
	return nil
}
