package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nuckecy/sidekick/core/knowledge"
)

var (
	searchMaxFlag  int
	searchDeepFlag bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the WCAG 2.2 success criteria",
	Long: `Search the criteria corpus. The default matcher layers exact reference
detection, level filtering, curated shortcut phrases, and token-overlap
scoring. --deep switches to full-text search over titles, descriptions,
and notes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchMaxFlag, "max", 5, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchDeepFlag, "deep", false, "full-text search instead of the layered matcher")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	corpus, err := knowledge.NewCorpus()
	if err != nil {
		return fmt.Errorf("loading criteria corpus: %w", err)
	}

	if searchDeepFlag {
		return runDeepSearch(corpus, query)
	}

	matcher, err := knowledge.NewMatcherWithConfig(corpus, knowledge.MatcherConfig{
		MaxResults: cfg.Matcher.MaxResults,
		CacheSize:  cfg.Matcher.CacheSize,
	})
	if err != nil {
		return err
	}

	results := matcher.Search(query, searchMaxFlag)
	if len(results) == 0 {
		fmt.Println("No matching success criteria.")
		return nil
	}

	for _, r := range results {
		fmt.Printf("%3d  SC %s — %s (Level %s)\n", r.Score, r.Criterion.RefID, r.Criterion.Title, r.Criterion.Level)
	}

	return nil
}

func runDeepSearch(corpus *knowledge.Corpus, query string) error {
	index, err := knowledge.NewIndex(corpus)
	if err != nil {
		return fmt.Errorf("building search index: %w", err)
	}
	defer index.Close()

	hits, err := index.Query(query, searchMaxFlag)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	if len(hits) == 0 {
		fmt.Println("No matching success criteria.")
		return nil
	}

	for _, crit := range hits {
		fmt.Printf("SC %s — %s (Level %s)\n", crit.RefID, crit.Title, crit.Level)
	}

	return nil
}
