package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nuckecy/sidekick/core/knowledge"
)

var criteriaLevelFlag string

var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Browse the WCAG 2.2 success criteria corpus",
}

var criteriaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List success criteria, optionally filtered by level",
	RunE:  runCriteriaList,
}

var criteriaShowCmd = &cobra.Command{
	Use:   "show <ref>",
	Short: "Show one success criterion in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runCriteriaShow,
}

func init() {
	rootCmd.AddCommand(criteriaCmd)
	criteriaCmd.AddCommand(criteriaListCmd)
	criteriaCmd.AddCommand(criteriaShowCmd)

	criteriaListCmd.Flags().StringVar(&criteriaLevelFlag, "level", "", "filter by conformance level (A, AA, AAA)")
}

func runCriteriaList(cmd *cobra.Command, args []string) error {
	corpus, err := knowledge.NewCorpus()
	if err != nil {
		return fmt.Errorf("loading criteria corpus: %w", err)
	}

	var entries []*knowledge.Criterion
	if criteriaLevelFlag != "" {
		level := knowledge.Level(strings.ToUpper(criteriaLevelFlag))
		switch level {
		case knowledge.LevelA, knowledge.LevelAA, knowledge.LevelAAA:
		default:
			return fmt.Errorf("unknown level %q (valid: A, AA, AAA)", criteriaLevelFlag)
		}
		entries = corpus.AtLevel(level)
	} else {
		all := corpus.All()
		entries = make([]*knowledge.Criterion, len(all))
		for i := range all {
			entries[i] = &all[i]
		}
	}

	for _, crit := range entries {
		fmt.Printf("SC %-8s %-4s %s\n", crit.RefID, crit.Level, crit.Title)
	}

	fmt.Printf("\n%d criteria\n", len(entries))
	return nil
}

func runCriteriaShow(cmd *cobra.Command, args []string) error {
	corpus, err := knowledge.NewCorpus()
	if err != nil {
		return fmt.Errorf("loading criteria corpus: %w", err)
	}

	ref := strings.TrimPrefix(strings.ToLower(args[0]), "sc ")
	ref = strings.TrimSpace(ref)

	crit, ok := corpus.ByRef(ref)
	if !ok {
		return fmt.Errorf("no success criterion %q", args[0])
	}

	fmt.Println(crit.FormatContext())
	if crit.URL != "" {
		fmt.Printf("\n%s\n", crit.URL)
	}
	return nil
}
