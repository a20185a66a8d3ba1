package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/teamhealth/internal/maturity"
)

var quizzesCmd = &cobra.Command{
	Use:   "quizzes",
	Short: "List the available quizzes",
	RunE:  runQuizzes,
}

var quizzesLevels bool

func init() {
	quizzesCmd.Flags().BoolVar(&quizzesLevels, "levels", false, "Also list the maturity levels used for overall scores")
	rootCmd.AddCommand(quizzesCmd)
}

func runQuizzes(cmd *cobra.Command, _ []string) error {
	registry, err := loadRegistry(appConfig)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tTITLE\tQUESTIONS\tCATEGORIES\tREPORT")
	for _, q := range registry.List() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", q.Kind, q.Title, len(q.Questions), len(q.Categories), q.Report)
	}

	if quizzesLevels {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "TIER\tNAME")
		for _, tier := range maturity.Tiers {
			fmt.Fprintf(tw, "%d\t%s\n", int(tier), tier.Name())
		}
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "LEVEL\tNAME")
		for _, level := range maturity.FineLevels() {
			fmt.Fprintf(tw, "%s\t%s\n", level.Level, level.Name)
		}
	}
	return tw.Flush()
}
