// ABOUTME: Insights command: generate or list insights for a dataset
// ABOUTME: Generation runs the heuristic pipeline plus the LLM narrative
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var insightsList bool

// NewInsightsCmd creates the insights command.
func NewInsightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights <dataset-id>",
		Short: "Generate or list insights for a dataset",
		Long: `Generate insights for a dataset, or list previously stored ones.

Generation computes descriptive statistics, outlier summaries, and the
strongest correlation, then asks the language model for an executive
narrative. All findings are persisted and can be marked important.

Examples:
  eda insights 3f2a...
  eda insights 3f2a... --list`,
		Args: cobra.ExactArgs(1),
		RunE: runInsights,
	}

	cmd.Flags().BoolVar(&insightsList, "list", false, "List stored insights instead of generating")

	return cmd
}

func runInsights(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	datasetID := args[0]
	out := cmd.OutOrStdout()

	if insightsList {
		insights, err := svc.ListInsights(datasetID)
		if err != nil {
			return fmt.Errorf("listing insights: %w", err)
		}
		if len(insights) == 0 {
			fmt.Fprintln(out, "Nenhum insight armazenado.")
			return nil
		}
		for _, ins := range insights {
			marker := " "
			if ins.Important {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %s  %s\n    %s\n", marker, ins.InsightID,
				ins.CreatedAt.Format("2006-01-02 15:04"), ins.Text)
		}
		return nil
	}

	batch, err := svc.GenerateInsights(context.Background(), datasetID)
	if err != nil {
		return fmt.Errorf("generating insights: %w", err)
	}
	for i, text := range batch.Insights {
		fmt.Fprintf(out, "%d. %s\n", i+1, text)
	}
	if len(batch.Plots) > 0 {
		fmt.Fprintf(out, "\nGráficos gerados: %s\n", plotNames(batch.Plots))
	}
	return nil
}
