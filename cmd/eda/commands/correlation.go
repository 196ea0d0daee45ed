// ABOUTME: Correlation command: Pearson matrix over numeric columns
// ABOUTME: Prints the matrix and highlights the strongest pair
package commands

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var correlationPlotPath string

// NewCorrelationCmd creates the correlation command.
func NewCorrelationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "correlation <dataset-id>",
		Short: "Compute the correlation matrix over numeric columns",
		Long: `Compute pairwise Pearson correlations over all numeric columns.

Requires at least two numeric columns. Pairs use only rows where both
columns are present.

Examples:
  eda correlation 3f2a...
  eda correlation 3f2a... --plot corr.png`,
		Args: cobra.ExactArgs(1),
		RunE: runCorrelation,
	}

	cmd.Flags().StringVar(&correlationPlotPath, "plot", "", "Write the heatmap PNG to this path")

	return cmd
}

func runCorrelation(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := svc.Correlation(args[0])
	if err != nil {
		return fmt.Errorf("computing correlation: %w", err)
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprint(w, "\t")
	for _, name := range result.Matrix.Columns {
		fmt.Fprintf(w, "%s\t", name)
	}
	fmt.Fprintln(w)
	for i, name := range result.Matrix.Columns {
		fmt.Fprintf(w, "%s\t", name)
		for j := range result.Matrix.Columns {
			v := result.Matrix.At(i, j)
			if math.IsNaN(v) {
				fmt.Fprint(w, "n/d\t")
			} else {
				fmt.Fprintf(w, "%.2f\t", v)
			}
		}
		fmt.Fprintln(w)
	}
	_ = w.Flush()

	if result.BestPair != nil {
		fmt.Fprintf(out, "\nPar mais correlacionado: %s × %s (r=%.2f)\n",
			result.BestPair.ColA, result.BestPair.ColB, result.BestPair.R)
	}

	if correlationPlotPath != "" && result.PlotPNG != nil {
		if err := os.WriteFile(correlationPlotPath, result.PlotPNG, 0644); err != nil {
			return fmt.Errorf("writing plot: %w", err)
		}
		fmt.Fprintf(out, "Heatmap salvo em %s\n", correlationPlotPath)
	}
	return nil
}
