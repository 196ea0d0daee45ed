// ABOUTME: Outliers command: IQR outlier report for one numeric column
// ABOUTME: Optionally writes the column's boxplot to a PNG file
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var outliersPlotPath string

// NewOutliersCmd creates the outliers command.
func NewOutliersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outliers <dataset-id> <column>",
		Short: "Detect IQR outliers in a numeric column",
		Long: `Detect outliers in a numeric column using 1.5*IQR fences.

Examples:
  eda outliers 3f2a... preco
  eda outliers 3f2a... preco --plot preco_box.png`,
		Args: cobra.ExactArgs(2),
		RunE: runOutliers,
	}

	cmd.Flags().StringVar(&outliersPlotPath, "plot", "", "Write the boxplot PNG to this path")

	return cmd
}

func runOutliers(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := svc.Outliers(args[0], args[1])
	if err != nil {
		return fmt.Errorf("detecting outliers: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Outliers: %d (limites %.2f / %.2f)\n",
		result.Report.Count, result.Report.Lower, result.Report.Upper)
	if len(result.Report.Examples) > 0 {
		fmt.Fprintf(out, "Exemplos: %v\n", result.Report.Examples)
	}

	if outliersPlotPath != "" && result.PlotPNG != nil {
		if err := os.WriteFile(outliersPlotPath, result.PlotPNG, 0644); err != nil {
			return fmt.Errorf("writing plot: %w", err)
		}
		fmt.Fprintf(out, "Boxplot salvo em %s\n", outliersPlotPath)
	}
	return nil
}
