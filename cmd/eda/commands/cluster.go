// ABOUTME: Cluster command: 2-D k-means over two numeric columns
// ABOUTME: Prints cluster sizes and centers, optionally saving a scatter plot
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	clusterK        int
	clusterPlotPath string
)

// NewClusterCmd creates the cluster command.
func NewClusterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster <dataset-id> <x-column> <y-column>",
		Short: "Run k-means clustering over two numeric columns",
		Long: `Run k-means clustering over two numeric columns.

Rows with a missing value in either column are excluded. Fails when the
dataset has fewer rows than the requested cluster count.

Examples:
  eda cluster 3f2a... idade renda
  eda cluster 3f2a... idade renda -k 4 --plot clusters.png`,
		Args: cobra.ExactArgs(3),
		RunE: runCluster,
	}

	cmd.Flags().IntVarP(&clusterK, "clusters", "k", 3, "Number of clusters")
	cmd.Flags().StringVar(&clusterPlotPath, "plot", "", "Write the scatter plot PNG to this path")

	return cmd
}

func runCluster(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	out, err := svc.Clusters(args[0], args[1], args[2], clusterK)
	if err != nil {
		return fmt.Errorf("clustering: %w", err)
	}

	w := cmd.OutOrStdout()
	sizes := make([]int, out.Result.K)
	for _, label := range out.Result.Labels {
		sizes[label]++
	}
	for i, center := range out.Result.Centers {
		fmt.Fprintf(w, "Cluster %d: %d pontos, centro (%.2f, %.2f)\n",
			i, sizes[i], center[0], center[1])
	}

	if clusterPlotPath != "" && out.PlotPNG != nil {
		if err := os.WriteFile(clusterPlotPath, out.PlotPNG, 0644); err != nil {
			return fmt.Errorf("writing plot: %w", err)
		}
		fmt.Fprintf(w, "Scatter salvo em %s\n", clusterPlotPath)
	}
	return nil
}
