// ABOUTME: Datasets command: list registered datasets
// ABOUTME: Shows id, name, shape, and upload time
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewDatasetsCmd creates the datasets command.
func NewDatasetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List registered datasets",
		Long: `List all registered datasets with their shapes and upload times.

Examples:
  eda datasets`,
		Args: cobra.NoArgs,
		RunE: runDatasets,
	}

	return cmd
}

func runDatasets(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	datasets, err := svc.ListDatasets()
	if err != nil {
		return fmt.Errorf("listing datasets: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(datasets) == 0 {
		fmt.Fprintln(out, "Nenhum dataset registrado.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOME\tLINHAS\tCOLUNAS\tENVIADO EM")
	for _, d := range datasets {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			d.DatasetID, truncate(d.Name, 30), d.NRows, d.NCols,
			d.UploadedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
