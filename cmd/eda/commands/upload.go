// ABOUTME: Upload command: register one or more CSV files as a dataset
// ABOUTME: Prints the dataset id, shape, inferred schema, and saved plots
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var uploadName string

// NewUploadCmd creates the upload command.
func NewUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file.csv> [more.csv...]",
		Short: "Upload CSV files as a new dataset",
		Long: `Upload one or more CSV files as a new dataset.

Multiple files are concatenated by column-name union. The field
delimiter (comma, semicolon, or tab) is detected automatically.
Prints the new dataset id and the inferred schema.

Examples:
  eda upload vendas.csv
  eda upload jan.csv fev.csv mar.csv --name vendas-q1`,
		Args: cobra.MinimumNArgs(1),
		RunE: runUpload,
	}

	cmd.Flags().StringVar(&uploadName, "name", "", "Display name for the dataset (default: file names)")

	return cmd
}

func runUpload(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	var files [][]byte
	var names []string
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		files = append(files, content)
		names = append(names, filepath.Base(path))
	}

	name := uploadName
	if name == "" {
		name = strings.Join(names, ",")
	}

	result, err := svc.Upload(name, files...)
	if err != nil {
		return fmt.Errorf("uploading dataset: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Dataset: %s\n", result.DatasetID)
	fmt.Fprintf(out, "Linhas: %d  Colunas: %d\n\n", result.NRows, result.NCols)
	printSchema(out, result.Schema)
	if len(result.Plots) > 0 {
		fmt.Fprintf(out, "\nGráficos gerados: %s\n", plotNames(result.Plots))
	}
	return nil
}
