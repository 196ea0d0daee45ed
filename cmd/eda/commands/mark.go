// ABOUTME: Mark command: flag an insight as important
// ABOUTME: Marking is idempotent; marking twice changes nothing
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMarkCmd creates the mark command.
func NewMarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mark <insight-id>",
		Short: "Mark an insight as important",
		Long: `Mark a stored insight as important.

Use "eda insights <dataset-id> --list" to find insight ids.

Examples:
  eda mark 8c1d...`,
		Args: cobra.ExactArgs(1),
		RunE: runMark,
	}

	return cmd
}

func runMark(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.MarkImportant(args[0]); err != nil {
		return fmt.Errorf("marking insight: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Insight %s marcado como importante.\n", args[0])
	return nil
}
