// ABOUTME: Ask command: natural-language questions over a dataset
// ABOUTME: Closed-form aggregations answer locally, everything else via LLM
package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewAskCmd creates the ask command.
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <dataset-id> <question>",
		Short: "Ask a question about a dataset",
		Long: `Ask a natural-language question about a dataset.

Simple aggregation questions ("Qual a média da coluna idade?") are
answered deterministically from the data. Anything else is delegated to
the language model with the schema, a data sample, and recent
conversation history as context.

Examples:
  eda ask 3f2a... "Qual a média da coluna idade?"
  eda ask 3f2a... "O que você pensa dos dados?"`,
		Args: cobra.MinimumNArgs(2),
		RunE: runAsk,
	}

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	datasetID := args[0]
	question := strings.Join(args[1:], " ")

	answer, err := svc.Ask(context.Background(), datasetID, question)
	if err != nil {
		return fmt.Errorf("resolving question: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, answer.Text)
	fmt.Fprintf(out, "\n[fonte: %s]\n", answer.Source)
	return nil
}
