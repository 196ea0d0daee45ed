// ABOUTME: Root command wiring for the EDA assistant CLI
// ABOUTME: Builds the service from config and registers all subcommands
package commands

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/edalab/eda-agent/internal/config"
	"github.com/edalab/eda-agent/internal/eda"
	"github.com/edalab/eda-agent/internal/llm"
	"github.com/edalab/eda-agent/internal/plot"
	"github.com/edalab/eda-agent/internal/storage/sqlite"
)

var (
	verbose bool
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eda",
		Short: "Exploratory data analysis assistant",
		Long: `eda is an exploratory data analysis assistant.

Upload CSV files, inspect inferred schemas and statistics, detect
outliers, analyze correlations, run clustering, and ask natural-language
questions answered deterministically or via LLM.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		NewUploadCmd(),
		NewInsightsCmd(),
		NewAskCmd(),
		NewOutliersCmd(),
		NewCorrelationCmd(),
		NewClusterCmd(),
		NewDatasetsCmd(),
		NewMarkCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// newService builds the full service stack from environment configuration.
// The returned cleanup closes the database.
func newService() (*eda.Service, func(), error) {
	// Load .env if it exists (for API keys).
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log := logrus.New()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	gen, err := llm.NewGenerator(llm.ClientConfig{
		APIKey:     cfg.OpenAIKey,
		ChatModel:  cfg.ChatModel,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	})
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	svc := eda.NewService(sqlite.NewStore(db), gen, plot.New(), cfg.DataDir, log)
	svc.Resolver().MemoryLimit = cfg.MemoryLimit
	svc.Resolver().SampleRows = cfg.SampleRows
	svc.Resolver().MaxContextChars = cfg.MaxContextChars

	cleanup := func() { _ = db.Close() }
	return svc, cleanup, nil
}
