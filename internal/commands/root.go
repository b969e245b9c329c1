package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-points/internal/buildinfo"
	"github.com/insightdelivered/statement-points/internal/config"
	"github.com/insightdelivered/statement-points/internal/logger"
)

// env is shared by every subcommand once the root has loaded config.
type env struct {
	cfgPath string
	cfg     *config.Config
	log     zerolog.Logger
}

func (e *env) load() error {
	cfg := config.Default()
	if e.cfgPath != "" {
		loaded, err := config.Load(e.cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	e.cfg = cfg
	e.log = logger.New()
	return nil
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	e := &env{}

	rootCmd := &cobra.Command{
		Use:     "statement-points",
		Short:   "Credit card statement ingestion and rewards analysis",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load()
		},
	}

	rootCmd.PersistentFlags().StringVar(&e.cfgPath, "config", "", "path to statement-points.yaml")

	rootCmd.AddCommand(
		newIngestCommand(e),
		newDetectCommand(e),
		newCategorizeCommand(e),
		newCompareCommand(e),
		newOptimizeCommand(e),
		newServeCommand(e),
		newInitCommand(),
	)

	return rootCmd
}
