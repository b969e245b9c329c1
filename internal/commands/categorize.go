package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-points/internal/categorize"
	"github.com/insightdelivered/statement-points/internal/classify"
)

func newCategorizeCommand(e *env) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "categorize <statement> [statement ...]",
		Short: "Ingest statements and fill missing categories with the AI categorizer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := e.ingestPaths(ctx, cmd, args)
			if err != nil {
				return err
			}

			c, err := categorize.FromConfig(ctx, e.cfg.Categorizer)
			if err != nil {
				return err
			}
			b := categorize.NewBatcher(c, e.log)
			b.Size = e.cfg.Categorizer.BatchSize

			txns, applied, err := categorize.Apply(ctx, b, res.Transactions)
			if err != nil {
				return fmt.Errorf("categorizing: %w", err)
			}
			res.Transactions = txns
			res.Stats = classify.Stats(txns)
			e.log.Info().Int("applied", applied).Int("uncategorized", res.Stats.Uncategorized).Msg("categorization complete")

			return writeResult(cmd.OutOrStdout(), res, format, false)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json or csv")
	return cmd
}
