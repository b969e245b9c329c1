package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-points/internal/models"
)

func newDetectCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <statement> [statement ...]",
		Short: "Identify the card product behind each statement",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := e.ingestPaths(cmd.Context(), cmd, args)
			if err != nil && !errors.Is(err, errNoTransactions) {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FILE\tCARD\tPRODUCT\tTRANSACTIONS")
			for _, info := range res.Statements {
				key, product := "-", "unknown"
				if d := info.Detection; d != nil && d.Status == models.DetectionDetected {
					key, product = string(d.CardKey), d.ProductName
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", info.Source, key, product, len(info.Transactions))
			}
			return tw.Flush()
		},
	}
}
