package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-points/internal/ingest"
	"github.com/insightdelivered/statement-points/internal/writer"
)

func newIngestCommand(e *env) *cobra.Command {
	var format string
	var output string
	var header bool

	cmd := &cobra.Command{
		Use:   "ingest <statement> [statement ...]",
		Short: "Normalize CSV and PDF statements into one transaction list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "csv" {
				return fmt.Errorf("unknown format %q: use json or csv", format)
			}
			res, err := e.ingestPaths(cmd.Context(), cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output file %q: %w", output, err)
				}
				defer f.Close()
				out = f
			}
			return writeResult(out, res, format, header)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&header, "header", false, "csv: write one block per statement with source metadata rows")

	return cmd
}

func writeResult(out io.Writer, res *ingest.Result, format string, header bool) error {
	if format == "json" {
		return writeJSON(out, res)
	}

	w := &writer.CSVWriter{IncludeHeader: header}
	if !header {
		return w.WriteTransactions(out, res.Transactions)
	}
	for _, info := range res.Statements {
		if err := w.Write(out, info); err != nil {
			return err
		}
	}
	return nil
}
