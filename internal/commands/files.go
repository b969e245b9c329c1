package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-points/internal/ingest"
	"github.com/insightdelivered/statement-points/internal/parser"
)

var errNoTransactions = errors.New("no transactions found")

func readFiles(paths []string) ([]ingest.File, error) {
	files := make([]ingest.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		files = append(files, ingest.File{Name: filepath.Base(p), Data: data})
	}
	return files, nil
}

// ingestPaths reads and parses the statement files. Files that fail are
// reported on stderr; an empty result is an error.
func (e *env) ingestPaths(ctx context.Context, cmd *cobra.Command, paths []string) (*ingest.Result, error) {
	files, err := readFiles(paths)
	if err != nil {
		return nil, err
	}

	svc := ingest.NewService(parser.Options{LineTolerance: e.cfg.PDF.LineTolerance}, e.log)
	res, err := svc.Ingest(ctx, files)
	if err != nil {
		return nil, err
	}
	for _, fe := range res.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s: %s\n", fe.File, fe.Err)
	}
	if res.Empty() {
		return res, errNoTransactions
	}
	return res, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
