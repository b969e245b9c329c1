package parser

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/insightdelivered/statement-points/internal/extractor"
	"github.com/insightdelivered/statement-points/internal/models"
)

// ErrUnsupportedFormat is returned by New for formats with no parser.
var ErrUnsupportedFormat = errors.New("unsupported statement format")

// Parser defines the interface for statement parsers.
type Parser interface {
	// Parse turns the raw bytes of one uploaded file into canonical
	// transactions. name is the uploaded file name.
	Parse(ctx context.Context, name string, data []byte) (*models.StatementInfo, error)
	// Format returns the format handled, "csv" or "pdf".
	Format() string
}

// Options configure the parsers returned by New.
type Options struct {
	// LineTolerance is the PDF baseline grouping band.
	LineTolerance float64
}

// New returns the parser for the given format.
func New(format string, opts Options) (Parser, error) {
	switch strings.ToLower(format) {
	case models.FormatCSV:
		return &CSVParser{}, nil
	case models.FormatPDF:
		return &PDFParser{Extractor: extractor.New(opts.LineTolerance)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// FormatFor picks the format from a file name. Anything that is not a PDF
// is read as CSV text.
func FormatFor(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return models.FormatPDF
	}
	return models.FormatCSV
}
