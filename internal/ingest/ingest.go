// Package ingest runs uploaded statement files through the matching parser
// and merges the results into one date-ordered transaction list.
package ingest

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-points/internal/classify"
	"github.com/insightdelivered/statement-points/internal/models"
	"github.com/insightdelivered/statement-points/internal/parser"
)

// File is one uploaded statement.
type File struct {
	Name string
	Data []byte
}

// FileError records a file that could not be read. The rest of the batch
// is still processed.
type FileError struct {
	File string `json:"file"`
	Err  string `json:"error"`
}

// Result is the merged output of one ingestion run.
type Result struct {
	Transactions []models.Transaction    `json:"transactions"`
	Statements   []*models.StatementInfo `json:"statements"`
	Errors       []FileError             `json:"errors,omitempty"`
	Stats        models.CategoryStats    `json:"stats"`
}

// Empty reports whether no file produced a transaction.
func (r *Result) Empty() bool {
	return len(r.Transactions) == 0
}

// Service ingests statement files.
type Service struct {
	opts parser.Options
	log  zerolog.Logger
}

// NewService creates an ingestion service.
func NewService(opts parser.Options, log zerolog.Logger) *Service {
	return &Service{opts: opts, log: log}
}

// Ingest parses files in order. A file that fails is reported in
// Result.Errors; ctx cancellation stops the run.
func (s *Service) Ingest(ctx context.Context, files []File) (*Result, error) {
	res := &Result{}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := s.parseFile(ctx, f)
		if err != nil {
			s.log.Warn().Err(err).Str("file", f.Name).Msg("skipping unreadable statement")
			res.Errors = append(res.Errors, FileError{File: f.Name, Err: err.Error()})
			continue
		}

		event := s.log.Info().
			Str("file", f.Name).
			Str("format", info.Format).
			Int("transactions", len(info.Transactions))
		if info.Detection != nil && info.Detection.Status == models.DetectionDetected {
			event = event.Str("card", string(info.Detection.CardKey))
		}
		event.Msg("parsed statement")

		res.Statements = append(res.Statements, info)
		res.Transactions = append(res.Transactions, info.Transactions...)
	}

	SortByDateDesc(res.Transactions)
	res.Stats = classify.Stats(res.Transactions)
	return res, nil
}

func (s *Service) parseFile(ctx context.Context, f File) (*models.StatementInfo, error) {
	p, err := parser.New(parser.FormatFor(f.Name), s.opts)
	if err != nil {
		return nil, err
	}
	info, err := p.Parse(ctx, f.Name, f.Data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Name, err)
	}
	return info, nil
}

// SortByDateDesc orders transactions newest first. Rows whose date cannot be
// parsed go last; ties keep their input order.
func SortByDateDesc(txns []models.Transaction) {
	type keyed struct {
		ok  bool
		sec int64
	}
	keys := make([]keyed, len(txns))
	for i, t := range txns {
		d, ok := parser.ParseDate(t.TransactionDate)
		keys[i] = keyed{ok: ok, sec: d.Unix()}
	}

	idx := make([]int, len(txns))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if ka.ok != kb.ok {
			return ka.ok
		}
		return ka.sec > kb.sec
	})

	sorted := make([]models.Transaction, len(txns))
	for i, j := range idx {
		sorted[i] = txns[j]
	}
	copy(txns, sorted)
}
