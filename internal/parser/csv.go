package parser

import (
	"context"

	"github.com/insightdelivered/statement-points/internal/classify"
	"github.com/insightdelivered/statement-points/internal/models"
)

// CSVParser handles bank CSV exports with arbitrary header layouts.
type CSVParser struct{}

func (p *CSVParser) Format() string { return models.FormatCSV }

// Parse never fails on malformed input: unknown layouts fall back to the
// legacy positional format and unusable rows are skipped.
func (p *CSVParser) Parse(_ context.Context, name string, data []byte) (*models.StatementInfo, error) {
	text := string(data)
	info := &models.StatementInfo{
		Source:       name,
		Format:       models.FormatCSV,
		Transactions: ParseCSV(text),
		Detection:    DetectCard(text, name),
	}
	fillCard(info.Transactions, name)
	return info, nil
}

// ParseCSV converts CSV text into canonical transactions.
func ParseCSV(text string) []models.Transaction {
	records := SplitRecords(text)
	if len(records) < 2 {
		return nil
	}

	located := LocateHeader(records)
	headerIdx := max(located, 0)
	cols := DetectColumns(records[headerIdx])

	var txns []models.Transaction
	switch {
	case cols.Resolved():
		txns = parseMapped(records[headerIdx+1:], cols)
	case located < 0 && startsWithDate(records[0]):
		// Headerless export: the first row is already data.
		txns = parseLegacy(records)
	default:
		txns = parseLegacy(records[headerIdx+1:])
	}

	// Split debit/credit columns carry an explicit sign already.
	if !cols.Resolved() || cols.Has(cols.Amount) {
		NormalizeSigns(txns)
	}
	DefaultTypes(txns)
	return txns
}

func parseMapped(rows [][]string, cols models.ColumnMapping) []models.Transaction {
	var txns []models.Transaction
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}

		var amount float64
		if cols.Has(cols.Amount) {
			amount = ParseAmount(cols.Field(row, cols.Amount))
		} else {
			amount = splitAmount(cols.Field(row, cols.Debit), cols.Field(row, cols.Credit))
		}

		txn := models.Transaction{
			TransactionDate: cols.Field(row, cols.Date),
			PostDate:        cols.Field(row, cols.PostDate),
			Description:     cols.Field(row, cols.Description),
			Category:        cols.Field(row, cols.Category),
			Type:            cols.Field(row, cols.Type),
			Amount:          amount,
			Memo:            cols.Field(row, cols.Memo),
			Card:            lastFour(cols.Field(row, cols.Card)),
		}
		classify.AssignCategory(&txn)
		txns = append(txns, txn)
	}
	return txns
}

// parseLegacy reads the fixed Chase-style layout. Rows shorter than the
// layout are skipped.
func parseLegacy(rows [][]string) []models.Transaction {
	cols := LegacyMapping()
	var txns []models.Transaction
	for _, row := range rows {
		if len(row) < legacyNumFields {
			continue
		}
		txn := models.Transaction{
			TransactionDate: cols.Field(row, cols.Date),
			PostDate:        cols.Field(row, cols.PostDate),
			Description:     cols.Field(row, cols.Description),
			Category:        cols.Field(row, cols.Category),
			Type:            cols.Field(row, cols.Type),
			Amount:          ParseAmount(cols.Field(row, cols.Amount)),
			Memo:            cols.Field(row, cols.Memo),
		}
		classify.AssignCategory(&txn)
		txns = append(txns, txn)
	}
	return txns
}

func startsWithDate(row []string) bool {
	if len(row) == 0 {
		return false
	}
	_, ok := ParseDate(row[0])
	return ok
}

// fillCard applies the filename fallback to rows without a card column.
func fillCard(txns []models.Transaction, name string) {
	fallback := CardFromFilename(name)
	for i := range txns {
		if txns[i].Card == "" {
			txns[i].Card = fallback
		}
	}
}
