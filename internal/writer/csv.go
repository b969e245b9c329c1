package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/insightdelivered/statement-points/internal/models"
)

var columns = []string{"Transaction Date", "Post Date", "Description", "Category", "Type", "Amount", "Card", "Memo"}

// CSVWriter writes normalized transactions as CSV.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes txns to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, txns []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.WriteTransactions(f, txns)
}

// Write writes one statement. With IncludeHeader the source file and any
// detected card product precede the column row as comment records.
func (w *CSVWriter) Write(out io.Writer, info *models.StatementInfo) error {
	writer := csv.NewWriter(out)

	if w.IncludeHeader {
		meta := [][]string{{"# Source", info.Source}, {"# Format", info.Format}}
		if d := info.Detection; d != nil && d.Status == models.DetectionDetected {
			meta = append(meta, []string{"# Card Product", d.ProductName})
		}
		for _, rec := range meta {
			if rec[1] == "" {
				continue
			}
			if err := writer.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV metadata: %w", err)
			}
		}
	}

	return writeRows(writer, info.Transactions)
}

// WriteTransactions writes the column row and txns.
func (w *CSVWriter) WriteTransactions(out io.Writer, txns []models.Transaction) error {
	return writeRows(csv.NewWriter(out), txns)
}

func writeRows(writer *csv.Writer, txns []models.Transaction) error {
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range txns {
		row := []string{
			txn.TransactionDate,
			txn.PostDate,
			txn.Description,
			txn.Category,
			txn.Type,
			formatAmount(txn.Amount),
			txn.Card,
			txn.Memo,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
