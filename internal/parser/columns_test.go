package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/insightdelivered/statement-points/internal/models"
)

func TestLocateHeader(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		expected int
	}{
		{
			name:     "header on first row",
			rows:     [][]string{{"Transaction Date", "Description", "Amount"}, {"01/05/2025", "X", "-1"}},
			expected: 0,
		},
		{
			name: "bank preamble before header",
			rows: [][]string{
				{"Account Name: Jane Doe"},
				{"Statement generated 02/01/2025", ""},
				{"Date", "Payee", "Debit", "Credit"},
				{"01/05/2025", "STARBUCKS", "5.75", ""},
			},
			expected: 2,
		},
		{
			name:     "single keyword is not enough",
			rows:     [][]string{{"Date", "foo", "bar"}, {"01/05/2025", "X", "1"}},
			expected: -1,
		},
		{
			name: "data row with keyword fields",
			rows: [][]string{
				{"01/05/2025", "01/06/2025", "STARBUCKS", "Food & Drink", "Sale", "-5.75"},
				{"01/10/2025", "01/11/2025", "PAYMENT THANK YOU", "", "Payment", "100.00"},
			},
			expected: -1,
		},
		{
			name: "keywords that do not map to columns",
			rows: [][]string{
				{"Fecha", "Fecha Valor", "Concepto", "Categoria", "Tipo", "Importe"},
				{"TRANSFER TO SAVINGS", "", "Transfer", "Payment"},
			},
			expected: -1,
		},
		{
			name:     "no header",
			rows:     [][]string{{"01/05/2025", "01/06/2025", "STARBUCKS", "", "", "-5.75"}},
			expected: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LocateHeader(tt.rows))
		})
	}
}

func TestLocateHeader_ScanLimit(t *testing.T) {
	rows := make([][]string, 0, 12)
	for i := 0; i < 11; i++ {
		rows = append(rows, []string{"preamble"})
	}
	rows = append(rows, []string{"Date", "Description", "Amount"})
	assert.Equal(t, -1, LocateHeader(rows))
}

func TestDetectColumns(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		check   func(t *testing.T, m models.ColumnMapping)
	}{
		{
			name:    "chase export",
			headers: []string{"Transaction Date", "Post Date", "Description", "Category", "Type", "Amount", "Memo"},
			check: func(t *testing.T, m models.ColumnMapping) {
				assert.Equal(t, 0, m.Date)
				assert.Equal(t, 1, m.PostDate)
				assert.Equal(t, 2, m.Description)
				assert.Equal(t, 3, m.Category)
				assert.Equal(t, 4, m.Type)
				assert.Equal(t, 5, m.Amount)
				assert.Equal(t, 6, m.Memo)
				assert.True(t, m.Resolved())
			},
		},
		{
			name:    "amex export",
			headers: []string{"Date", "Description", "Card Member", "Account #", "Amount", "Extended Details"},
			check: func(t *testing.T, m models.ColumnMapping) {
				assert.Equal(t, 0, m.Date)
				assert.Equal(t, 1, m.Description)
				assert.Equal(t, 4, m.Amount)
				assert.Equal(t, 5, m.Memo)
				// "Card Member" outranks "Account #"; a name without
				// digits later falls back to the file name.
				assert.Equal(t, 2, m.Card)
				assert.Equal(t, models.ColumnAbsent, m.PostDate)
			},
		},
		{
			name:    "capital one split columns",
			headers: []string{"Transaction Date", "Posted Date", "Card No.", "Description", "Category", "Debit", "Credit"},
			check: func(t *testing.T, m models.ColumnMapping) {
				assert.Equal(t, 0, m.Date)
				assert.Equal(t, 1, m.PostDate)
				assert.Equal(t, 2, m.Card)
				assert.Equal(t, 3, m.Description)
				assert.Equal(t, 4, m.Category)
				assert.Equal(t, 5, m.Debit)
				assert.Equal(t, 6, m.Credit)
				assert.Equal(t, models.ColumnAbsent, m.Amount)
				assert.True(t, m.HasDebitCredit())
				assert.True(t, m.Resolved())
			},
		},
		{
			name:    "debit and credit amount headers are not the single amount",
			headers: []string{"Date", "Merchant", "Debit Amount", "Credit Amount"},
			check: func(t *testing.T, m models.ColumnMapping) {
				assert.Equal(t, 1, m.Description)
				assert.Equal(t, 2, m.Debit)
				assert.Equal(t, 3, m.Credit)
				assert.Equal(t, models.ColumnAbsent, m.Amount)
			},
		},
		{
			name:    "name is a description fallback",
			headers: []string{"Date", "Name", "Amt"},
			check: func(t *testing.T, m models.ColumnMapping) {
				assert.Equal(t, 1, m.Description)
				assert.Equal(t, 2, m.Amount)
			},
		},
		{
			name:    "unrecognized headers",
			headers: []string{"col1", "col2", "col3"},
			check: func(t *testing.T, m models.ColumnMapping) {
				assert.False(t, m.Resolved())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, DetectColumns(tt.headers))
		})
	}
}
