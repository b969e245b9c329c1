package models

// ColumnAbsent marks a canonical field with no source column.
const ColumnAbsent = -1

// ColumnMapping maps each canonical field to a column index in one parsed file.
type ColumnMapping struct {
	Date        int
	PostDate    int
	Description int
	Amount      int
	Debit       int
	Credit      int
	Category    int
	Type        int
	Memo        int
	Card        int
}

// EmptyMapping returns a mapping with every field absent.
func EmptyMapping() ColumnMapping {
	return ColumnMapping{
		Date:        ColumnAbsent,
		PostDate:    ColumnAbsent,
		Description: ColumnAbsent,
		Amount:      ColumnAbsent,
		Debit:       ColumnAbsent,
		Credit:      ColumnAbsent,
		Category:    ColumnAbsent,
		Type:        ColumnAbsent,
		Memo:        ColumnAbsent,
		Card:        ColumnAbsent,
	}
}

// Has reports whether col refers to a real column.
func (m ColumnMapping) Has(col int) bool {
	return col != ColumnAbsent
}

// HasDebitCredit reports whether both split amount columns were found.
func (m ColumnMapping) HasDebitCredit() bool {
	return m.Has(m.Debit) && m.Has(m.Credit)
}

// Resolved reports whether the mapping carries enough to build transactions:
// a date, a description and an amount source.
func (m ColumnMapping) Resolved() bool {
	return m.Has(m.Date) && m.Has(m.Description) && (m.Has(m.Amount) || m.HasDebitCredit())
}

// Field returns row[col], or "" when the column is absent or the row is short.
func (m ColumnMapping) Field(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
