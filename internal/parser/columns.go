package parser

import (
	"strings"

	"github.com/insightdelivered/statement-points/internal/models"
)

// headerScanLimit bounds how many leading rows may be bank preamble.
const headerScanLimit = 10

// headerKeywords are the prefixes that mark a field as a column header.
var headerKeywords = []string{
	"date", "trans", "post", "desc", "payee", "merchant", "name",
	"amount", "amt", "debit", "credit", "charge", "payment",
	"category", "type", "memo", "extended", "card", "account",
}

// Legacy 6-column layout used when headers cannot be resolved:
// date, post date, description, category, type, amount (+ optional memo).
const (
	legacyColDate     = 0
	legacyColPostDate = 1
	legacyColDesc     = 2
	legacyColCategory = 3
	legacyColType     = 4
	legacyColAmount   = 5
	legacyColMemo     = 6
	legacyNumFields   = 6
)

// LegacyMapping returns the fixed positional fallback mapping.
func LegacyMapping() models.ColumnMapping {
	m := models.EmptyMapping()
	m.Date = legacyColDate
	m.PostDate = legacyColPostDate
	m.Description = legacyColDesc
	m.Category = legacyColCategory
	m.Type = legacyColType
	m.Amount = legacyColAmount
	m.Memo = legacyColMemo
	return m
}

// normalizeHeader lowercases and strips everything but [a-z0-9].
func normalizeHeader(h string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return -1
	}, h)
}

// LocateHeader returns the index of the header row among the first rows,
// or -1 when no row looks like a header. A candidate must resolve to a
// usable column mapping; rows that open with a date are data, whatever
// words their description holds.
func LocateHeader(rows [][]string) int {
	limit := min(len(rows), headerScanLimit)
	for i := 0; i < limit; i++ {
		if startsWithDate(rows[i]) {
			continue
		}
		hits := 0
		for _, f := range rows[i] {
			if isHeaderField(f) {
				hits++
			}
		}
		if hits >= 2 && DetectColumns(rows[i]).Resolved() {
			return i
		}
	}
	return -1
}

func isHeaderField(f string) bool {
	n := normalizeHeader(f)
	if n == "" {
		return false
	}
	for _, kw := range headerKeywords {
		if strings.HasPrefix(n, kw) {
			return true
		}
	}
	return false
}

// findCol returns the first column whose normalized name equals or contains
// one of the patterns, trying patterns in priority order. Columns in skip are
// never returned.
func findCol(normalized []string, skip map[int]bool, patterns ...string) int {
	for _, p := range patterns {
		for i, h := range normalized {
			if skip[i] {
				continue
			}
			if h == p || strings.Contains(h, p) {
				return i
			}
		}
	}
	return models.ColumnAbsent
}

// DetectColumns maps bank-specific header names onto the canonical fields.
func DetectColumns(headers []string) models.ColumnMapping {
	n := make([]string, len(headers))
	for i, h := range headers {
		n[i] = normalizeHeader(h)
	}

	m := models.EmptyMapping()
	claimed := map[int]bool{}
	claim := func(col int) int {
		if col != models.ColumnAbsent {
			claimed[col] = true
		}
		return col
	}

	// Post date first so the generic "date" search cannot steal it.
	m.PostDate = claim(findCol(n, nil, "postdate", "posteddate", "postingdate"))

	m.Date = findCol(n, claimed, "transactiondate", "transdate")
	if m.Date == models.ColumnAbsent {
		m.Date = findCol(n, claimed, "date")
	}
	claim(m.Date)

	m.Description = findCol(n, claimed, "description", "payee", "merchant")
	if m.Description == models.ColumnAbsent {
		m.Description = findCol(n, claimed, "name")
	}
	claim(m.Description)

	m.Category = claim(findCol(n, claimed, "category", "merchantcategory"))
	m.Type = claim(findCol(n, claimed, "type", "transactiontype"))
	// Split columns before the single amount so "Debit Amount" and
	// "Credit Amount" are not read as one signed column.
	m.Debit = claim(findCol(n, claimed, "debit", "charge"))
	m.Credit = claim(findCol(n, claimed, "credit", "payment"))
	m.Amount = claim(findCol(n, claimed, "amount", "amt"))
	m.Memo = claim(findCol(n, claimed, "memo", "extendeddetails"))
	m.Card = claim(findCol(n, claimed, "cardno", "cardnumber", "card", "accountnumber", "account"))

	return m
}
