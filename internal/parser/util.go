package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// amountReplacer strips currency symbols, thousands separators and spaces
// (including Unicode variants).
var amountReplacer = strings.NewReplacer(
	"$", "",
	"£", "",
	"€", "",
	",", "",
	" ", "",
	" ", "", // non-breaking space
	"\t", "",
)

// ParseAmount converts a string like "$1,234.56", "(25.00)" or "-£5" to a
// signed float64. Parenthesized values are negative. Anything unparsable is
// treated as zero so one bad cell never aborts a file.
func ParseAmount(raw string) float64 {
	d, ok := parseDecimal(raw)
	if !ok {
		return 0
	}
	return d.InexactFloat64()
}

func parseDecimal(raw string) (decimal.Decimal, bool) {
	s := amountReplacer.Replace(strings.TrimSpace(raw))
	if s == "" || s == "-" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = s[1 : len(s)-1]
		negative = true
	}
	// Trailing minus, e.g. "12.50-"
	if len(s) > 1 && strings.HasSuffix(s, "-") {
		s = s[:len(s)-1]
		negative = !negative
	}
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Abs().Neg()
	}
	return d, true
}

// CardFromFilename returns the last four digits found in a file name, or
// "card" when it has none.
func CardFromFilename(name string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, name)
	if digits == "" {
		return "card"
	}
	if len(digits) > 4 {
		return digits[len(digits)-4:]
	}
	return digits
}

// lastFour keeps the trailing four digits of an account/card identifier.
func lastFour(s string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if len(digits) > 4 {
		return digits[len(digits)-4:]
	}
	return digits
}

// Date layouts seen on US card statements, most specific first.
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"2006-01-02",
	"01-02-2006",
	"Jan 2, 2006",
	"01/02",
	"1/2",
}

var leadingDatePattern = regexp.MustCompile(`^\s*(\d{1,4}[/-]\d{1,2}(?:[/-]\d{2,4})?)`)

// ParseDate parses bank-native date text for sorting. Dates without a year
// land in year 0, so they sort before dated rows of any real year. PDF rows
// get their year from the statement period line when one is printed.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	// Some exports append a time: "01/05/2025 12:00:00"
	if m := leadingDatePattern.FindStringSubmatch(s); m != nil && m[1] != s {
		return ParseDate(m[1])
	}
	return time.Time{}, false
}
