package parser

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/insightdelivered/statement-points/internal/classify"
	"github.com/insightdelivered/statement-points/internal/extractor"
	"github.com/insightdelivered/statement-points/internal/models"
)

// PDFParser reads card statements from PDF bytes.
type PDFParser struct {
	Extractor *extractor.Extractor
}

func (p *PDFParser) Format() string { return models.FormatPDF }

// Parse extracts lines from the PDF and matches them against the known
// statement layouts. A PDF with no matching lines yields an empty list,
// not an error.
func (p *PDFParser) Parse(ctx context.Context, name string, data []byte) (*models.StatementInfo, error) {
	ex := p.Extractor
	if ex == nil {
		ex = extractor.New(extractor.DefaultTolerance)
	}
	lines, err := ex.Lines(ctx, data)
	if err != nil {
		return nil, err
	}

	card := findCardLastFour(lines)
	if card == "" {
		card = CardFromFilename(name)
	}
	txns, debug := MatchLines(lines, card)
	if closing, ok := statementClose(lines); ok {
		qualifyYears(txns, closing)
	}

	return &models.StatementInfo{
		Source:       name,
		Format:       models.FormatPDF,
		Transactions: txns,
		Detection:    DetectCard(strings.Join(lines, "\n"), name),
		DebugLines:   debug,
	}, nil
}

// Matcher pattern names, reported in debug output.
const (
	MethodTwoDate = "two-date"
	MethodOneDate = "one-date"
	MethodAmex    = "amex"
	MethodGeneric = "generic"
)

const amountExpr = `(-?\$?[\d,]+\.\d{2})`

var (
	// Year-end Chase: transaction date, post date.
	twoDatePattern = regexp.MustCompile(`^(\d{2}/\d{2})\s+(\d{2}/\d{2})\s+(.+?)\s+` + amountExpr + `$`)
	// Monthly Chase: one date, no year.
	oneDatePattern = regexp.MustCompile(`^(\d{2}/\d{2})\s+(.+?)\s+` + amountExpr + `$`)
	// AMEX year-end: full date followed by the month name.
	// Month names are title case so an upper-case merchant word such as
	// "MAR" is not read as one.
	amexPattern = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4})\*?\s+` +
		`(Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|June?|July?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\s+` +
		`(.+?)\s+` + amountExpr + `$`)
	genericPattern = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4})\*?\s+(.+?)\s+` + amountExpr + `$`)
)

var (
	periodLinePattern = regexp.MustCompile(`(?i)\b(opening/closing\s+date|statement\s+period|billing\s+period|closing\s+date)\b`)
	fullDatePattern   = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/(?:\d{4}|\d{2})\b`)
)

// statementClose returns the last full date on the first statement period
// line, which is the closing date of the cycle.
func statementClose(lines []string) (time.Time, bool) {
	for _, line := range lines {
		if !periodLinePattern.MatchString(line) {
			continue
		}
		dates := fullDatePattern.FindAllString(line, -1)
		if len(dates) == 0 {
			continue
		}
		if t, ok := ParseDate(dates[len(dates)-1]); ok && t.Year() > 0 {
			return t, true
		}
	}
	return time.Time{}, false
}

// qualifyYears appends the statement year to MM/DD dates. A month after the
// closing month belongs to the previous year.
func qualifyYears(txns []models.Transaction, closing time.Time) {
	for i := range txns {
		txns[i].TransactionDate = withYear(txns[i].TransactionDate, closing)
		txns[i].PostDate = withYear(txns[i].PostDate, closing)
	}
}

func withYear(date string, closing time.Time) string {
	t, ok := ParseDate(date)
	if !ok || t.Year() != 0 {
		return date
	}
	year := closing.Year()
	if t.Month() > closing.Month() {
		year--
	}
	return fmt.Sprintf("%s/%d", date, year)
}

// noisePatterns match statement boilerplate that can resemble a row.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(sub)?total\b`),
	regexp.MustCompile(`(?i)\bpage\s+\d+\s+of\s+\d+\b`),
	regexp.MustCompile(`(?i)^account\s+(number|summary)\b`),
	regexp.MustCompile(`(?i)\b(statement|billing)\s+period\b`),
	regexp.MustCompile(`(?i)\bopening/closing\s+date\b`),
	regexp.MustCompile(`(?i)^(previous|new)\s+balance\b`),
	regexp.MustCompile(`(?i)\bminimum\s+payment\b`),
	regexp.MustCompile(`(?i)\bpayment\s+due\b`),
	regexp.MustCompile(`(?i)^(date|trans(action)?\s+date)\b.*\b(description|merchant|amount)\b`),
}

type sectionHeader struct {
	pattern  *regexp.Regexp
	category string
}

// sectionHeaders are whole-line category headings. Order matters only
// where two headings could match the same text.
var sectionHeaders = []sectionHeader{
	{regexp.MustCompile(`(?i)^(food\s*&\s*drink|restaurants?|dining)$`), classify.FoodDrink},
	{regexp.MustCompile(`(?i)^(grocer(y|ies)|supermarkets?)$`), classify.Groceries},
	{regexp.MustCompile(`(?i)^(gas|gas\s+stations?|fuel)$`), classify.Gas},
	{regexp.MustCompile(`(?i)^(travel|airlines?|lodging|hotels?|travel/?\s*entertainment)$`), classify.Travel},
	{regexp.MustCompile(`(?i)^entertainment$`), classify.Entertainment},
	{regexp.MustCompile(`(?i)^(shopping|merchandise(\s*&\s*supplies)?)$`), classify.Shopping},
	{regexp.MustCompile(`(?i)^health\s*&\s*wellness$`), classify.HealthWellness},
	{regexp.MustCompile(`(?i)^(bills\s*&\s*utilities|communications)$`), classify.BillsUtilities},
	{regexp.MustCompile(`(?i)^home(\s+improvement)?$`), classify.Home},
	{regexp.MustCompile(`(?i)^automotive$`), classify.Automotive},
	{regexp.MustCompile(`(?i)^education$`), classify.Education},
}

var cardLastFourPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bending\s+in\s*:?\s*(\d{4})\b`),
	regexp.MustCompile(`(?i)\baccount\s+number\s*:?\s*[x*•\-\s\d]*?(\d{4})\s*$`),
}

// creditKeywords mark refunds and payments on statements that print every
// amount unsigned.
var creditKeywords = []string{
	"PAYMENT", "THANK YOU", "REFUND", "CREDIT", "RETURN",
	"REVERSAL", "ADJUSTMENT", "CASHBACK",
}

func isCreditDescription(desc string) bool {
	upper := strings.ToUpper(desc)
	for _, kw := range creditKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}

func isNoise(line string) bool {
	for _, p := range noisePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

func sectionCategory(line string) (string, bool) {
	for _, h := range sectionHeaders {
		if h.pattern.MatchString(line) {
			return h.category, true
		}
	}
	return "", false
}

// findCardLastFour looks for the account's last four digits in the
// statement header lines.
func findCardLastFour(lines []string) string {
	for _, line := range lines {
		for _, p := range cardLastFourPatterns {
			if m := p.FindStringSubmatch(line); m != nil {
				return m[1]
			}
		}
	}
	return ""
}

// matchState is threaded through the line loop.
type matchState struct {
	category string
	txns     []models.Transaction
	debug    []models.DebugLine
}

func (s *matchState) trace(num int, line, result, method string) {
	s.debug = append(s.debug, models.DebugLine{LineNum: num, Text: line, Result: result, Method: method})
}

// MatchLines extracts transactions from reconstructed statement lines.
// Lines matching no pattern are dropped and only show up in the trace.
func MatchLines(lines []string, card string) ([]models.Transaction, []models.DebugLine) {
	st := &matchState{}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		num := i + 1
		if line == "" {
			continue
		}

		if isNoise(line) {
			st.trace(num, line, models.LineNoise, "")
			continue
		}
		if cat, ok := sectionCategory(line); ok {
			st.category = cat
			st.trace(num, line, models.LineHeader, cat)
			continue
		}

		txn, method, ok := matchLine(line)
		if !ok {
			st.trace(num, line, models.LineSkipped, "")
			continue
		}

		txn.Card = card
		if st.category != "" {
			txn.Category = st.category
			txn.AutoCategory = true
		} else {
			classify.AssignCategory(&txn)
		}
		st.txns = append(st.txns, txn)
		st.trace(num, line, models.LineParsed, method)
	}

	DefaultTypes(st.txns)
	return st.txns, st.debug
}

// matchLine applies the row patterns in priority order.
func matchLine(line string) (models.Transaction, string, bool) {
	if m := twoDatePattern.FindStringSubmatch(line); m != nil {
		amt := ParseAmount(m[4])
		// Positive is a payment or credit on year-end exports.
		if amt <= 0 {
			amt = -math.Abs(amt)
		}
		return models.Transaction{
			TransactionDate: m[1],
			PostDate:        m[2],
			Description:     strings.TrimSpace(m[3]),
			Amount:          amt,
		}, MethodTwoDate, true
	}

	if m := oneDatePattern.FindStringSubmatch(line); m != nil {
		// Monthly exports print charges positive.
		return models.Transaction{
			TransactionDate: m[1],
			Description:     strings.TrimSpace(m[2]),
			Amount:          -ParseAmount(m[3]),
		}, MethodOneDate, true
	}

	if m := amexPattern.FindStringSubmatch(line); m != nil {
		desc := strings.TrimSpace(m[3])
		return models.Transaction{
			TransactionDate: m[1],
			Description:     desc,
			Amount:          unsignedAmount(m[4], desc, line),
		}, MethodAmex, true
	}

	if m := genericPattern.FindStringSubmatch(line); m != nil {
		desc := strings.TrimSpace(m[2])
		return models.Transaction{
			TransactionDate: m[1],
			Description:     desc,
			Amount:          unsignedAmount(m[3], desc, line),
		}, MethodGeneric, true
	}

	return models.Transaction{}, "", false
}

// unsignedAmount treats the value as a charge unless the description reads
// like a credit or the line prints an explicit "-$".
func unsignedAmount(raw, desc, line string) float64 {
	amt := math.Abs(ParseAmount(raw))
	if isCreditDescription(desc) || strings.Contains(line, "-$") {
		return amt
	}
	return -amt
}
