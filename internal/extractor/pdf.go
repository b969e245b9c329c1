package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadable is returned when no extraction method produced usable text.
var ErrUnreadable = errors.New("no readable text could be extracted from PDF")

// Fragment is one positioned piece of text on a page. Y grows upward, as
// in PDF user space.
type Fragment struct {
	Text string
	X    float64
	Y    float64
}

// ExtractFragments reads positioned text from an in-memory PDF, one slice
// per page in page order.
func ExtractFragments(data []byte) (pages [][]Fragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pages = append(pages, mergeGlyphs(page.Content().Text))
	}
	return pages, nil
}

// wordGapRatio is the horizontal gap, as a fraction of the font size,
// beyond which two glyphs belong to different words.
const wordGapRatio = 0.25

// mergeGlyphs joins the library's per-glyph text runs into word fragments.
// A whitespace glyph, a baseline change or a horizontal gap wider than
// wordGapRatio ends the current word. Fonts without a widths table report
// zero advance, so consecutive glyphs of one string share an X and still
// merge.
func mergeGlyphs(glyphs []pdf.Text) []Fragment {
	var (
		frags []Fragment
		word  strings.Builder
		first pdf.Text
		last  pdf.Text
	)
	flush := func() {
		if word.Len() > 0 {
			frags = append(frags, Fragment{Text: word.String(), X: first.X, Y: first.Y})
		}
		word.Reset()
	}

	for _, g := range glyphs {
		if strings.TrimSpace(g.S) == "" {
			flush()
			continue
		}
		if word.Len() > 0 && !continuesWord(last, g) {
			flush()
		}
		if word.Len() == 0 {
			first = g
		}
		word.WriteString(g.S)
		last = g
	}
	flush()
	return frags
}

func continuesWord(prev, next pdf.Text) bool {
	size := prev.FontSize
	if size <= 0 {
		size = 1
	}
	if math.Abs(next.Y-prev.Y) > size*wordGapRatio {
		return false
	}
	gap := next.X - (prev.X + prev.W)
	return gap <= size*wordGapRatio && gap >= -size
}

// Extractor turns PDF bytes into reading-order lines.
type Extractor struct {
	// Tolerance is the vertical bucket size for line grouping.
	Tolerance float64
	// UsePdftotext enables the poppler fallback when the library output
	// is unreadable.
	UsePdftotext bool
}

// New returns an extractor with the given line tolerance.
func New(tolerance float64) *Extractor {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Extractor{Tolerance: tolerance, UsePdftotext: true}
}

// Lines extracts and reconstructs the text lines of a statement.
// The structured library is tried first; pdftotext -layout is the fallback.
func (e *Extractor) Lines(ctx context.Context, data []byte) ([]string, error) {
	pages, libErr := ExtractFragments(data)
	if libErr == nil {
		lines := ReconstructLines(pages, e.Tolerance)
		if IsReadableText(lines) {
			return lines, nil
		}
	}

	if e.UsePdftotext {
		pages, popplerErr := extractWithPdftotext(ctx, data)
		if popplerErr == nil {
			lines := ReconstructLines(pages, e.Tolerance)
			if IsReadableText(lines) {
				return lines, nil
			}
		}
	}

	if libErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, libErr)
	}
	return nil, ErrUnreadable
}

// textQuality returns the ratio of basic ASCII readable characters to all
// characters. unicode.IsLetter is too broad: identity-encoded fonts decode
// into accented garbage.
func textQuality(lines []string) float64 {
	total := 0
	readable := 0
	for _, line := range lines {
		for _, r := range line {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
				strings.ContainsRune(".,-/:;()'\"$%&@#!?+=*", r) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

// commonWords appear in virtually every card statement.
var commonWords = []string{
	"account", "balance", "date", "payment", "statement", "total",
	"amount", "credit", "purchase", "transaction", "card", "due",
	"period", "page", "minimum",
}

func containsCommonWords(lines []string) bool {
	combined := strings.ToLower(strings.Join(lines, " "))
	for _, word := range commonWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// IsReadableText requires more than 50 characters, over 60% readable
// ASCII and at least one statement word.
func IsReadableText(lines []string) bool {
	n := 0
	for _, l := range lines {
		n += len(strings.TrimSpace(l))
	}
	if n <= 50 {
		return false
	}
	if textQuality(lines) <= 0.6 {
		return false
	}
	return containsCommonWords(lines)
}

// extractWithPdftotext runs poppler's pdftotext over a temp copy of the
// document. Each output line becomes one fragment so the result flows
// through the same line reconstruction.
func extractWithPdftotext(ctx context.Context, data []byte) ([][]Fragment, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available: %w", err)
	}

	tmp, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	out, err := exec.CommandContext(ctx, "pdftotext", "-layout", tmp.Name(), "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w", err)
	}
	return textToFragments(string(out)), nil
}

// textToFragments splits form-feed separated pages into line fragments,
// placing each line one unit below the previous.
func textToFragments(text string) [][]Fragment {
	var pages [][]Fragment
	for _, pageText := range strings.Split(text, "\f") {
		var frags []Fragment
		for i, line := range strings.Split(pageText, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			frags = append(frags, Fragment{Text: line, Y: float64(-i) * 100})
		}
		if len(frags) > 0 {
			pages = append(pages, frags)
		}
	}
	return pages
}
