// Package categorize fills in display categories the merchant table could
// not resolve by asking a language model, in fixed-size batches.
//
// The model sits behind the Categorizer interface so callers and tests can
// swap vendors or use a plain function.
package categorize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-points/internal/classify"
	"github.com/insightdelivered/statement-points/internal/models"
)

// DefaultBatchSize is the number of descriptions sent per request.
const DefaultBatchSize = 100

// SystemPrompt instructs the model to answer with a bare JSON array.
const SystemPrompt = `You are a financial transaction categorizer. Given a list of merchant descriptions from credit card statements, return a JSON array of category strings. Use EXACTLY one of these categories for each:

- "Food & Drink" (restaurants, cafes, bars, fast food, coffee shops, food delivery)
- "Groceries" (supermarkets, grocery stores, wholesale clubs like Costco)
- "Gas" (gas stations, fuel)
- "Travel" (airlines, hotels, car rentals, rideshare, trains, tolls, parking, travel agencies)
- "Entertainment" (streaming, movies, concerts, events, subscriptions, games)
- "Shopping" (retail, clothing, electronics, department stores, online shopping)
- "Health & Wellness" (pharmacies, gyms, doctors, dentists, medical)
- "Bills & Utilities" (phone, internet, electricity, water, insurance)
- "Home" (home improvement, furniture, home services)
- "Automotive" (auto repair, auto parts, car wash)
- "Education" (tuition, books, online courses)
- null (if truly unrecognizable or ambiguous)

Return ONLY a JSON array of strings/nulls, nothing else. The array must have the same length as the input.`

// Categorizer maps a batch of merchant descriptions to categories. The
// result is parallel to the input; nil means no category.
type Categorizer interface {
	Categorize(ctx context.Context, descriptions []string) ([]*string, error)
}

// Func adapts a plain function to Categorizer.
type Func func(ctx context.Context, descriptions []string) ([]*string, error)

func (f Func) Categorize(ctx context.Context, descriptions []string) ([]*string, error) {
	return f(ctx, descriptions)
}

// Batcher splits descriptions into sequential batches.
type Batcher struct {
	Categorizer Categorizer
	Size        int
	Log         zerolog.Logger
}

// NewBatcher returns a Batcher with the default batch size.
func NewBatcher(c Categorizer, log zerolog.Logger) *Batcher {
	return &Batcher{Categorizer: c, Size: DefaultBatchSize, Log: log}
}

// Run categorizes every description. A batch whose answer has the wrong
// shape becomes all nil; values outside the vocabulary become nil. Any
// categorizer error aborts the run and nothing is returned.
func (b *Batcher) Run(ctx context.Context, descriptions []string) ([]*string, error) {
	if b.Categorizer == nil {
		return nil, &Error{Kind: ErrNotConfigured}
	}
	size := b.Size
	if size <= 0 {
		size = DefaultBatchSize
	}

	out := make([]*string, 0, len(descriptions))
	for start := 0; start < len(descriptions); start += size {
		end := min(start+size, len(descriptions))
		batch := descriptions[start:end]

		got, err := b.Categorizer.Categorize(ctx, batch)
		if err != nil {
			b.Log.Error().Err(err).Int("batch", start/size).Msg("categorization failed")
			return nil, err
		}
		if len(got) != len(batch) {
			b.Log.Warn().
				Int("batch", start/size).
				Int("want", len(batch)).
				Int("got", len(got)).
				Msg("categorizer returned wrong length, dropping batch")
			got = make([]*string, len(batch))
		}
		for _, c := range got {
			out = append(out, validCategory(c))
		}
		b.Log.Debug().Int("batch", start/size).Int("size", len(batch)).Msg("batch categorized")
	}
	return out, nil
}

func validCategory(c *string) *string {
	if c == nil || !classify.IsValidCategory(*c) {
		return nil
	}
	v := *c
	return &v
}

// Apply categorizes the charges that still have no category. On success
// it returns a new slice with the answers applied (AutoCategory set) and
// the number of rows changed. On error the input is returned untouched.
func Apply(ctx context.Context, b *Batcher, txns []models.Transaction) ([]models.Transaction, int, error) {
	var (
		idx   []int
		descs []string
	)
	for i, t := range txns {
		if t.IsCharge() && t.Category == "" {
			idx = append(idx, i)
			descs = append(descs, t.Description)
		}
	}
	if len(idx) == 0 {
		return txns, 0, nil
	}

	cats, err := b.Run(ctx, descs)
	if err != nil {
		return txns, 0, err
	}

	out := make([]models.Transaction, len(txns))
	copy(out, txns)
	applied := 0
	for k, i := range idx {
		if cats[k] == nil {
			continue
		}
		out[i].Category = *cats[k]
		out[i].AutoCategory = true
		applied++
	}
	return out, applied, nil
}

// ParseCategories decodes a model answer for a batch of n descriptions.
// Anything other than a JSON array of length n yields n nils.
func ParseCategories(raw string, n int) []*string {
	out := make([]*string, n)

	var values []any
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &values); err != nil {
		return out
	}
	if len(values) != n {
		return out
	}
	for i, v := range values {
		if s, ok := v.(string); ok {
			out[i] = validCategory(&s)
		}
	}
	return out
}

// cleanModelJSON strips Markdown fences models add despite instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		idx := strings.Index(s, "\n")
		if idx == -1 {
			return s
		}
		s = strings.TrimSpace(s[idx+1:])
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// userMessage is the JSON array of descriptions sent as the user turn.
func userMessage(descriptions []string) (string, error) {
	data, err := json.Marshal(descriptions)
	if err != nil {
		return "", fmt.Errorf("encoding descriptions: %w", err)
	}
	return string(data), nil
}

var (
	// ErrNotConfigured means no API key or provider is set up.
	ErrNotConfigured = errors.New("categorizer not configured")
	// ErrService means the provider answered with a non-OK status.
	ErrService = errors.New("categorization service error")
	// ErrNetwork means the provider could not be reached.
	ErrNetwork = errors.New("categorization network error")
)

// Error carries the failure kind and, for service errors, the HTTP status.
type Error struct {
	Kind   error
	Status int
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Status != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
