package categorize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-points/internal/classify"
	"github.com/insightdelivered/statement-points/internal/logger"
	"github.com/insightdelivered/statement-points/internal/models"
)

func strp(s string) *string { return &s }

func constant(category string) Func {
	return func(_ context.Context, descs []string) ([]*string, error) {
		out := make([]*string, len(descs))
		for i := range out {
			out[i] = strp(category)
		}
		return out, nil
	}
}

func TestBatcher_SplitsIntoFixedBatches(t *testing.T) {
	var sizes []int
	fake := Func(func(ctx context.Context, descs []string) ([]*string, error) {
		sizes = append(sizes, len(descs))
		return constant(classify.Shopping)(ctx, descs)
	})

	descs := make([]string, 250)
	for i := range descs {
		descs[i] = fmt.Sprintf("MERCHANT %d", i)
	}

	b := NewBatcher(fake, logger.NewWithWriter(&bytes.Buffer{}))
	got, err := b.Run(context.Background(), descs)
	require.NoError(t, err)
	assert.Equal(t, []int{100, 100, 50}, sizes)
	require.Len(t, got, 250)
	assert.Equal(t, classify.Shopping, *got[249])
}

func TestBatcher_MalformedBatchBecomesNil(t *testing.T) {
	calls := 0
	fake := Func(func(_ context.Context, descs []string) ([]*string, error) {
		calls++
		if calls == 1 {
			return []*string{strp(classify.Travel)}, nil // wrong length
		}
		return []*string{strp(classify.Gas), strp("Crypto"), nil}, nil
	})

	b := &Batcher{Categorizer: fake, Size: 3, Log: logger.NewWithWriter(&bytes.Buffer{})}
	got, err := b.Run(context.Background(), []string{"A", "B", "C", "D", "E", "F"})
	require.NoError(t, err)
	require.Len(t, got, 6)
	assert.Nil(t, got[0])
	assert.Nil(t, got[1])
	assert.Nil(t, got[2])
	require.NotNil(t, got[3])
	assert.Equal(t, classify.Gas, *got[3])
	assert.Nil(t, got[4], "value outside the vocabulary")
	assert.Nil(t, got[5])
}

func TestBatcher_ErrorAbortsRun(t *testing.T) {
	calls := 0
	fake := Func(func(ctx context.Context, descs []string) ([]*string, error) {
		calls++
		if calls == 2 {
			return nil, &Error{Kind: ErrService, Status: 500}
		}
		return constant(classify.Home)(ctx, descs)
	})

	b := &Batcher{Categorizer: fake, Size: 1, Log: logger.NewWithWriter(&bytes.Buffer{})}
	got, err := b.Run(context.Background(), []string{"A", "B", "C"})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrService)
	assert.Equal(t, 2, calls)
}

func TestBatcher_NotConfigured(t *testing.T) {
	b := &Batcher{}
	_, err := b.Run(context.Background(), []string{"A"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestApply(t *testing.T) {
	txns := []models.Transaction{
		{Description: "XYZZY CORP", Amount: -10},
		{Description: "STARBUCKS", Amount: -5, Category: classify.FoodDrink},
		{Description: "REFUND XYZZY", Amount: 10},
		{Description: "PLUGH LLC", Amount: -20},
	}

	var sent []string
	fake := Func(func(_ context.Context, descs []string) ([]*string, error) {
		sent = append(sent, descs...)
		return []*string{strp(classify.Shopping), nil}, nil
	})

	out, applied, err := Apply(context.Background(), NewBatcher(fake, logger.NewWithWriter(&bytes.Buffer{})), txns)
	require.NoError(t, err)
	assert.Equal(t, []string{"XYZZY CORP", "PLUGH LLC"}, sent)
	assert.Equal(t, 1, applied)

	assert.Equal(t, classify.Shopping, out[0].Category)
	assert.True(t, out[0].AutoCategory)
	assert.Equal(t, classify.FoodDrink, out[1].Category)
	assert.False(t, out[1].AutoCategory)
	assert.Empty(t, out[2].Category)
	assert.Empty(t, out[3].Category)

	// Input slice is not modified.
	assert.Empty(t, txns[0].Category)
}

func TestApply_ErrorLeavesInputUntouched(t *testing.T) {
	txns := []models.Transaction{{Description: "XYZZY", Amount: -10}}
	fake := Func(func(context.Context, []string) ([]*string, error) {
		return nil, &Error{Kind: ErrNetwork, Err: errors.New("dial tcp: connection refused")}
	})

	out, applied, err := Apply(context.Background(), NewBatcher(fake, logger.NewWithWriter(&bytes.Buffer{})), txns)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, 0, applied)
	assert.Equal(t, txns, out)
	assert.Empty(t, out[0].Category)
}

func TestApply_NothingToDo(t *testing.T) {
	called := false
	fake := Func(func(context.Context, []string) ([]*string, error) {
		called = true
		return nil, nil
	})
	txns := []models.Transaction{{Description: "PAYMENT", Amount: 50}}
	out, applied, err := Apply(context.Background(), NewBatcher(fake, logger.NewWithWriter(&bytes.Buffer{})), txns)
	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, 0, applied)
	assert.Equal(t, txns, out)
}

func TestParseCategories(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		n        int
		expected []any
	}{
		{"valid", `["Food & Drink", null, "Travel"]`, 3, []any{classify.FoodDrink, nil, classify.Travel}},
		{"fenced", "```json\n[\"Gas\"]\n```", 1, []any{classify.Gas}},
		{"unknown value", `["Crypto", 5]`, 2, []any{nil, nil}},
		{"wrong length", `["Gas"]`, 2, []any{nil, nil}},
		{"not an array", `{"categories": ["Gas"]}`, 1, []any{nil}},
		{"not json", `Sure! Here you go`, 1, []any{nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCategories(tt.raw, tt.n)
			require.Len(t, got, tt.n)
			for i, want := range tt.expected {
				if want == nil {
					assert.Nil(t, got[i], "index %d", i)
					continue
				}
				require.NotNil(t, got[i], "index %d", i)
				assert.Equal(t, want, *got[i])
			}
		})
	}
}

func TestError(t *testing.T) {
	cause := errors.New("boom")
	err := error(&Error{Kind: ErrService, Status: 502, Err: cause})

	assert.ErrorIs(t, err, ErrService)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNetwork)
	assert.Equal(t, "categorization service error: status 502: boom", err.Error())

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 502, ce.Status)
}
