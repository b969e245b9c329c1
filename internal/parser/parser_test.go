package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/insightdelivered/statement-points/internal/models"
)

func TestDetectCard(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		filename string
		expected models.CardKey
	}{
		{"sapphire reserve", "Chase Sapphire Reserve\nAccount Summary", "statement.pdf", models.CardCSR},
		{"sapphire preferred", "CHASE SAPPHIRE PREFERRED", "x.pdf", models.CardCSP},
		{"delta reserve before amex platinum", "Delta SkyMiles® Reserve American Express Card", "x.pdf", models.CardDeltaReserve},
		{"delta platinum", "Delta SkyMiles Platinum Card", "x.pdf", models.CardDeltaPlat},
		{"amex gold", "American Express Gold Card", "x.pdf", models.CardAmexGold},
		{"amex platinum", "The Platinum Card® from American Express", "x.pdf", models.CardAmex},
		{"venture x", "Capital One Venture X Rewards", "x.pdf", models.CardVentureX},
		{"bilt from filename", "Statement", "Bilt_2025_01.csv", models.CardBilt},
		{"venture x from filename", "", "venturex-jan.csv", models.CardVentureX},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectCard(tt.text, tt.filename)
			if got == nil {
				t.Fatal("expected a detection result, got nil")
			}
			if got.Status != models.DetectionDetected {
				t.Fatalf("status: got %q, want %q", got.Status, models.DetectionDetected)
			}
			if got.CardKey != tt.expected {
				t.Errorf("card: got %q, want %q", got.CardKey, tt.expected)
			}
			if got.ProductName == "" {
				t.Error("expected a product name")
			}
		})
	}
}

func TestDetectCard_Unknown(t *testing.T) {
	got := DetectCard("Discover it Cash Back", "discover.csv")
	if got == nil || got.Status != models.DetectionUnknown {
		t.Fatalf("expected unknown detection, got %+v", got)
	}
	if got.CardKey != "" {
		t.Errorf("unknown detection should carry no card, got %q", got.CardKey)
	}
}

func TestDetectCard_ScanLimit(t *testing.T) {
	text := strings.Repeat("x", detectScanLimit) + "Sapphire Reserve"
	got := DetectCard(text, "statement.pdf")
	if got.Status != models.DetectionUnknown {
		t.Errorf("product name past the scan window should not match, got %q", got.CardKey)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		format   string
		expected string
		wantErr  bool
	}{
		{"csv", models.FormatCSV, false},
		{"PDF", models.FormatPDF, false},
		{"ofx", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			p, err := New(tt.format, Options{})
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Format() != tt.expected {
				t.Errorf("got %q, want %q", p.Format(), tt.expected)
			}
		})
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"statement.pdf", models.FormatPDF},
		{"STATEMENT.PDF", models.FormatPDF},
		{"activity.csv", models.FormatCSV},
		{"export.txt", models.FormatCSV},
		{"noext", models.FormatCSV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFor(tt.name); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNormalizeSigns(t *testing.T) {
	txns := []models.Transaction{{Amount: 10}, {Amount: 20}, {Amount: -5}, {Amount: 0}}
	if !NormalizeSigns(txns) {
		t.Fatal("expected sign flip for majority-positive file")
	}
	want := []float64{-10, -20, 5, 0}
	for i, w := range want {
		if txns[i].Amount != w {
			t.Errorf("row %d: got %v, want %v", i, txns[i].Amount, w)
		}
	}

	if NormalizeSigns(nil) {
		t.Error("empty input should not flip")
	}
}

func TestDefaultTypes(t *testing.T) {
	txns := []models.Transaction{
		{Amount: -5},
		{Amount: 5},
		{Amount: 0},
		{Amount: 100, Type: "Payment"},
		{Amount: -5, Type: "purchase"},
		{Amount: -3, Type: "Fee"},
	}
	DefaultTypes(txns)
	want := []string{
		models.TypeSale,
		models.TypePaymentCredit,
		models.TypePaymentCredit,
		models.TypePaymentCredit,
		models.TypeSale,
		"Fee",
	}
	for i, w := range want {
		if txns[i].Type != w {
			t.Errorf("row %d: got %q, want %q", i, txns[i].Type, w)
		}
	}
}
