package parser

import (
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"25.99", 25.99},
		{"1,234.56", 1234.56},
		{"$1,234.56", 1234.56},
		{"£25.99", 25.99},
		{"-25.99", -25.99},
		{"-$5.75", -5.75},
		{"(25.00)", -25.00},
		{"($1,000.00)", -1000.00},
		{"12.50-", -12.50},
		{"+3.00", 3.00},
		{"£1,234,567.89", 1234567.89},
		{" 25.99 ", 25.99},
		{"1 234.00", 1234.00},
		{"0.00", 0},
		{"", 0},
		{"-", 0},
		{"N/A", 0},
		{"12.3.4", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseAmount(tt.input)
			if got != tt.expected {
				t.Errorf("ParseAmount(%q): got %f, want %f", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
		ok       bool
	}{
		{"01/05/2025", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"1/5/2025", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"1/5/25", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"12/31/24", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), true},
		{"2025-01-05", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"Jan 5, 2025", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"01/05/2025 12:00:00", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"01/05", time.Date(0, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"pending", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok: got %v, want %v", tt.input, ok, tt.ok)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("ParseDate(%q): got %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCardFromFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Chase4471_Activity.CSV", "4471"},
		{"2025-01_statement_1234.pdf", "1234"},
		{"amex12.csv", "12"},
		{"statement.csv", "card"},
		{"", "card"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CardFromFilename(tt.input); got != tt.expected {
				t.Errorf("CardFromFilename(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
