package parser

import (
	"math"
	"slices"
	"strings"

	"github.com/insightdelivered/statement-points/internal/models"
)

// positiveMajority is the share of positive nonzero amounts above which a
// file is assumed to use the charge-positive convention.
const positiveMajority = 0.6

// splitAmount combines separate debit/credit cells into one signed amount.
// Both cells are read as magnitudes because some banks put negative numbers
// in the credit column.
func splitAmount(debitRaw, creditRaw string) float64 {
	credit := math.Abs(ParseAmount(creditRaw))
	if credit > 0 {
		return credit
	}
	debit := math.Abs(ParseAmount(debitRaw))
	if debit > 0 {
		return -debit
	}
	return 0
}

// NeedsSignFlip reports whether a single-amount-column file looks
// charge-positive: more than 60% of its nonzero amounts are positive.
//
// This is a heuristic. A statement period dominated by refunds and
// payments on a charge-negative bank would be misread.
func NeedsSignFlip(txns []models.Transaction) bool {
	nonZero, positive := 0, 0
	for _, t := range txns {
		if t.Amount == 0 {
			continue
		}
		nonZero++
		if t.Amount > 0 {
			positive++
		}
	}
	return nonZero > 0 && float64(positive) > float64(nonZero)*positiveMajority
}

// NormalizeSigns inverts every amount when the file is charge-positive.
// It must run after all rows of the file are parsed.
func NormalizeSigns(txns []models.Transaction) bool {
	if !NeedsSignFlip(txns) {
		return false
	}
	for i := range txns {
		if txns[i].Amount != 0 {
			txns[i].Amount = -txns[i].Amount
		}
	}
	return true
}

// Bank spellings folded into the two canonical types.
var (
	creditTypes = []string{"payment", "payments", "credit", "credits", "return", "refund", "payment/credit"}
	saleTypes   = []string{"sale", "sales", "purchase", "purchases", "debit"}
)

// DefaultTypes fills empty types from the final sign and folds the common
// bank spellings of payment and purchase into Payment/Credit and Sale.
// Other bank types such as "Fee" or "Adjustment" are kept as printed.
func DefaultTypes(txns []models.Transaction) {
	for i := range txns {
		t := strings.ToLower(strings.TrimSpace(txns[i].Type))
		switch {
		case t == "":
			if txns[i].Amount >= 0 {
				txns[i].Type = models.TypePaymentCredit
			} else {
				txns[i].Type = models.TypeSale
			}
		case slices.Contains(creditTypes, t):
			txns[i].Type = models.TypePaymentCredit
		case slices.Contains(saleTypes, t):
			txns[i].Type = models.TypeSale
		}
	}
}
