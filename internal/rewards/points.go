package rewards

import (
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-points/internal/classify"
	"github.com/insightdelivered/statement-points/internal/models"
)

func magnitude(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Abs()
}

// PointsForCard sums |amount| x multiplier over charges and rounds once.
// Credits never earn.
func PointsForCard(card models.CardKey, txns []models.Transaction) float64 {
	total := decimal.Zero
	for _, t := range txns {
		if !t.IsCharge() {
			continue
		}
		total = total.Add(magnitude(t.Amount).Mul(decimal.NewFromFloat(Multiplier(card, t))))
	}
	return total.Round(0).InexactFloat64()
}

// PointsByCategory returns unrounded points per display category.
func PointsByCategory(card models.CardKey, txns []models.Transaction) map[string]float64 {
	sums := map[string]decimal.Decimal{}
	for _, t := range txns {
		if !t.IsCharge() {
			continue
		}
		cat := displayCategory(t)
		sums[cat] = sums[cat].Add(magnitude(t.Amount).Mul(decimal.NewFromFloat(Multiplier(card, t))))
	}
	return toFloats(sums)
}

// SpendByCategory returns charge volume per display category.
func SpendByCategory(txns []models.Transaction) map[string]float64 {
	sums := map[string]decimal.Decimal{}
	for _, t := range txns {
		if !t.IsCharge() {
			continue
		}
		cat := displayCategory(t)
		sums[cat] = sums[cat].Add(magnitude(t.Amount))
	}
	return toFloats(sums)
}

// TotalSpend is the summed magnitude of all charges.
func TotalSpend(txns []models.Transaction) float64 {
	return totalSpend(txns).InexactFloat64()
}

func totalSpend(txns []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if t.IsCharge() {
			total = total.Add(magnitude(t.Amount))
		}
	}
	return total
}

func displayCategory(t models.Transaction) string {
	if t.Category == "" {
		return classify.Uncategorized
	}
	return t.Category
}

func toFloats(sums map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(sums))
	for k, v := range sums {
		out[k] = v.InexactFloat64()
	}
	return out
}
