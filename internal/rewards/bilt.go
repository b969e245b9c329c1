package rewards

import (
	"github.com/shopspring/decimal"
)

var (
	biltCashRate   = decimal.RequireFromString("0.04")
	rentPointsRate = decimal.RequireFromString("0.03")
	carryoverLimit = decimal.NewFromInt(100)
	monthsPerYear  = decimal.NewFromInt(12)
)

// RentSettings describes how the cardholder uses Bilt Cash. Amounts are
// monthly dollars.
type RentSettings struct {
	MonthlyRent           float64 `json:"monthlyRent"`
	MonthlyEcosystemSpend float64 `json:"ecosystemSpend"`
	Enabled               bool    `json:"biltCash"`
}

func (r RentSettings) converting() bool {
	return r.Enabled && r.MonthlyRent > 0
}

// BiltCashBreakdown is the annual Bilt Cash projection. Shortfall and
// CarryoverExcess are advisory.
type BiltCashBreakdown struct {
	Earned             float64 `json:"biltCashEarned"`
	EcosystemAnnual    float64 `json:"ecosystemSpendAnnual"`
	EcosystemUsed      float64 `json:"ecosystemUsed"`
	Available          float64 `json:"biltCashAvailable"`
	Needed             float64 `json:"biltCashNeeded"`
	Spent              float64 `json:"biltCashSpent"`
	RentPtsCaptured    float64 `json:"rentPtsCaptured"`
	Remainder          float64 `json:"biltCashRemainder"`
	Shortfall          float64 `json:"shortfall"`
	CarryoverExcess    float64 `json:"carryoverExcess"`
	MonthlySpendNeeded float64 `json:"monthlySpendNeeded"`
	RentAnnual         float64 `json:"rentAnnual"`
}

// BiltCash projects a year of Bilt Cash for totalSpend of annual card
// spend. Cash accrues at 4%, ecosystem redemptions are taken first, and
// what is left buys rent points at 3 cents per rent dollar up to the rent.
func BiltCash(totalSpend float64, rent RentSettings) BiltCashBreakdown {
	spend := decimal.NewFromFloat(totalSpend)
	rentMonthly := decimal.NewFromFloat(rent.MonthlyRent)
	rentAnnual := rentMonthly.Mul(monthsPerYear)

	earned := spend.Mul(biltCashRate)
	ecoAnnual := decimal.NewFromFloat(rent.MonthlyEcosystemSpend).Mul(monthsPerYear)
	ecoUsed := decimal.Min(ecoAnnual, earned)
	available := earned.Sub(ecoUsed)
	needed := rentAnnual.Mul(rentPointsRate)

	spent := decimal.Zero
	shortfall := decimal.Zero
	if rent.converting() {
		spent = decimal.Min(available, needed)
		shortfall = decimal.Max(decimal.Zero, needed.Sub(earned.Sub(ecoAnnual)))
	}
	remainder := available.Sub(spent)

	return BiltCashBreakdown{
		Earned:             earned.InexactFloat64(),
		EcosystemAnnual:    ecoAnnual.InexactFloat64(),
		EcosystemUsed:      ecoUsed.InexactFloat64(),
		Available:          available.InexactFloat64(),
		Needed:             needed.InexactFloat64(),
		Spent:              spent.InexactFloat64(),
		RentPtsCaptured:    spent.Div(rentPointsRate).Round(0).InexactFloat64(),
		Remainder:          remainder.InexactFloat64(),
		Shortfall:          shortfall.InexactFloat64(),
		CarryoverExcess:    decimal.Max(decimal.Zero, remainder.Sub(carryoverLimit)).InexactFloat64(),
		MonthlySpendNeeded: rentMonthly.Mul(rentPointsRate).Div(biltCashRate).InexactFloat64(),
		RentAnnual:         rentAnnual.InexactFloat64(),
	}
}

// rentPoints is the rent points captured for spend, or 0 when conversion is off.
func rentPoints(spend float64, rent *RentSettings) float64 {
	if rent == nil || !rent.converting() {
		return 0
	}
	return BiltCash(spend, *rent).RentPtsCaptured
}
