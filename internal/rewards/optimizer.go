package rewards

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-points/internal/classify"
	"github.com/insightdelivered/statement-points/internal/models"
)

// Card sides in an Optimization.
const (
	SideA = "A"
	SideB = "B"
)

// CategoryAssignment routes one spend category to a card.
type CategoryAssignment struct {
	Category   models.SpendCategory `json:"category"`
	Label      string               `json:"label"`
	Spend      float64              `json:"spend"`
	MultA      float64              `json:"multA"`
	MultB      float64              `json:"multB"`
	PtsIfA     float64              `json:"ptsIfA"`
	PtsIfB     float64              `json:"ptsIfB"`
	AssignedTo string               `json:"assignedTo"`
}

// Optimization is the result of routing spend between two cards.
type Optimization struct {
	CardA             models.CardKey       `json:"cardA"`
	CardB             models.CardKey       `json:"cardB"`
	Assignments       []CategoryAssignment `json:"assignments"`
	PtsA              float64              `json:"ptsA"`
	PtsB              float64              `json:"ptsB"`
	SpendOnA          float64              `json:"spendOnA"`
	SpendOnB          float64              `json:"spendOnB"`
	RentPts           float64              `json:"rentPts"`
	BiltSide          string               `json:"biltSide,omitempty"`
	BiltCash          *BiltCashBreakdown   `json:"biltCash,omitempty"`
	CombinedPts       float64              `json:"combinedPts"`
	CombinedAnnualFee float64              `json:"combinedAnnualFee"`
	CombinedCredits   float64              `json:"combinedCredits"`
}

// representative builds a stand-in charge that classifies into cat, for
// displaying a card's headline rate in that category.
func representative(cat models.SpendCategory) models.Transaction {
	t := models.Transaction{Amount: -1}
	switch cat {
	case models.SpendAirline:
		t.Description = "DELTA AIR"
	case models.SpendHotelDirect:
		t.Description = "MARRIOTT"
	case models.SpendAirbnb:
		t.Description = "AIRBNB"
	case models.SpendDining:
		t.Category = classify.FoodDrink
	case models.SpendRideshare:
		t.Description = "LYFT"
	case models.SpendStreaming:
		t.Description = "NETFLIX"
	case models.SpendGroceriesOnline:
		t.Description = "INSTACART"
		t.Category = classify.Groceries
	case models.SpendGroceries:
		t.Category = classify.Groceries
	case models.SpendTravelOther:
		t.Category = classify.Travel
	}
	return t
}

type bucket struct {
	spend, ptsA, ptsB decimal.Decimal
}

// Optimize assigns each spend category to whichever of a and b earns more
// on it, using every transaction's own multiplier. Ties go to a. When
// either card is Bilt and rent is non-nil, Bilt Cash is projected on the
// spend routed to it and the captured rent points count toward that side.
func Optimize(a, b models.CardKey, txns []models.Transaction, rent *RentSettings) (*Optimization, error) {
	defA, err := Card(a)
	if err != nil {
		return nil, err
	}
	defB, err := Card(b)
	if err != nil {
		return nil, err
	}

	buckets := make(map[models.SpendCategory]*bucket, len(models.AllSpendCategories))
	for _, t := range txns {
		if !t.IsCharge() {
			continue
		}
		cat := classify.Classify(t)
		bk, ok := buckets[cat]
		if !ok {
			bk = &bucket{}
			buckets[cat] = bk
		}
		amt := magnitude(t.Amount)
		bk.spend = bk.spend.Add(amt)
		bk.ptsA = bk.ptsA.Add(amt.Mul(decimal.NewFromFloat(Multiplier(a, t))))
		bk.ptsB = bk.ptsB.Add(amt.Mul(decimal.NewFromFloat(Multiplier(b, t))))
	}

	out := &Optimization{CardA: a, CardB: b}
	var ptsA, ptsB, spendA, spendB decimal.Decimal
	for _, cat := range models.AllSpendCategories {
		bk, ok := buckets[cat]
		if !ok || bk.spend.IsZero() {
			continue
		}
		rep := representative(cat)
		asg := CategoryAssignment{
			Category: cat,
			Label:    cat.Label(),
			Spend:    bk.spend.InexactFloat64(),
			MultA:    Multiplier(a, rep),
			MultB:    Multiplier(b, rep),
			PtsIfA:   bk.ptsA.Round(0).InexactFloat64(),
			PtsIfB:   bk.ptsB.Round(0).InexactFloat64(),
		}
		if bk.ptsA.GreaterThanOrEqual(bk.ptsB) {
			asg.AssignedTo = SideA
			ptsA = ptsA.Add(bk.ptsA.Round(0))
			spendA = spendA.Add(bk.spend)
		} else {
			asg.AssignedTo = SideB
			ptsB = ptsB.Add(bk.ptsB.Round(0))
			spendB = spendB.Add(bk.spend)
		}
		out.Assignments = append(out.Assignments, asg)
	}

	out.PtsA = ptsA.InexactFloat64()
	out.PtsB = ptsB.InexactFloat64()
	out.SpendOnA = spendA.InexactFloat64()
	out.SpendOnB = spendB.InexactFloat64()

	if rent != nil {
		switch models.CardBilt {
		case a:
			out.BiltSide = SideA
			out.BiltCash = ptr(BiltCash(out.SpendOnA, *rent))
		case b:
			out.BiltSide = SideB
			out.BiltCash = ptr(BiltCash(out.SpendOnB, *rent))
		}
		if out.BiltCash != nil && rent.converting() {
			out.RentPts = out.BiltCash.RentPtsCaptured
		}
	}

	out.CombinedPts = out.PtsA + out.PtsB + out.RentPts
	out.CombinedAnnualFee = defA.AnnualFee + defB.AnnualFee
	out.CombinedCredits = defA.Credits + defB.Credits
	return out, nil
}

// ParsePair resolves two distinct card keys.
func ParsePair(a, b string) (models.CardKey, models.CardKey, error) {
	ka, err := models.ParseCardKey(a)
	if err != nil {
		return "", "", err
	}
	kb, err := models.ParseCardKey(b)
	if err != nil {
		return "", "", err
	}
	if ka == kb {
		return "", "", fmt.Errorf("cards must differ, got %q twice", ka)
	}
	return ka, kb, nil
}

func ptr[T any](v T) *T {
	return &v
}
