package rewards

import (
	"github.com/insightdelivered/statement-points/internal/models"
)

// CardSummary is one card's annual value over a transaction set.
type CardSummary struct {
	Card             models.CardKey     `json:"card"`
	Name             string             `json:"name"`
	Points           float64            `json:"points"`
	RentPts          float64            `json:"rentPts"`
	AnnualFee        float64            `json:"annualFee"`
	Credits          float64            `json:"credits"`
	CreditDetails    []string           `json:"creditDetails"`
	NetFee           float64            `json:"netFee"`
	PointsPerFee     float64            `json:"pointsPerFeeDollar"`
	PointsByCategory map[string]float64 `json:"pointsByCategory"`
}

// Compare summarizes each card over txns, in the order given. Bilt adds the
// rent points its Bilt Cash would capture on the full spend.
func Compare(cards []models.CardKey, txns []models.Transaction, rent *RentSettings) ([]CardSummary, error) {
	spend := TotalSpend(txns)
	out := make([]CardSummary, 0, len(cards))
	for _, key := range cards {
		def, err := Card(key)
		if err != nil {
			return nil, err
		}
		s := CardSummary{
			Card:             key,
			Name:             def.Name,
			Points:           PointsForCard(key, txns),
			AnnualFee:        def.AnnualFee,
			Credits:          def.Credits,
			CreditDetails:    def.CreditDetails,
			NetFee:           def.AnnualFee - def.Credits,
			PointsByCategory: PointsByCategory(key, txns),
		}
		if key == models.CardBilt {
			s.RentPts = rentPoints(spend, rent)
		}
		if def.AnnualFee > 0 {
			s.PointsPerFee = (s.Points + s.RentPts) / def.AnnualFee
		}
		out = append(out, s)
	}
	return out, nil
}
