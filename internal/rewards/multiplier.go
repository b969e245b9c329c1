package rewards

import (
	"github.com/insightdelivered/statement-points/internal/classify"
	"github.com/insightdelivered/statement-points/internal/models"
)

// Multiplier returns the points per dollar card earns on txn. Anything not
// listed for a card earns 1x.
func Multiplier(card models.CardKey, txn models.Transaction) float64 {
	return categoryMultiplier(card, classify.Classify(txn))
}

func categoryMultiplier(card models.CardKey, cls models.SpendCategory) float64 {
	switch card {
	case models.CardBilt, models.CardVentureX:
		return 2
	case models.CardCSR:
		switch cls {
		case models.SpendAirline, models.SpendHotelDirect:
			return 4
		case models.SpendDining:
			return 3
		}
	case models.CardAmex:
		if cls == models.SpendAirline {
			return 5
		}
	case models.CardAmexGold:
		switch cls {
		case models.SpendDining, models.SpendGroceries, models.SpendGroceriesOnline:
			return 4
		case models.SpendAirline:
			return 3
		}
	case models.CardCSP:
		switch cls {
		case models.SpendDining, models.SpendStreaming, models.SpendGroceriesOnline:
			return 3
		case models.SpendAirline, models.SpendHotelDirect, models.SpendAirbnb,
			models.SpendRideshare, models.SpendTravelOther:
			return 2
		}
	case models.CardDeltaPlat:
		switch cls {
		case models.SpendAirline, models.SpendHotelDirect:
			return 3
		case models.SpendDining, models.SpendGroceries, models.SpendGroceriesOnline:
			return 2
		}
	case models.CardDeltaReserve:
		if cls == models.SpendAirline {
			return 3
		}
	}
	return 1
}
