// Package rewards projects card points, Bilt Cash rent conversion and
// two-card spend routing over normalized transactions.
package rewards

import (
	"fmt"

	"github.com/insightdelivered/statement-points/internal/models"
)

// Cards is the static catalog of supported products.
var Cards = map[models.CardKey]models.CardDefinition{
	models.CardBilt: {
		Name:          "Bilt Palladium",
		AnnualFee:     495,
		Credits:       400,
		CreditDetails: []string{"$400 hotel credit (semiannual, $200 each half)"},
	},
	models.CardCSR: {
		Name:      "Chase Sapphire Reserve",
		AnnualFee: 795,
		Credits:   1999,
		CreditDetails: []string{
			"$300 annual travel credit",
			"$500 The Edit hotel credit ($250 semiannual)",
			"$300 DoorDash credits",
			"$300 StubHub credits",
			"$120 Lyft credit",
			"$120 DashPass membership",
			"$359 WHOOP membership",
		},
	},
	models.CardCSP: {
		Name:          "Chase Sapphire Preferred",
		AnnualFee:     95,
		Credits:       50,
		CreditDetails: []string{"$50 annual hotel credit (Chase Travel)"},
	},
	models.CardAmex: {
		Name:      "AMEX Platinum",
		AnnualFee: 895,
		Credits:   2114,
		CreditDetails: []string{
			"$300 Lululemon credit ($75/quarter)",
			"$400 Resy dining credit ($100/quarter)",
			"$200 Uber Cash ($15/mo + $20 Dec bonus)",
			"$120 Uber One membership",
			"$240 Digital Entertainment ($20/mo)",
			"$155 Walmart+ ($12.95/mo)",
			"$100 Saks Fifth Avenue ($50/half)",
			"$200 Airline Fee credit",
			"$200 Hotel credit (FHR / Hotel Collection)",
			"$199 CLEAR Plus credit",
		},
	},
	models.CardAmexGold: {
		Name:      "AMEX Gold",
		AnnualFee: 325,
		Credits:   240,
		CreditDetails: []string{
			"$120 Uber Cash ($10/mo)",
			"$120 dining credit ($10/mo)",
		},
	},
	models.CardVentureX: {
		Name:      "Capital One Venture X",
		AnnualFee: 395,
		Credits:   400,
		CreditDetails: []string{
			"$300 annual travel credit (Capital One Travel)",
			"$100 anniversary miles bonus (~10,000 miles)",
		},
	},
	models.CardDeltaPlat: {
		Name:      "Delta SkyMiles Platinum AMEX",
		AnnualFee: 350,
		Credits:   390,
		CreditDetails: []string{
			"$150 Delta Stays hotel credit",
			"$120 Resy dining credit ($10/mo)",
			"$120 Rideshare credit ($10/mo)",
			"Companion Certificate (Main Cabin domestic RT)",
			"Global Entry / TSA PreCheck fee credit",
			"First checked bag free on Delta",
		},
	},
	models.CardDeltaReserve: {
		Name:      "Delta SkyMiles Reserve AMEX",
		AnnualFee: 650,
		Credits:   560,
		CreditDetails: []string{
			"$200 Delta Stays hotel credit",
			"$240 Resy dining credit ($20/mo)",
			"$120 Rideshare credit ($10/mo)",
			"Companion Certificate (First/Comfort+/Main Cabin domestic RT)",
			"Delta Sky Club lounge access",
			"Global Entry / TSA PreCheck fee credit",
			"First checked bag free on Delta",
		},
	},
}

// Card looks up a catalog entry.
func Card(key models.CardKey) (models.CardDefinition, error) {
	def, ok := Cards[key]
	if !ok {
		return models.CardDefinition{}, fmt.Errorf("%w: %q", models.ErrUnknownCard, key)
	}
	return def, nil
}
