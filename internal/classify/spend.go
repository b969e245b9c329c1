package classify

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/statement-points/internal/models"
)

var (
	airlineRe       = regexp.MustCompile(`(?i)\b(DELTA\b|UNITED\b|AMERICAN AIR|SOUTHWEST|JETBLUE|JET BLUE|ALASKA AIR|SPIRIT AIR|FRONTIER AIR|HAWAIIAN AIR|ALLEGIANT|SUN COUNTRY)`)
	hotelRe         = regexp.MustCompile(`(?i)\b(MARRIOTT|HILTON|HYATT|IHG\b|HOLIDAY INN|RESIDENCE INN|COURTYARD|WESTIN\b|SHERATON|HAMPTON INN|DOUBLETREE|EMBASSY SUITE|FAIRFIELD|SPRINGHILL|W HOTEL|RITZ.CARLTON|FOUR SEASONS|ST\.?\s*REGIS|BEST WESTERN|WYNDHAM|RADISSON|OMNI\b|INTERCONTINENTAL|CROWNE PLAZA|KIMPTON|ALOFT|CANOPY|CURIO|TAPESTRY|TRIBUTE|LE MERIDIEN|ELEMENT\b|AC HOTEL|MOXY\b|PROTEA)`)
	airbnbRe        = regexp.MustCompile(`(?i)\bAIRBNB\b|\bVRBO\b`)
	foodDeliveryRe  = regexp.MustCompile(`(?i)UBER\s*\*?\s*EATS|DOORDASH|DD \*DOORDASH|GRUBHUB|POSTMATES|CAVIAR`)
	rideshareRe     = regexp.MustCompile(`(?i)\bLYFT\b|\bUBER\b`)
	streamingRe     = regexp.MustCompile(`(?i)NETFLIX|HULU|DISNEY\+|SPOTIFY|APPLE\.COM/BILL|YOUTUBE|HBO|PARAMOUNT|PEACOCK|ESPN|SLING`)
	onlineGroceryRe = regexp.MustCompile(`(?i)INSTACART|AMAZON FRESH|AMAZONFRESH|WHOLE FOODS ONLINE|SHIPT|WALMART\.COM|WALMART GROCERY|FRESHDIRECT|THRIVE MARKET|HUNGRYROOT|MISFITS MARKET|IMPERFECT FOODS`)
)

// ClassifyTxn maps a description and its display category to the spend
// category used for multiplier lookups. First match wins:
//
//  1. airline description
//  2. hotel description, unless Airbnb or already food/grocery by category
//  3. Airbnb/VRBO
//  4. food delivery -> dining
//  5. rideshare (not food delivery)
//  6. streaming
//  7. grocery category + online grocery brand -> groceries_online
//  8. food/dining/drink category -> dining
//  9. grocery category -> groceries
//  10. travel or gas category -> travel_other
//  11. other
func ClassifyTxn(desc, category string) models.SpendCategory {
	c := strings.ToLower(category)
	isFood := strings.Contains(c, "food") || strings.Contains(c, "dining") || strings.Contains(c, "drink")
	isGrocery := strings.Contains(c, "grocery") || strings.Contains(c, "groceries")

	switch {
	case airlineRe.MatchString(desc):
		return models.SpendAirline
	case hotelRe.MatchString(desc) && !airbnbRe.MatchString(desc) && !isFood && !isGrocery:
		return models.SpendHotelDirect
	case airbnbRe.MatchString(desc):
		return models.SpendAirbnb
	case foodDeliveryRe.MatchString(desc):
		return models.SpendDining
	case rideshareRe.MatchString(desc):
		// food delivery already returned above
		return models.SpendRideshare
	case streamingRe.MatchString(desc):
		return models.SpendStreaming
	case isGrocery && onlineGroceryRe.MatchString(desc):
		return models.SpendGroceriesOnline
	case isFood:
		return models.SpendDining
	case isGrocery:
		return models.SpendGroceries
	case strings.Contains(c, "travel") || strings.Contains(c, "gas"):
		return models.SpendTravelOther
	default:
		return models.SpendOther
	}
}

// Classify is ClassifyTxn over a transaction.
func Classify(txn models.Transaction) models.SpendCategory {
	return ClassifyTxn(txn.Description, txn.Category)
}
