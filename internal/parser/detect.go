package parser

import (
	"regexp"

	"github.com/insightdelivered/statement-points/internal/models"
)

// detectScanLimit bounds how much of the statement text is scanned; the
// product name appears in the header.
const detectScanLimit = 3000

type cardSignature struct {
	pattern *regexp.Regexp
	key     models.CardKey
	product string
}

// cardSignatures run most specific first: "Gold" and "Platinum" exist at
// more than one issuer.
var cardSignatures = []cardSignature{
	{regexp.MustCompile(`(?i)sapphire\s*reserve`), models.CardCSR, "Chase Sapphire Reserve"},
	{regexp.MustCompile(`(?i)sapphire\s*preferred`), models.CardCSP, "Chase Sapphire Preferred"},
	{regexp.MustCompile(`(?i)delta\s*sky\s*miles.{0,20}reserve`), models.CardDeltaReserve, "Delta SkyMiles Reserve AMEX"},
	{regexp.MustCompile(`(?i)delta\s*sky\s*miles.{0,20}platinum`), models.CardDeltaPlat, "Delta SkyMiles Platinum AMEX"},
	{regexp.MustCompile(`(?i)(american\s*express|amex).{0,20}gold`), models.CardAmexGold, "AMEX Gold"},
	{regexp.MustCompile(`(?i)platinum\s*card|amex.{0,20}platinum`), models.CardAmex, "AMEX Platinum"},
	{regexp.MustCompile(`(?i)venture\s*x`), models.CardVentureX, "Capital One Venture X"},
	{regexp.MustCompile(`(?i)bilt`), models.CardBilt, "Bilt Palladium"},
}

// DetectCard identifies the card product from statement text and the file
// name. It always returns a result; Status is unknown when nothing matched.
func DetectCard(text, filename string) *models.Detection {
	if len(text) > detectScanLimit {
		text = text[:detectScanLimit]
	}
	haystack := text + "\n" + filename

	for _, sig := range cardSignatures {
		if sig.pattern.MatchString(haystack) {
			return &models.Detection{
				Status:      models.DetectionDetected,
				CardKey:     sig.key,
				ProductName: sig.product,
			}
		}
	}
	return &models.Detection{Status: models.DetectionUnknown}
}
