// Package classify assigns display categories and spend categories to
// transactions from their merchant descriptions.
//
// Two independent layers live here:
//
//	LookupMerchantCategory - ordered regex table producing a display category
//	                         (Food & Drink, Groceries, ...) used to backfill rows
//	                         the statement left uncategorized.
//	ClassifyTxn            - finer spend taxonomy used only to pick a card's
//	                         points multiplier.
package classify

import (
	"regexp"

	"github.com/insightdelivered/statement-points/internal/models"
)

// Display categories.
const (
	FoodDrink       = "Food & Drink"
	Groceries       = "Groceries"
	Gas             = "Gas"
	Travel          = "Travel"
	Entertainment   = "Entertainment"
	Shopping        = "Shopping"
	HealthWellness  = "Health & Wellness"
	BillsUtilities  = "Bills & Utilities"
	Home            = "Home"
	Automotive      = "Automotive"
	Education       = "Education"
	Uncategorized   = "Uncategorized"
	vocabularyCount = 11
)

// Vocabulary is the fixed set of display categories a rule or the AI
// categorizer may assign.
var Vocabulary = [vocabularyCount]string{
	FoodDrink,
	Groceries,
	Gas,
	Travel,
	Entertainment,
	Shopping,
	HealthWellness,
	BillsUtilities,
	Home,
	Automotive,
	Education,
}

// IsValidCategory reports whether c is one of the display categories.
func IsValidCategory(c string) bool {
	for _, v := range Vocabulary {
		if v == c {
			return true
		}
	}
	return false
}

// MerchantRule maps a description pattern to a display category.
// Exclude, when set, vetoes a match (RE2 has no negative lookahead).
type MerchantRule struct {
	Pattern  *regexp.Regexp
	Exclude  *regexp.Regexp
	Category string
}

func (r MerchantRule) matches(desc string) bool {
	if !r.Pattern.MatchString(desc) {
		return false
	}
	return r.Exclude == nil || !r.Exclude.MatchString(desc)
}

// merchantRules is evaluated top to bottom; the first match wins, so
// delivery apps must stay above rideshare and Walmart grocery handling
// depends on the department-store exclusion.
var merchantRules = []MerchantRule{
	// Airlines
	{
		Pattern:  regexp.MustCompile(`(?i)\b(DELTA|UNITED\s+AIR|AMERICAN\s+AIR|SOUTHWEST|JETBLUE|JET\s*BLUE|ALASKA\s+AIR|SPIRIT\s+AIR|FRONTIER\s+AIR|HAWAIIAN\s+AIR|ALLEGIANT|SUN\s+COUNTRY|AIR\s+CANADA|BRITISH\s+AIR|LUFTHANSA|EMIRATES|QATAR\s+AIR|SINGAPORE\s+AIR|KOREAN\s+AIR|ANA\s+AIR|JAL\b|CATHAY|VIRGIN\s+ATL|ICELANDAIR|NORWEGIAN\s+AIR|RYANAIR|EASYJET|WIZZ\s+AIR)\b`),
		Category: Travel,
	},
	// Hotels
	{
		Pattern:  regexp.MustCompile(`(?i)\b(MARRIOTT|HILTON|HYATT|IHG\b|HOLIDAY\s+INN|RESIDENCE\s+INN|COURTYARD|WESTIN\b|SHERATON|HAMPTON\s+INN|DOUBLETREE|EMBASSY\s+SUITE|FAIRFIELD|SPRINGHILL|W\s+HOTEL|RITZ.CARLTON|FOUR\s+SEASONS|ST\.?\s*REGIS|BEST\s+WESTERN|WYNDHAM|RADISSON|OMNI\b|INTERCONTINENTAL|CROWNE\s+PLAZA|KIMPTON|ALOFT|LA\s+QUINTA|MOTEL\s+6|SUPER\s+8|DAYS\s+INN|COMFORT\s+INN|QUALITY\s+INN|EXTENDED\s+STAY)\b`),
		Category: Travel,
	},
	// Airbnb / VRBO
	{Pattern: regexp.MustCompile(`(?i)\bAIRBNB\b|\bVRBO\b`), Category: Travel},
	// Food delivery
	{
		Pattern:  regexp.MustCompile(`(?i)UBER\s*\*?\s*EATS|DOORDASH|DD\s*\*?\s*DOORDASH|GRUBHUB|POSTMATES|CAVIAR|SEAMLESS`),
		Category: FoodDrink,
	},
	// Rideshare
	{Pattern: regexp.MustCompile(`(?i)\bLYFT\b|\bUBER\s+TRIP\b|\bUBER\s+\*TRIP`), Category: Travel},
	// Streaming
	{
		Pattern:  regexp.MustCompile(`(?i)\b(NETFLIX|HULU|DISNEY\+?|SPOTIFY|APPLE\.COM/BILL|YOUTUBE\s*(PREMIUM|TV)|HBO|PARAMOUNT\+?|PEACOCK|ESPN\+?|SLING\s*TV|AMAZON\s*(PRIME\s*VIDEO|VIDEO)|TIDAL|AUDIBLE|PANDORA|SIRIUSXM|CRUNCHYROLL|DISCOVERY\+?|MAX\.COM)\b`),
		Category: Entertainment,
	},
	// Online groceries
	{
		Pattern:  regexp.MustCompile(`(?i)\b(INSTACART|AMAZON\s*FRESH|AMAZONFRESH|WHOLE\s+FOODS\s+ONLINE|SHIPT|FRESHDIRECT|THRIVE\s+MARKET|HUNGRYROOT|MISFITS\s+MARKET|IMPERFECT\s+FOODS)\b`),
		Category: Groceries,
	},
	// Gas, major chains
	{
		Pattern:  regexp.MustCompile(`(?i)\b(SHELL\s+(OIL|SERV)|CHEVRON|EXXON|MOBIL\b|BP\b|TEXACO|SUNOCO|VALERO|CITGO|ARCO\b|MARATHON\s*(GAS|PETR)|PHILLIPS\s+66|SPEEDWAY|CIRCLE\s+K|QUIKTRIP|QT\s+\d|WAWA|RACETRAC|MURPHY\s*(USA|OIL)|SHEETZ|LOVES\s+TRAVEL|PILOT\s+(TRAVEL|FLYING)|FLYING\s+J|CUMBERLAND\s+FARMS|KWIK\s+TRIP|CASEY.S\s+GEN|KUM\s*&\s*GO|BUCCEES|BUCEE)\b`),
		Category: Gas,
	},
	// Gas, keywords
	{Pattern: regexp.MustCompile(`(?i)\b(GAS\s+STATION|FUEL\s+(CENTER|STOP)|PETRO\b|PETROLEUM)\b`), Category: Gas},
	// Grocery chains
	{
		Pattern:  regexp.MustCompile(`(?i)\b(KROGER|SAFEWAY|ALBERTSONS|PUBLIX|H[\s-]?E[\s-]?B\b|MEIJER|ALDI\b|TRADER\s+JOE|WHOLE\s+FOODS|FOOD\s+LION|GIANT\s+(FOOD|EAGLE)|STOP\s*&\s*SHOP|SHOPRITE|WEGMANS|SPROUTS|HARRIS\s+TEETER|WINCO|PIGGLY|HY[\s-]?VEE|FRED\s+MEYER|FRYS\s+FOOD|RALPHS|VONS\b|KING\s+SOOPERS|SMITHS\s+(FOOD|MARKET)|MARKET\s+BASKET|FOOD\s*4\s*LESS|SAVE[\s-]?A[\s-]?LOT|FOODMAXX|STATER\s+BROS|LUCKY\s+SUPER|GROCERY\s+OUTLET|NATURAL\s+GROCERS)\b`),
		Category: Groceries,
	},
	// Wholesale clubs
	{
		Pattern:  regexp.MustCompile(`(?i)\b(COSTCO|SAMS\s+CLUB|SAM'?S\s+CLUB|BJS\s+WHOLESALE|BJ'?S\s+WHOL)\b`),
		Category: Groceries,
	},
	// Fast food and restaurant chains
	{
		Pattern:  regexp.MustCompile(`(?i)\b(MCDONALD|BURGER\s+KING|WENDY'?S|TACO\s+BELL|CHICK[\s-]?FIL[\s-]?A|CHIPOTLE|SUBWAY\b|KFC\b|POPEYES|FIVE\s+GUYS|IN[\s-]?N[\s-]?OUT|JACK\s+IN\s+THE|SONIC\s+DRIVE|ARBY'?S|PANDA\s+EXPRESS|PANERA|JIMMY\s+JOHN|JERSEY\s+MIKE|FIREHOUSE\s+SUB|WINGSTOP|RAISING\s+CANE|WHATABURGER|CARL'?S\s+JR|HARDEES|CULVERS|ZAXBY|SHAKE\s+SHACK|SMASHBURGER|NOODLES\s*&\s*CO|CHILIS|APPLEBEES|OLIVE\s+GARDEN|RED\s+LOBSTER|OUTBACK\s+STEAK|TEXAS\s+ROADHOUSE|TGI\s+FRIDAY|BUFFALO\s+WILD|DENNYS|IHOP\b|CRACKER\s+BARREL|CHEESECAKE\s+FACT|P\s*\.?\s*F\s*\.?\s*CHANG|LONGHORN\s+STEAK|WAFFLE\s+HOUSE|STARBUCKS|DUNKIN|PEETS\s+COFFEE|TIM\s+HORTON|DUTCH\s+BROS|CARIBOU\s+COFFEE|DOMINOS|PIZZA\s+HUT|PAPA\s+JOHN|LITTLE\s+CAESARS|BASKIN\s+ROBB|DAIRY\s+QUEEN|COLD\s+STONE|JAMBA|SMOOTHIE\s+KING|TROPICAL\s+SMOOTHIE|KRISPY\s+KREME|SWEETGREEN|CAVA\b|PORTILLOS|BONEFISH|HABIT\s+BURGER|COOKOUT|ZOES\s+KITCHEN|MOD\s+PIZZA|BLAZE\s+PIZZA|PIEOLOGY)\b`),
		Category: FoodDrink,
	},
	// Restaurant keywords
	{
		Pattern:  regexp.MustCompile(`(?i)\b(RESTAURANT|RISTORANTE|RESTAU|CAFE\b|CAFFE|COFFEE\s+(SHOP|HOUSE|BEAN)|DINER\b|BISTRO|BRASSERIE|TRATTORIA|OSTERIA|PIZZERIA|TAQUERIA|CANTINA|STEAKHOUSE|STEAK\s+HOUSE|CHOPHOUSE|GRILL\s*(HOUSE|ROOM|\b)|GRILLE\b|BBQ|BARBEQUE|BARBECUE|SMOKEHOUSE|SEAFOOD|SUSHI|RAMEN|POKE\b|PHO\b|THAI\s+(CUISINE|FOOD|KITCHEN)|WOK\b|NOODLE|DUMPLING|DIM\s+SUM|TERIYAKI|HIBACHI|TEPPAN|KOREAN\s+(BBQ|FOOD|KITCHEN)|CHINESE\s+(FOOD|KITCHEN|RESTAURANT)|INDIAN\s+(CUISINE|FOOD|KITCHEN)|MEXICAN\s+(FOOD|KITCHEN|GRILL|RESTAURANT)|ITALIAN\s+(KITCHEN|BISTRO|RESTAURANT)|BURRITO|TACO\s+(SHOP|STAND)|BURGER\b|WING\s*(S|Z)\b|SANDWICH|DELI\b|DELICATESSEN|BAKERY|BAKE\s+SHOP|PATISSERIE|CREPERIE|GELATO|FROZEN\s+YOGURT|FROYO|BOBA|BUBBLE\s+TEA|JUICE\s+BAR|SMOOTHIE|BREWERY|BREW\s*(PUB|HOUSE)|TAPROOM|TAPHOUSE|TAVERN|PUB\b|BAR\s+AND\s+GRILL|SALOON|LOUNGE|WINE\s+BAR|COCKTAIL|FOOD\s+(TRUCK|HALL|COURT)|KITCHEN\b|EATERY|EATS\b|CATERING|DONUT|DOUGHNUT|BAGEL|BRUNCH|PANCAKE|WAFFLE|WINGZ|PITA|FALAFEL|GYRO|KEBAB|SHAWARMA|CURRY)\b`),
		Category: FoodDrink,
	},
	// Pharmacy
	{
		Pattern:  regexp.MustCompile(`(?i)\b(CVS|WALGREENS|RITE\s+AID|DUANE\s+READE|PHARMACY|PHARMA\b)\b`),
		Category: HealthWellness,
	},
	// Gym / fitness
	{
		Pattern:  regexp.MustCompile(`(?i)\b(PLANET\s+FITNESS|LA\s+FITNESS|EQUINOX|GOLDS\s+GYM|ANYTIME\s+FIT|ORANGETHEORY|CROSSFIT|SOULCYCLE|PELOTON|YMCA|24\s+HOUR\s+FIT|CRUNCH\s+FIT|LIFE\s+TIME\s+FIT|GYM\b|FITNESS\s+(CENTER|CLUB))\b`),
		Category: HealthWellness,
	},
	// Car rental
	{
		Pattern:  regexp.MustCompile(`(?i)\b(HERTZ|ENTERPRISE\s+RENT|AVIS\b|BUDGET\s+RENT|NATIONAL\s+CAR|ALAMO\s+RENT|DOLLAR\s+RENT|THRIFTY|ZIPCAR|TURO\b|SIXT\b)\b`),
		Category: Travel,
	},
	// Travel booking
	{
		Pattern:  regexp.MustCompile(`(?i)\b(EXPEDIA|BOOKING\.COM|HOTELS\.COM|KAYAK|PRICELINE|TRAVELOCITY|TRIPADVISOR|HOPPER|ORBITZ|CHEAPTICKETS)\b`),
		Category: Travel,
	},
	// Home improvement
	{
		Pattern:  regexp.MustCompile(`(?i)\b(HOME\s+DEPOT|LOWES|MENARDS|ACE\s+HARDWARE|TRUE\s+VALUE|HARBOR\s+FREIGHT)\b`),
		Category: Home,
	},
	// Electronics
	{
		Pattern:  regexp.MustCompile(`(?i)\b(BEST\s+BUY|APPLE\s+STORE|MICROSOFT\s+STORE|B\s*&?\s*H\s+PHOTO|MICRO\s+CENTER)\b`),
		Category: Shopping,
	},
	// Department / retail
	{
		Pattern:  regexp.MustCompile(`(?i)\b(TARGET|WALMART|NORDSTROM|MACYS|KOHLS|JCPENNEY|TJ\s*MAXX|TJMAXX|MARSHALLS|ROSS\s+STORES|BURLINGTON\s+COAT|HOMEGOODS|SAKS\s+FIFTH|BLOOMINGDALE|NEIMAN\s+MARCUS|AMAZON\.COM|AMZN)\b`),
		Exclude:  walmartGrocery,
		Category: Shopping,
	},
	// Walmart grocery
	{Pattern: walmartGrocery, Category: Groceries},
	// Automotive
	{
		Pattern:  regexp.MustCompile(`(?i)\b(AUTOZONE|O'?REILLY\s+AUTO|ADVANCE\s+AUTO|JIFFY\s+LUBE|VALVOLINE|MIDAS\b|PEP\s+BOYS|DISCOUNT\s+TIRE|FIRESTONE|GOODYEAR|MAACO|MEINEKE|SAFELITE)\b`),
		Category: Automotive,
	},
	// Utilities / telecom
	{
		Pattern:  regexp.MustCompile(`(?i)\b(AT&T|ATT\b|VERIZON|T-?MOBILE|COMCAST|XFINITY|SPECTRUM|COX\s+COMM|CENTURYLINK|OPTIMUM|ELECTRIC\b|POWER\s+CO|WATER\s+(DEPT|UTIL)|GAS\s+CO|UTILITY|UTILIT)\b`),
		Category: BillsUtilities,
	},
	// Insurance
	{
		Pattern:  regexp.MustCompile(`(?i)\b(GEICO|STATE\s+FARM|PROGRESSIVE|ALLSTATE|LIBERTY\s+MUTUAL|USAA|FARMERS\s+INS|NATIONWIDE\s+INS|INSURANCE)\b`),
		Category: BillsUtilities,
	},
	// Education
	{
		Pattern:  regexp.MustCompile(`(?i)\b(TUITION|UNIVERSITY|COLLEGE|COURSERA|UDEMY|CHEGG|MASTERCLASS|SKILLSHARE|DUOLINGO)\b`),
		Category: Education,
	},
	// Software subscriptions
	{
		Pattern:  regexp.MustCompile(`(?i)\b(ADOBE|MICROSOFT\s+365|GOOGLE\s+(ONE|STORAGE)|DROPBOX|ICLOUD|ZOOM\s*(US|VIDEO)|NOTION|EVERNOTE)\b`),
		Category: Entertainment,
	},
}

var walmartGrocery = regexp.MustCompile(`(?i)WALMART\s*(GROCERY|\.COM/GROCERY)`)

// Rules returns a copy of the ordered rule table.
func Rules() []MerchantRule {
	out := make([]MerchantRule, len(merchantRules))
	copy(out, merchantRules)
	return out
}

// LookupMerchantCategory returns the display category of the first rule
// matching desc.
func LookupMerchantCategory(desc string) (string, bool) {
	if desc == "" {
		return "", false
	}
	for _, r := range merchantRules {
		if r.matches(desc) {
			return r.Category, true
		}
	}
	return "", false
}

// AssignCategory backfills an empty category from the merchant table.
// Bank-supplied categories are never overwritten.
func AssignCategory(txn *models.Transaction) {
	if txn.Category != "" {
		return
	}
	if c, ok := LookupMerchantCategory(txn.Description); ok {
		txn.Category = c
		txn.AutoCategory = true
	}
}

// Stats counts charges by category provenance.
func Stats(txns []models.Transaction) models.CategoryStats {
	var s models.CategoryStats
	for _, t := range txns {
		if !t.IsCharge() {
			continue
		}
		s.Total++
		switch {
		case t.Category == "":
			s.Uncategorized++
		case t.AutoCategory:
			s.AutoAssigned++
		default:
			s.FromStatement++
		}
	}
	return s
}
