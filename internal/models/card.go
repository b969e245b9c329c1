package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCard is returned when a card key is not in the catalog.
var ErrUnknownCard = errors.New("unknown card")

// CardKey identifies a card product in the catalog.
type CardKey string

const (
	CardBilt         CardKey = "bilt"
	CardCSR          CardKey = "csr"
	CardCSP          CardKey = "csp"
	CardAmex         CardKey = "amex"
	CardAmexGold     CardKey = "amexGold"
	CardVentureX     CardKey = "venturex"
	CardDeltaPlat    CardKey = "deltaPlat"
	CardDeltaReserve CardKey = "deltaReserve"
)

// AllCardKeys lists the catalog in display order.
var AllCardKeys = []CardKey{
	CardCSR,
	CardBilt,
	CardCSP,
	CardAmex,
	CardAmexGold,
	CardVentureX,
	CardDeltaPlat,
	CardDeltaReserve,
}

// ParseCardKey resolves a key case-insensitively.
func ParseCardKey(s string) (CardKey, error) {
	s = strings.TrimSpace(s)
	for _, k := range AllCardKeys {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCard, s)
}

// CardDefinition is static reference data for one card product.
type CardDefinition struct {
	Name          string   `json:"name"`
	AnnualFee     float64  `json:"annualFee"`
	Credits       float64  `json:"credits"`
	CreditDetails []string `json:"creditDetails"`
}

// DetectionStatus tells a positive detection apart from an explicit miss.
type DetectionStatus string

const (
	DetectionDetected DetectionStatus = "detected"
	DetectionUnknown  DetectionStatus = "unknown"
)

// Detection is the outcome of scanning a statement for a card product.
type Detection struct {
	Status      DetectionStatus `json:"status"`
	CardKey     CardKey         `json:"cardKey,omitempty"`
	ProductName string          `json:"productName,omitempty"`
}

// SpendCategory is the internal taxonomy used for multiplier lookups.
type SpendCategory string

const (
	SpendAirline         SpendCategory = "airline"
	SpendHotelDirect     SpendCategory = "hotel_direct"
	SpendAirbnb          SpendCategory = "airbnb"
	SpendDining          SpendCategory = "dining"
	SpendRideshare       SpendCategory = "rideshare"
	SpendStreaming       SpendCategory = "streaming"
	SpendGroceriesOnline SpendCategory = "groceries_online"
	SpendGroceries       SpendCategory = "groceries"
	SpendTravelOther     SpendCategory = "travel_other"
	SpendOther           SpendCategory = "other"
)

// AllSpendCategories is the fixed iteration order used by reports and the optimizer.
var AllSpendCategories = []SpendCategory{
	SpendAirline,
	SpendHotelDirect,
	SpendAirbnb,
	SpendDining,
	SpendRideshare,
	SpendStreaming,
	SpendGroceriesOnline,
	SpendGroceries,
	SpendTravelOther,
	SpendOther,
}

var spendLabels = map[SpendCategory]string{
	SpendAirline:         "Airlines",
	SpendHotelDirect:     "Hotels (direct)",
	SpendAirbnb:          "Airbnb / VRBO",
	SpendDining:          "Dining",
	SpendRideshare:       "Rideshare",
	SpendStreaming:       "Streaming",
	SpendGroceriesOnline: "Online Groceries",
	SpendGroceries:       "Groceries",
	SpendTravelOther:     "Travel / Gas",
	SpendOther:           "Everything Else",
}

// Label returns the human-readable name.
func (c SpendCategory) Label() string {
	if l, ok := spendLabels[c]; ok {
		return l
	}
	return string(c)
}
