package gateway

import "math"

// DefaultCurrency is used when a session or request does not set one.
const DefaultCurrency = "USD"

// Currencies with no minor-unit subdivision. Amounts in these currencies are
// sent to the gateway as given by the caller, not multiplied by 100.
var zeroDecimalCurrencies = map[string]struct{}{
	"BIF": {}, "CLP": {}, "DJF": {}, "GNF": {}, "JPY": {}, "KMF": {},
	"KRW": {}, "MGA": {}, "PYG": {}, "RWF": {}, "UGX": {}, "VND": {},
	"VUV": {}, "XAF": {}, "XOF": {}, "XPF": {},
}

// IsZeroDecimal reports whether code names a currency without minor units.
func IsZeroDecimal(code string) bool {
	_, ok := zeroDecimalCurrencies[code]
	return ok
}

// toMinorUnits converts a major-unit decimal amount into the integer amount
// the gateway expects. Zero-decimal currencies pass through unmodified.
func toMinorUnits(amount float64, currency string) float64 {
	if IsZeroDecimal(currency) {
		return amount
	}
	return math.Round(amount * 100)
}
