package gateway

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Expiry years are accepted up to this many years ahead of the current one.
const expiryYearWindow = 12

const maxReferenceLen = 60

// Matches any character other than space and apostrophe.
var nonSpaceQuoteRE = regexp.MustCompile(`[^ ']`)

// NormalizeExpiryMonth renders a card expiry month as MM, zero-padding
// single-digit input and leaving everything else as given.
func NormalizeExpiryMonth(month string) string {
	t := strings.TrimSpace(month)
	if len(t) == 1 {
		return "0" + t
	}
	return month
}

// NormalizeExpiryYear renders a card expiry year as YY: a 4-digit year
// keeps its last two digits and a single digit is zero-padded. Anything 5
// digits or longer collapses to the degenerate "0", which expiry validation
// then rejects.
func NormalizeExpiryYear(year string) string {
	y := strings.TrimLeft(strings.TrimSpace(year), "0")
	switch {
	case len(y) == 4:
		return y[2:]
	case len(y) >= 5:
		return "0"
	case len(y) == 1:
		return "0" + y
	default:
		return year
	}
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// validateCard checks the payment-instrument fields before any network call.
// now supplies the current date for the expiry window check.
func validateCard(card Card, now time.Time) *Error {
	// Card number must be 12-19 digits with no separators.
	n := card.Number
	if len(n) < 12 || len(n) > 19 || !allDigits(n) {
		return validationErr("card_number", MsgInvalidCardNumber)
	}

	if !allDigits(card.ExpiryMonth) {
		return validationErr("expiry_month", MsgInvalidCardExpiry)
	}
	month, _ := strconv.Atoi(card.ExpiryMonth)
	if month < 1 || month > 12 {
		return validationErr("expiry_month", MsgInvalidCardExpiry)
	}

	// Expiry year is YY, between the current year and 12 years out.
	if len(card.ExpiryYear) != 2 || !allDigits(card.ExpiryYear) {
		return validationErr("expiry_year", MsgInvalidCardExpiry)
	}
	year, _ := strconv.Atoi(card.ExpiryYear)
	currentYY := now.Year() % 100
	if year < currentYY || year > currentYY+expiryYearWindow {
		return validationErr("expiry_year", MsgInvalidCardExpiry)
	}

	if !allDigits(card.CVC) || len(card.CVC) < 3 || len(card.CVC) > 4 {
		return validationErr("cvc", MsgInvalidCardCVC)
	}
	cvc, _ := strconv.Atoi(card.CVC)
	if cvc < 0 || cvc > 9999 {
		return validationErr("cvc", MsgInvalidCardCVC)
	}

	return nil
}

// validateTxn checks the minor-unit amount and the transaction reference.
//
// Reference checking has two modes. The historic rule only rejects a
// reference made up entirely of spaces and apostrophes, which in practice
// accepts almost anything. Strict mode rejects any rune that is not a
// letter, digit, or space. The historic rule is the default; see
// Config.StrictReference.
func validateTxn(minorAmount float64, reference string, strict bool) *Error {
	s := formatAmount(minorAmount)
	if s == "" || s[0] < '0' || s[0] > '9' || minorAmount < 0 {
		return validationErr("amount", MsgInvalidAmount)
	}

	if reference == "" || len(reference) > maxReferenceLen {
		return validationErr("reference", MsgInvalidReference)
	}

	if strict {
		if strings.IndexFunc(reference, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' '
		}) >= 0 {
			return validationErr("reference", MsgInvalidReference)
		}
		return nil
	}

	if !nonSpaceQuoteRE.MatchString(reference) {
		return validationErr("reference", MsgInvalidReference)
	}
	return nil
}
