package gateway

import (
	"net/url"
	"strconv"
)

// Card holds the payment-instrument fields of a charge attempt.
type Card struct {
	Number      string
	ExpiryMonth string
	ExpiryYear  string
	CVC         string
	Name        string

	AddressLine1 string
	AddressLine2 string
	City         string
	Postcode     string
	State        string
	Country      string
}

// ChargeRequest is the immutable per-attempt value passed to Charge and
// Preauth. Amount is in major currency units; the client converts it before
// sending.
type ChargeRequest struct {
	Amount    float64
	Currency  string
	Reference string
	Email     string
	IPAddress string
	Card      Card
}

func (r ChargeRequest) currency() string {
	if r.Currency == "" {
		return DefaultCurrency
	}
	return r.Currency
}

// formatAmount renders a gateway amount without a trailing fraction for
// whole values, matching the wire format the gateway expects.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// formValues maps the request into the gateway's flat form encoding.
// minorAmount is the already-converted minor-unit amount.
func (r ChargeRequest) formValues(minorAmount float64, capture bool) url.Values {
	captureFlag := "false"
	if capture {
		captureFlag = "true"
	}

	fields := url.Values{}
	fields.Set("amount", formatAmount(minorAmount))
	fields.Set("currency", r.currency())
	fields.Set("description", r.Reference)
	fields.Set("email", r.Email)
	fields.Set("capture", captureFlag)
	fields.Set("ip_address", r.IPAddress)
	fields.Set("card[number]", r.Card.Number)
	fields.Set("card[expiry_month]", r.Card.ExpiryMonth)
	fields.Set("card[expiry_year]", r.Card.ExpiryYear)
	fields.Set("card[cvc]", r.Card.CVC)
	fields.Set("card[name]", r.Card.Name)
	fields.Set("card[address_line1]", r.Card.AddressLine1)
	fields.Set("card[address_line2]", r.Card.AddressLine2)
	fields.Set("card[address_city]", r.Card.City)
	fields.Set("card[address_postcode]", r.Card.Postcode)
	fields.Set("card[address_state]", r.Card.State)
	fields.Set("card[address_country]", r.Card.Country)
	return fields
}

// amountOnlyValues is the body of refund and capture requests.
func amountOnlyValues(minorAmount float64) url.Values {
	fields := url.Values{}
	fields.Set("amount", formatAmount(minorAmount))
	return fields
}
