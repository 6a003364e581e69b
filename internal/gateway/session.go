package gateway

import (
	"context"
	"strings"
)

var quoteStripper = strings.NewReplacer("'", "", `"`, "")

// Session holds mutable per-attempt transaction state on top of a Client.
// The usage pattern is Reset, field setters, then exactly one operation
// call; a Session must not be shared across concurrent attempts. Callers
// that can pass a full ChargeRequest should prefer the stateless Client
// methods instead.
type Session struct {
	client *Client

	txnType   TxnType
	amount    float64
	currency  string
	reference string
	ipAddress string

	ccNumber    string
	cvc         string
	expiryMonth string
	expiryYear  string

	cardName string
	address1 string
	address2 string
	city     string
	postcode string
	state    string
	country  string
	email    string

	bankTxnID  string
	errMessage string
	raw        map[string]any
}

// NewSession returns a fresh Session bound to c.
func (c *Client) NewSession() *Session {
	return &Session{client: c, currency: DefaultCurrency}
}

// Valid reports whether the underlying client construction succeeded.
func (s *Session) Valid() bool { return s.client.Valid() }

// Reset clears the outcome of the previous attempt: error string, raw
// response, bank transaction id, and transaction type. Called at the start
// of every operation so stale results never leak into the next attempt.
func (s *Session) Reset() {
	s.errMessage = ""
	s.raw = nil
	s.bankTxnID = ""
	s.txnType = TxnCharge
}

func (s *Session) TxnType() TxnType { return s.txnType }
func (s *Session) SetTxnType(t TxnType) { s.txnType = t }

func (s *Session) Amount() float64 { return s.amount }

// SetAmount converts a major-unit decimal into the stored minor-unit value.
// The currency must be set first; zero-decimal currencies keep the caller's
// value unmodified.
func (s *Session) SetAmount(amount float64) {
	s.amount = toMinorUnits(amount, s.currency)
}

func (s *Session) Currency() string { return s.currency }
func (s *Session) SetCurrency(cur string) { s.currency = cur }
func (s *Session) Reference() string { return s.reference }
func (s *Session) SetReference(ref string) { s.reference = ref }
func (s *Session) IPAddress() string { return s.ipAddress }
func (s *Session) SetIPAddress(ip string) { s.ipAddress = ip }

func (s *Session) CardNumber() string { return s.ccNumber }
func (s *Session) SetCardNumber(n string) { s.ccNumber = n }
func (s *Session) CVC() string { return s.cvc }
func (s *Session) SetCVC(cvc string) { s.cvc = cvc }
func (s *Session) ExpiryMonth() string { return s.expiryMonth }
func (s *Session) ExpiryYear() string { return s.expiryYear }
func (s *Session) CardName() string { return s.cardName }
func (s *Session) SetCardName(name string) { s.cardName = name }

// SetExpiryMonth stores the month as MM, zero-padding single-digit input.
func (s *Session) SetExpiryMonth(month string) {
	s.expiryMonth = NormalizeExpiryMonth(month)
}

// SetExpiryYear normalizes the year to YY; see NormalizeExpiryYear.
func (s *Session) SetExpiryYear(year string) {
	s.expiryYear = NormalizeExpiryYear(year)
}

// ClearCardNumber returns the stored number once and overwrites it with the
// sentinel, so the value is never retained past a single use.
func (s *Session) ClearCardNumber() string {
	n := s.ccNumber
	s.ccNumber = "0"
	return n
}

// ClearCVC is the read-then-clear accessor for the verification code.
func (s *Session) ClearCVC() string {
	c := s.cvc
	s.cvc = "0"
	return c
}

// SetAddress1 strips quote characters before storing; they have no place in
// a street address and would otherwise flow into the outbound request.
func (s *Session) SetAddress1(a string) { s.address1 = quoteStripper.Replace(a) }
func (s *Session) SetAddress2(a string) { s.address2 = quoteStripper.Replace(a) }

func (s *Session) Address1() string { return s.address1 }
func (s *Session) Address2() string { return s.address2 }
func (s *Session) City() string { return s.city }
func (s *Session) SetCity(city string) { s.city = city }
func (s *Session) Postcode() string { return s.postcode }
func (s *Session) SetPostcode(pc string) { s.postcode = pc }
func (s *Session) State() string { return s.state }
func (s *Session) SetState(st string) { s.state = st }
func (s *Session) Country() string { return s.country }
func (s *Session) SetCountry(ctry string) { s.country = ctry }
func (s *Session) Email() string { return s.email }
func (s *Session) SetEmail(email string) { s.email = email }

// BankTransactionID returns the gateway token of the last approved attempt.
func (s *Session) BankTransactionID() string { return s.bankTxnID }

// ErrorString returns the failure message of the last attempt, if any.
func (s *Session) ErrorString() string { return s.errMessage }

// RawResponse returns the decoded gateway response of the last attempt.
func (s *Session) RawResponse() map[string]any { return s.raw }

// Process runs a charge or preauthorization from the currently-set fields.
// Capture is immediate unless the transaction type was set to TxnPreauth.
func (s *Session) Process(ctx context.Context) Result {
	capture := s.txnType == TxnCharge
	req := ChargeRequest{
		Currency:  s.currency,
		Reference: s.reference,
		Email:     s.email,
		IPAddress: s.ipAddress,
		Card: Card{
			Number:       s.ccNumber,
			ExpiryMonth:  s.expiryMonth,
			ExpiryYear:   s.expiryYear,
			CVC:          s.cvc,
			Name:         s.cardName,
			AddressLine1: s.address1,
			AddressLine2: s.address2,
			City:         s.city,
			Postcode:     s.postcode,
			State:        s.state,
			Country:      s.country,
		},
	}
	return s.record(s.client.authorize(ctx, req, s.amount, capture))
}

// ProcessCharge resets the session, loads req into it, and runs an
// immediate-capture charge.
func (s *Session) ProcessCharge(ctx context.Context, req ChargeRequest) Result {
	s.Reset()
	s.load(req)
	return s.Process(ctx)
}

// ProcessPreauth is ProcessCharge without capture; the returned transaction
// id is held for a later capture.
func (s *Session) ProcessPreauth(ctx context.Context, req ChargeRequest) Result {
	s.Reset()
	if s.txnType == TxnCharge {
		s.txnType = TxnPreauth
	}
	s.load(req)
	return s.Process(ctx)
}

// ProcessRefund refunds a prior charge. A missing transaction id fails
// before any network call.
func (s *Session) ProcessRefund(ctx context.Context, amount float64, transactionID, currency string) Result {
	s.Reset()
	s.txnType = TxnRefund
	if currency != "" {
		s.currency = currency
	}
	s.SetAmount(amount)
	return s.record(s.client.refundMinor(ctx, transactionID, s.amount))
}

// ProcessCapture finalizes a prior preauthorization. A missing transaction
// id fails before any network call.
func (s *Session) ProcessCapture(ctx context.Context, amount float64, transactionID, currency string) Result {
	s.Reset()
	s.txnType = TxnCapture
	if currency != "" {
		s.currency = currency
	}
	s.SetAmount(amount)
	return s.record(s.client.captureMinor(ctx, transactionID, s.amount))
}

func (s *Session) load(req ChargeRequest) {
	if req.Currency != "" {
		s.currency = req.Currency
	}
	s.SetAmount(req.Amount)
	s.SetEmail(req.Email)
	s.SetReference(req.Reference)
	s.SetIPAddress(req.IPAddress)
	s.SetCardNumber(req.Card.Number)
	s.SetCVC(req.Card.CVC)
	s.SetExpiryYear(req.Card.ExpiryYear)
	s.SetExpiryMonth(req.Card.ExpiryMonth)
	s.SetCardName(req.Card.Name)
	s.SetAddress1(req.Card.AddressLine1)
	s.SetAddress2(req.Card.AddressLine2)
	s.SetCity(req.Card.City)
	s.SetPostcode(req.Card.Postcode)
	s.SetState(req.Card.State)
	s.SetCountry(req.Card.Country)
}

func (s *Session) record(res Result) Result {
	s.raw = res.Raw
	if res.Success {
		s.bankTxnID = res.TransactionID
	} else if res.Err != nil {
		s.errMessage = res.Err.Message
	}
	return res
}
