package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, sender *stubSender) *Session {
	t.Helper()
	return newTestClient(t, sender).NewSession()
}

func TestSessionSetAmount(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		amount   float64
		want     float64
	}{
		{name: "USD converts to cents", currency: "USD", amount: 10.99, want: 1099},
		{name: "rounds half up", currency: "USD", amount: 10.555, want: 1056},
		{name: "whole dollars", currency: "USD", amount: 25, want: 2500},
		{name: "JPY kept unmodified", currency: "JPY", amount: 1000, want: 1000},
		{name: "KRW kept unmodified", currency: "KRW", amount: 50000, want: 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, &stubSender{})
			s.SetCurrency(tt.currency)
			s.SetAmount(tt.amount)
			assert.Equal(t, tt.want, s.Amount())
		})
	}
}

func TestSessionSetExpiryMonth(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"7", "07"},
		{"12", "12"},
		{"01", "01"},
		{" 7 ", "07"},
		{"0", "00"},
	}

	for _, tt := range tests {
		s := newTestSession(t, &stubSender{})
		s.SetExpiryMonth(tt.in)
		assert.Equal(t, tt.want, s.ExpiryMonth(), "month %q", tt.in)
	}
}

func TestSessionSetExpiryYear(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "four digit year truncates", in: "2029", want: "29"},
		{name: "single digit zero padded", in: "9", want: "09"},
		{name: "two digits kept", in: "29", want: "29"},
		// Longstanding boundary behavior: an over-long year collapses to
		// "0", which expiry validation then rejects.
		{name: "five digits degenerate", in: "20290", want: "0"},
		{name: "six digits degenerate", in: "123456", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, &stubSender{})
			s.SetExpiryYear(tt.in)
			assert.Equal(t, tt.want, s.ExpiryYear())
		})
	}
}

func TestSessionClearAccessors(t *testing.T) {
	s := newTestSession(t, &stubSender{})
	s.SetCardNumber("4111111111111111")
	s.SetCVC("123")

	assert.Equal(t, "4111111111111111", s.ClearCardNumber())
	assert.Equal(t, "0", s.CardNumber(), "number must not be retained past one read")

	assert.Equal(t, "123", s.ClearCVC())
	assert.Equal(t, "0", s.CVC())
}

func TestSessionAddressQuoteStripping(t *testing.T) {
	s := newTestSession(t, &stubSender{})
	s.SetAddress1(`12 O'Connell "St"`)
	s.SetAddress2(`Unit '7'`)
	assert.Equal(t, "12 OConnell St", s.Address1())
	assert.Equal(t, "Unit 7", s.Address2())
}

func TestSessionResetClearsPriorAttempt(t *testing.T) {
	sender := &stubSender{}
	s := newTestSession(t, sender)

	req := validRequest()
	req.Card.Number = "123" // fails validation
	res := s.ProcessCharge(context.Background(), req)

	require.False(t, res.Success)
	assert.Equal(t, MsgInvalidCardNumber, s.ErrorString())
	assert.False(t, sender.called)

	s.SetTxnType(TxnPreauth)
	s.Reset()

	assert.Empty(t, s.ErrorString())
	assert.Empty(t, s.BankTransactionID())
	assert.Nil(t, s.RawResponse())
	assert.Equal(t, TxnCharge, s.TxnType())
}

func TestSessionProcessCharge(t *testing.T) {
	sender := &stubSender{resp: map[string]any{
		"response": map[string]any{"success": float64(1), "token": "tok_abc"},
	}}
	s := newTestSession(t, sender)

	res := s.ProcessCharge(context.Background(), validRequest())

	require.True(t, res.Success)
	assert.Equal(t, "tok_abc", res.TransactionID)
	assert.Equal(t, "tok_abc", s.BankTransactionID())
	assert.Equal(t, res.Raw, s.RawResponse())
	assert.Equal(t, "true", sender.fields.Get("capture"))
	assert.Equal(t, "1099", sender.fields.Get("amount"))
}

func TestSessionProcessPreauth(t *testing.T) {
	sender := &stubSender{resp: map[string]any{
		"response": map[string]any{"success": float64(1), "token": "tok_hold"},
	}}
	s := newTestSession(t, sender)

	res := s.ProcessPreauth(context.Background(), validRequest())

	require.True(t, res.Success)
	assert.Equal(t, TxnPreauth, s.TxnType())
	assert.Equal(t, "false", sender.fields.Get("capture"))
}

func TestSessionRefundMissingTransactionID(t *testing.T) {
	sender := &stubSender{}
	s := newTestSession(t, sender)

	res := s.ProcessRefund(context.Background(), 10.99, "", "USD")

	assert.False(t, res.Success)
	assert.False(t, sender.called, "missing transaction id must short-circuit")
	assert.Equal(t, MsgMissingTxnID, s.ErrorString())
}

func TestSessionCapture(t *testing.T) {
	sender := &stubSender{resp: map[string]any{
		"response": map[string]any{"success": float64(1), "token": "cap_1"},
	}}
	s := newTestSession(t, sender)

	res := s.ProcessCapture(context.Background(), 10.99, "tok_hold", "USD")

	require.True(t, res.Success)
	assert.Equal(t, "cap_1", s.BankTransactionID())
	assert.Equal(t, TxnCapture, s.TxnType())
}
