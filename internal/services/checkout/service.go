package checkout

import (
	"context"
	"fmt"
	"log"

	"trexle/internal/gateway"
	"trexle/internal/models"
)

// Config holds the host-side payment policy.
type Config struct {
	// ShopName prefixes the transaction reference sent to the gateway.
	ShopName string

	// CaptureOnCharge charges immediately; when false, checkout only
	// preauthorizes and Capture finalizes the payment later.
	CaptureOnCharge bool

	// PreauthState and RefundState are the order states applied after a
	// successful preauthorization and refund. Defaults are used when
	// empty.
	PreauthState string
	RefundState  string
}

func (c Config) preauthState() string {
	if c.PreauthState == "" {
		return models.OrderStatePreauthorized
	}
	return c.PreauthState
}

func (c Config) refundState() string {
	if c.RefundState == "" {
		return models.OrderStateRefunded
	}
	return c.RefundState
}

// CardInput is the raw card form data from the storefront.
type CardInput struct {
	Number string
	Month  string
	Year   string
	CVC    string
}

// PayRequest is one storefront checkout attempt against an order.
type PayRequest struct {
	OrderID        uint
	IdempotencyKey string

	Card           CardInput
	CardholderName string
	Email          string
	Address1       string
	Address2       string
	City           string
	Postcode       string
	State          string
	Country        string

	// ClientIP is the shopper's address, already resolved by the handler
	// (forwarded-for header preferred over the direct peer).
	ClientIP string
}

// PayResult is the checkout outcome handed back to the storefront handler.
type PayResult struct {
	gateway.Result
	OrderState string
	Message    string
}

// Service drives the payment flow between the storefront, the gateway
// transaction core, and the host order state machine.
type Service struct {
	gw     Gateway
	orders OrderStore
	idem   IdempotencyStore
	cfg    Config
}

// NewService wires the checkout service. idem may be nil when no
// idempotency guard is available; the flow then relies on the caller.
func NewService(gw Gateway, orders OrderStore, idem IdempotencyStore, cfg Config) *Service {
	return &Service{gw: gw, orders: orders, idem: idem, cfg: cfg}
}

// Reference builds the gateway transaction reference for a cart.
func (s *Service) Reference(cartID uint) string {
	return fmt.Sprintf("%s - Cart ID: %d", s.cfg.ShopName, cartID)
}

// Pay runs one checkout attempt: charge or preauthorize per configuration,
// then reflect the result into the order state machine. Gateway declines
// and validation failures come back inside PayResult, not as an error;
// errors mean the attempt never reached a conclusive gateway answer.
func (s *Service) Pay(ctx context.Context, req PayRequest) (*PayResult, error) {
	if req.Card.Number == "" || req.Card.Month == "" || req.Card.Year == "" || req.Card.CVC == "" {
		return nil, ErrMissingCardDetails
	}

	if s.idem != nil && req.IdempotencyKey != "" {
		ok, err := s.idem.Acquire(ctx, req.IdempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("idempotency guard: %w", err)
		}
		if !ok {
			return nil, ErrDuplicateAttempt
		}
	}

	octx, err := s.orders.FetchOrderContext(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("fetching order %d: %w", req.OrderID, err)
	}

	email := req.Email
	if email == "" {
		email = octx.Email
	}

	chargeReq := gateway.ChargeRequest{
		Amount:    octx.Amount,
		Currency:  octx.Currency,
		Reference: s.Reference(octx.CartID),
		Email:     email,
		IPAddress: req.ClientIP,
		Card: gateway.Card{
			Number:       req.Card.Number,
			ExpiryMonth:  gateway.NormalizeExpiryMonth(req.Card.Month),
			ExpiryYear:   gateway.NormalizeExpiryYear(req.Card.Year),
			CVC:          req.Card.CVC,
			Name:         req.CardholderName,
			AddressLine1: req.Address1,
			AddressLine2: req.Address2,
			City:         req.City,
			Postcode:     req.Postcode,
			State:        req.State,
			Country:      req.Country,
		},
	}

	var res gateway.Result
	if s.cfg.CaptureOnCharge {
		res = s.gw.Charge(ctx, chargeReq)
	} else {
		res = s.gw.Preauth(ctx, chargeReq)
	}

	if !res.Success {
		return &PayResult{Result: res, OrderState: octx.State}, nil
	}

	message := fmt.Sprintf("Trexle Receipt No: %s - Last 4 digits of the card: %s",
		res.TransactionID, lastFour(req.Card.Number))
	state := models.OrderStatePaid
	if !s.cfg.CaptureOnCharge {
		message = "Auth Only " + message
		state = s.cfg.preauthState()
	}

	newState, err := s.orders.ApplyResult(ctx, req.OrderID, state, message, res.TransactionID)
	if err != nil {
		// The card was charged; surface the booking problem loudly but
		// keep the gateway outcome intact for the caller.
		log.Printf("order %d: recording payment result failed: %v", req.OrderID, err)
		return &PayResult{Result: res, OrderState: octx.State, Message: message}, err
	}

	return &PayResult{Result: res, OrderState: newState, Message: message}, nil
}

// CanRefund reports whether the back office may refund the order: it needs
// a recorded transaction, must not already be refunded, and in preauth mode
// a pending (uncaptured) hold cannot be refunded.
func (s *Service) CanRefund(octx OrderContext) bool {
	if !s.cfg.CaptureOnCharge && octx.State == s.cfg.preauthState() {
		return false
	}
	if octx.State == s.cfg.refundState() || octx.TransactionID == "" {
		return false
	}
	return true
}

// CanCapture reports whether the back office may capture the order: only in
// preauthorize mode, only before payment or refund, and only with a
// recorded transaction.
func (s *Service) CanCapture(octx OrderContext) bool {
	if s.cfg.CaptureOnCharge {
		return false
	}
	if octx.State == models.OrderStatePaid || octx.State == s.cfg.refundState() {
		return false
	}
	return octx.TransactionID != ""
}

// Refund refunds the order's full paid amount and moves it to the refund
// state. Returns the gateway refund id.
func (s *Service) Refund(ctx context.Context, orderID uint) (string, error) {
	octx, err := s.orders.FetchOrderContext(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("fetching order %d: %w", orderID, err)
	}
	if !s.CanRefund(octx) {
		return "", ErrRefundNotAllowed
	}

	res := s.gw.Refund(ctx, octx.TransactionID, octx.Amount, octx.Currency)
	if !res.Success {
		if _, aerr := s.orders.ApplyResult(ctx, orderID, "", "An error occurred during refund process.", ""); aerr != nil {
			log.Printf("order %d: recording refund failure: %v", orderID, aerr)
		}
		return "", fmt.Errorf("%w: %s", ErrRefundFailed, res.ErrorMessage())
	}

	message := fmt.Sprintf("Refunded %s%.2f - Refund ID: %s", currencySign(octx.Currency), octx.Amount, res.TransactionID)
	if _, err := s.orders.ApplyResult(ctx, orderID, s.cfg.refundState(), message, ""); err != nil {
		return res.TransactionID, err
	}
	return res.TransactionID, nil
}

// Capture finalizes a preauthorized order for its full amount and marks it
// paid. Returns the gateway capture id.
func (s *Service) Capture(ctx context.Context, orderID uint) (string, error) {
	octx, err := s.orders.FetchOrderContext(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("fetching order %d: %w", orderID, err)
	}
	if !s.CanCapture(octx) {
		return "", ErrCaptureNotAllowed
	}

	res := s.gw.Capture(ctx, octx.TransactionID, octx.Amount, octx.Currency)
	if !res.Success {
		if _, aerr := s.orders.ApplyResult(ctx, orderID, "", "An error occurred during capture process.", ""); aerr != nil {
			log.Printf("order %d: recording capture failure: %v", orderID, aerr)
		}
		return "", fmt.Errorf("%w: %s", ErrCaptureFailed, res.ErrorMessage())
	}

	message := fmt.Sprintf("Transaction Captured %s%.2f - Capture ID: %s", currencySign(octx.Currency), octx.Amount, res.TransactionID)
	if _, err := s.orders.ApplyResult(ctx, orderID, models.OrderStatePaid, message, ""); err != nil {
		return res.TransactionID, err
	}
	return res.TransactionID, nil
}

func lastFour(number string) string {
	if len(number) < 4 {
		return number
	}
	return number[len(number)-4:]
}

func currencySign(code string) string {
	switch code {
	case "USD", "AUD", "CAD", "NZD", "SGD", "HKD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "JPY":
		return "¥"
	default:
		return code + " "
	}
}
