package handlers

import (
	"errors"

	"trexle/internal/services/checkout"
	"trexle/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler exposes the storefront checkout endpoint.
type PaymentHandler struct {
	checkoutService *checkout.Service
}

func NewPaymentHandler(svc *checkout.Service) *PaymentHandler {
	return &PaymentHandler{checkoutService: svc}
}

// Pay processes one checkout attempt against an order.
func (h *PaymentHandler) Pay(c *fiber.Ctx) error {
	var input struct {
		OrderID        uint   `json:"order_id" validate:"required"`
		IdempotencyKey string `json:"idempotency_key"`
		CardNumber     string `json:"card_number" validate:"required"`
		ExpiryMonth    string `json:"expiry_month" validate:"required"`
		ExpiryYear     string `json:"expiry_year" validate:"required"`
		CVC            string `json:"cvc" validate:"required"`
		CardholderName string `json:"cardholder_name"`
		Email          string `json:"email"`
		Address1       string `json:"address1"`
		Address2       string `json:"address2"`
		City           string `json:"city"`
		Postcode       string `json:"postcode"`
		State          string `json:"state"`
		Country        string `json:"country"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	req := checkout.PayRequest{
		OrderID:        input.OrderID,
		IdempotencyKey: input.IdempotencyKey,
		Card: checkout.CardInput{
			Number: input.CardNumber,
			Month:  input.ExpiryMonth,
			Year:   input.ExpiryYear,
			CVC:    input.CVC,
		},
		CardholderName: input.CardholderName,
		Email:          input.Email,
		Address1:       input.Address1,
		Address2:       input.Address2,
		City:           input.City,
		Postcode:       input.Postcode,
		State:          input.State,
		Country:        input.Country,
		ClientIP:       clientIP(c),
	}

	res, err := h.checkoutService.Pay(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrMissingCardDetails):
			return response.BadRequest(c, "Please fill all the card details")
		case errors.Is(err, checkout.ErrDuplicateAttempt):
			return response.Conflict(c, "A payment for this attempt is already in progress")
		case errors.Is(err, checkout.ErrOrderNotFound):
			return response.NotFound(c, "Order not found")
		default:
			return response.ServerError(c, "Payment could not be processed")
		}
	}

	if !res.Success {
		return response.PaymentRequired(c, res.ErrorMessage())
	}

	return response.Success(c, res.Message, fiber.Map{
		"transaction_id": res.TransactionID,
		"order_state":    res.OrderState,
	})
}

// clientIP prefers the forwarded address set by the front proxy over the
// direct peer.
func clientIP(c *fiber.Ctx) string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return c.IP()
}
