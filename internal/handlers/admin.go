package handlers

import (
	"errors"
	"strconv"

	"trexle/internal/services/checkout"
	"trexle/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler exposes the back office refund and capture endpoints.
type AdminHandler struct {
	checkoutService *checkout.Service
}

func NewAdminHandler(svc *checkout.Service) *AdminHandler {
	return &AdminHandler{checkoutService: svc}
}

// Refund refunds an order's full paid amount.
func (h *AdminHandler) Refund(c *fiber.Ctx) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid order id")
	}

	refundID, err := h.checkoutService.Refund(c.Context(), orderID)
	if err != nil {
		return adminError(c, err, checkout.ErrRefundNotAllowed, "Order cannot be refunded")
	}

	return response.Success(c, "Order refunded", fiber.Map{"refund_id": refundID})
}

// Capture finalizes a preauthorized order.
func (h *AdminHandler) Capture(c *fiber.Ctx) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid order id")
	}

	captureID, err := h.checkoutService.Capture(c.Context(), orderID)
	if err != nil {
		return adminError(c, err, checkout.ErrCaptureNotAllowed, "Order cannot be captured")
	}

	return response.Success(c, "Transaction captured", fiber.Map{"capture_id": captureID})
}

func orderIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func adminError(c *fiber.Ctx, err, notAllowed error, notAllowedMsg string) error {
	switch {
	case errors.Is(err, checkout.ErrOrderNotFound):
		return response.NotFound(c, "Order not found")
	case errors.Is(err, notAllowed):
		return response.Conflict(c, notAllowedMsg)
	case errors.Is(err, checkout.ErrRefundFailed), errors.Is(err, checkout.ErrCaptureFailed):
		return response.Error(c, fiber.StatusBadGateway, err.Error())
	default:
		return response.ServerError(c, "Operation failed")
	}
}
