package handlers

import (
	"trexle/internal/gateway"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports service liveness and the configured gateway mode.
type HealthHandler struct {
	client *gateway.Client
}

func NewHealthHandler(client *gateway.Client) *HealthHandler {
	return &HealthHandler{client: client}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	gatewayState := "configured"
	if !h.client.Valid() {
		gatewayState = "misconfigured"
	}

	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": "1.0.0",
		"services": fiber.Map{
			"database": "connected",
			"redis":    "connected",
			"gateway":  gatewayState,
		},
	})
}
