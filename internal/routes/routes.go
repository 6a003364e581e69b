// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"trexle/internal/config"
	"trexle/internal/gateway"
	"trexle/internal/handlers"
	"trexle/internal/middleware"
	"trexle/internal/repositories"
	"trexle/internal/services/checkout"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	settings := config.LoadGatewaySettings()

	mode := gateway.ModeTest
	if settings.LiveMode {
		mode = gateway.ModeLive
	}
	client := gateway.New(gateway.Config{
		Mode:            mode,
		PrivateKey:      settings.PrivateKey,
		PublishableKey:  settings.PublishableKey,
		Debug:           settings.Debug,
		StrictReference: settings.StrictReference,
		InsecureSkipTLS: settings.InsecureSkipTLS,
	})

	orderRepo := repositories.NewOrderRepository(db)
	idemGuard := repositories.NewIdempotencyGuard(repositories.Redis)

	checkoutService := checkout.NewService(client, orderRepo, idemGuard, checkout.Config{
		ShopName:        config.ShopName(),
		CaptureOnCharge: settings.CaptureOnCharge,
	})

	paymentHandler := handlers.NewPaymentHandler(checkoutService)
	adminHandler := handlers.NewAdminHandler(checkoutService)
	healthHandler := handlers.NewHealthHandler(client)

	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")

	// Storefront checkout
	api.Post("/payments", paymentHandler.Pay)

	// Back office operations require an admin token
	admin := api.Group("/admin", middleware.AuthMiddleware, middleware.AdminAuthMiddleware)
	admin.Post("/orders/:id/refund", adminHandler.Refund)
	admin.Post("/orders/:id/capture", adminHandler.Capture)
}
