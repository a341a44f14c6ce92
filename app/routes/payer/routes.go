package payer

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Rushirajkorde/Rent-Edge/app/routes/auth"
	"github.com/Rushirajkorde/Rent-Edge/app/services"
)

// SetupPayerRoutes registers the tenant-facing ledger endpoints.
func SetupPayerRoutes(app *fiber.App, svc *services.LedgerService) {
	api := app.Group("/api/payer")
	api.Use(auth.AuthMiddleware)

	api.Post("/connect", func(c *fiber.Ctx) error {
		return ConnectPropertyAPI(c, svc)
	})

	api.Get("/dashboard", func(c *fiber.Ctx) error {
		return GetPayerDashboardAPI(c, svc)
	})

	api.Post("/pay", func(c *fiber.Ctx) error {
		return ProcessPaymentAPI(c, svc)
	})
}
