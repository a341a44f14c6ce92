package owner

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Rushirajkorde/Rent-Edge/app/config"
	"github.com/Rushirajkorde/Rent-Edge/app/routes/auth"
	"github.com/Rushirajkorde/Rent-Edge/app/services"
)

// SetupOwnerRoutes registers the owner dashboard endpoints.
func SetupOwnerRoutes(app *fiber.App, svc *services.LedgerService) {
	api := app.Group("/api/owner")
	api.Use(auth.AuthMiddleware)

	api.Get("/dashboard", func(c *fiber.Ctx) error {
		return GetOwnerDashboardAPI(c, config.GetDB())
	})

	api.Delete("/tenant/:tenantId", func(c *fiber.Ctx) error {
		return RemoveTenantAPI(c, svc)
	})
}
