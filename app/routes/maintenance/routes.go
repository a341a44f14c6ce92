package maintenance

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Rushirajkorde/Rent-Edge/app/config"
	"github.com/Rushirajkorde/Rent-Edge/app/routes/auth"
)

// SetupMaintenanceRoutes registers the maintenance ticket endpoints.
func SetupMaintenanceRoutes(app *fiber.App) {
	api := app.Group("/api/maintenance")
	api.Use(auth.AuthMiddleware)

	api.Post("/", func(c *fiber.Ctx) error {
		return CreateMaintenanceRequestAPI(c, config.GetDB())
	})

	api.Get("/property/:propertyId", func(c *fiber.Ctx) error {
		return GetMaintenanceRequestsAPI(c, config.GetDB())
	})

	api.Put("/:id/status", func(c *fiber.Ctx) error {
		return UpdateMaintenanceStatusAPI(c, config.GetDB())
	})
}
