package properties

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Rushirajkorde/Rent-Edge/app/config"
	"github.com/Rushirajkorde/Rent-Edge/app/routes/auth"
)

// SetupPropertiesRoutes registers the owner-facing property endpoints.
func SetupPropertiesRoutes(app *fiber.App) {
	api := app.Group("/api/properties")
	api.Use(auth.AuthMiddleware)

	api.Post("/", func(c *fiber.Ctx) error {
		return CreatePropertyAPI(c, config.GetDB())
	})

	api.Get("/", func(c *fiber.Ctx) error {
		return GetOwnerPropertiesAPI(c, config.GetDB())
	})
}
