package main

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/Rushirajkorde/Rent-Edge/app/config"
	"github.com/Rushirajkorde/Rent-Edge/app/database"
	"github.com/Rushirajkorde/Rent-Edge/app/routes/auth"
	"github.com/Rushirajkorde/Rent-Edge/app/routes/maintenance"
	"github.com/Rushirajkorde/Rent-Edge/app/routes/owner"
	"github.com/Rushirajkorde/Rent-Edge/app/routes/payer"
	"github.com/Rushirajkorde/Rent-Edge/app/routes/properties"
	"github.com/Rushirajkorde/Rent-Edge/app/services"
)

// customErrorHandler keeps every error response JSON-shaped.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logg := config.GetLogger()
	config.InitDB()
	db := config.GetDB()

	if err := database.EnsureSchema(db); err != nil {
		logg.WithError(err).Fatal("schema bootstrap failed")
	}

	svc := services.NewLedgerService(
		database.NewLedgerStore(db),
		database.NewPropertyStore(db),
		database.NewUserStore(db),
		logg,
	)

	app := fiber.New(fiber.Config{
		AppName:      "RentEdge",
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth.SetupAuthRoutes(app)
	properties.SetupPropertiesRoutes(app)
	owner.SetupOwnerRoutes(app, svc)
	payer.SetupPayerRoutes(app, svc)
	maintenance.SetupMaintenanceRoutes(app)

	addr := ":" + config.AppConfig.Port
	logg.WithField("addr", addr).Info("RentEdge backend listening")
	if err := app.Listen(addr); err != nil {
		logg.WithError(err).Fatal("server stopped")
	}
}
