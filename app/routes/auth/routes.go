package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Rushirajkorde/Rent-Edge/app/config"
)

// SetupAuthRoutes registers the public signup/login endpoints.
func SetupAuthRoutes(app *fiber.App) {
	api := app.Group("/api/auth")

	api.Post("/signup", func(c *fiber.Ctx) error {
		return SignupAPI(c, config.GetDB())
	})

	api.Post("/login", func(c *fiber.Ctx) error {
		return LoginAPI(c, config.GetDB())
	})

	api.Get("/me", AuthMiddleware, func(c *fiber.Ctx) error {
		return MeAPI(c, config.GetDB())
	})
}

// AuthMiddleware validates the JWT and stores the caller's identity in
// request locals. The token comes from the jwt_token cookie or a Bearer
// Authorization header.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies("jwt_token")

	if tokenString == "" {
		authHeader := c.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}

	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_role", claims.Role)
	return c.Next()
}
