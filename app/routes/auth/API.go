package auth

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Rushirajkorde/Rent-Edge/app/database"
	"github.com/Rushirajkorde/Rent-Edge/app/models"
	"github.com/Rushirajkorde/Rent-Edge/app/utils"
)

// defaultPassword backs accounts created without an explicit password, a
// holdover from the MVP signup flow.
const defaultPassword = "password123"

func SignupAPI(c *fiber.Ctx, db *sql.DB) error {
	type SignupRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Phone    string `json:"phone" validate:"omitempty,min=7"`
		Role     string `json:"role" validate:"required,oneof=OWNER PAYER"`
		Password string `json:"password"`
	}

	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	password := req.Password
	if password == "" {
		password = defaultPassword
	}
	hash, err := HashPassword(password)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create account"})
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         models.UserRole(req.Role),
	}
	if err := database.CreateUser(db, user); err != nil {
		if errors.Is(err, database.ErrDuplicateUser) {
			return c.Status(400).JSON(fiber.Map{"error": "User with this email or phone already exists."})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	token, err := GenerateJWT(user.ID, user.Role)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{"token": token, "user": user})
}

// MeAPI returns the account behind the presented token, so the frontend can
// restore a session without re-authenticating.
func MeAPI(c *fiber.Ctx, db *sql.DB) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	user, err := database.GetUserByID(db, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Account no longer exists"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"user": user})
}

// LoginAPI signs a user in by email OR phone, scoped to a role. A payer and
// an owner may share an email; the role picks which account logs in.
func LoginAPI(c *fiber.Ctx, db *sql.DB) error {
	type LoginRequest struct {
		Identifier string `json:"identifier" validate:"required"`
		Role       string `json:"role" validate:"required,oneof=OWNER PAYER"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := database.GetUserByIdentifier(db, req.Identifier, models.UserRole(req.Role))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "User not found. Please sign up."})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	token, err := GenerateJWT(user.ID, user.Role)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{"token": token, "user": user})
}
