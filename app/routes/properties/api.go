package properties

import (
	"crypto/rand"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Rushirajkorde/Rent-Edge/app/database"
	"github.com/Rushirajkorde/Rent-Edge/app/models"
	"github.com/Rushirajkorde/Rent-Edge/app/utils"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const codeLength = 6

// GeneratePropertyCode produces the 6-character shareable code owners hand
// to their tenants.
func GeneratePropertyCode() string {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// nothing sensible to do but give up loudly.
		panic(err)
	}
	for i, b := range buf {
		buf[i] = codeCharset[int(b)%len(codeCharset)]
	}
	return string(buf)
}

// CreatePropertyAPI registers a property for the authenticated owner and
// returns it with its generated code.
func CreatePropertyAPI(c *fiber.Ctx, db *sql.DB) error {
	type CreatePropertyRequest struct {
		Name            string `json:"name" validate:"required"`
		Address         string `json:"address" validate:"required"`
		OwnerUpiID      string `json:"owner_upi_id" validate:"required"`
		RentAmount      int64  `json:"rent_amount" validate:"required,gt=0"`
		SecurityDeposit int64  `json:"security_deposit" validate:"required,gt=0"`
		RentPaymentDate string `json:"rent_payment_date" validate:"required,datetime=2006-01-02"`
	}

	ownerID, ok := c.Locals("user_id").(string)
	if !ok || ownerID == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	var req CreatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	dueDate, err := time.ParseInLocation("2006-01-02", req.RentPaymentDate, time.Local)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid rent payment date"})
	}

	prop := &models.Property{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		Name:            req.Name,
		Address:         req.Address,
		OwnerUpiID:      req.OwnerUpiID,
		RentAmount:      req.RentAmount,
		SecurityDeposit: req.SecurityDeposit,
		DueDate:         dueDate,
	}

	// Regenerate on the rare code collision.
	for attempt := 0; attempt < 5; attempt++ {
		prop.PropertyCode = GeneratePropertyCode()
		err = database.InsertProperty(db, prop)
		if err == nil {
			return c.JSON(fiber.Map{"success": true, "data": prop})
		}
		if !database.IsUniqueViolation(err) {
			break
		}
	}
	return c.Status(500).JSON(fiber.Map{"error": "Failed to create property"})
}

// GetOwnerPropertiesAPI lists the authenticated owner's properties.
func GetOwnerPropertiesAPI(c *fiber.Ctx, db *sql.DB) error {
	ownerID, ok := c.Locals("user_id").(string)
	if !ok || ownerID == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	props, err := database.GetOwnerProperties(db, ownerID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch properties"})
	}
	return c.JSON(fiber.Map{"success": true, "data": props})
}
