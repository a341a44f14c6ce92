package maintenance

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Rushirajkorde/Rent-Edge/app/database"
	"github.com/Rushirajkorde/Rent-Edge/app/models"
	"github.com/Rushirajkorde/Rent-Edge/app/utils"
)

// CreateMaintenanceRequestAPI files a new ticket against a property.
func CreateMaintenanceRequestAPI(c *fiber.Ctx, db *sql.DB) error {
	type CreateRequest struct {
		PropertyID  string `json:"property_id" validate:"required,uuid"`
		TenantName  string `json:"tenant_name" validate:"required"`
		Title       string `json:"title" validate:"required"`
		Description string `json:"description" validate:"required"`
		AiEnhanced  bool   `json:"ai_enhanced"`
	}

	tenantID, ok := c.Locals("user_id").(string)
	if !ok || tenantID == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	request := &models.MaintenanceRequest{
		ID:          uuid.NewString(),
		PropertyID:  req.PropertyID,
		TenantID:    tenantID,
		TenantName:  req.TenantName,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.MaintenanceOpen,
		AiEnhanced:  req.AiEnhanced,
	}
	if err := database.CreateMaintenanceRequest(db, request); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create maintenance request"})
	}

	return c.JSON(fiber.Map{"success": true, "data": request})
}

// GetMaintenanceRequestsAPI lists tickets for one property, newest first.
func GetMaintenanceRequestsAPI(c *fiber.Ctx, db *sql.DB) error {
	propertyID := c.Params("propertyId")
	if propertyID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Property id required"})
	}

	requests, err := database.GetMaintenanceRequests(db, []string{propertyID})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch maintenance requests"})
	}
	return c.JSON(fiber.Map{"success": true, "data": requests})
}

// UpdateMaintenanceStatusAPI moves a ticket through its lifecycle.
func UpdateMaintenanceStatusAPI(c *fiber.Ctx, db *sql.DB) error {
	type StatusRequest struct {
		Status string `json:"status" validate:"required,oneof=OPEN IN_PROGRESS RESOLVED"`
	}

	requestID := c.Params("id")

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	err := database.UpdateMaintenanceStatus(db, requestID, models.MaintenanceStatus(req.Status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Maintenance request not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update status"})
	}
	return c.JSON(fiber.Map{"success": true})
}
