package owner

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/Rushirajkorde/Rent-Edge/app/database"
	"github.com/Rushirajkorde/Rent-Edge/app/services"
)

// GetOwnerDashboardAPI returns everything the owner dashboard renders:
// their properties, the tenants linked to them, and the maintenance queue.
func GetOwnerDashboardAPI(c *fiber.Ctx, db *sql.DB) error {
	ownerID, ok := c.Locals("user_id").(string)
	if !ok || ownerID == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	props, err := database.GetOwnerProperties(db, ownerID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch properties"})
	}

	propIDs := make([]string, len(props))
	for i, p := range props {
		propIDs[i] = p.ID
	}

	tenants, err := database.GetTenantsForProperties(db, propIDs)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch tenants"})
	}

	requests, err := database.GetMaintenanceRequests(db, propIDs)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch maintenance requests"})
	}

	return c.JSON(fiber.Map{
		"properties": props,
		"tenants":    tenants,
		"requests":   requests,
	})
}

// RemoveTenantAPI unlinks a tenant and deletes their ledger. Unconditional:
// outstanding fines are not reconciled.
func RemoveTenantAPI(c *fiber.Ctx, svc *services.LedgerService) error {
	tenantID := c.Params("tenantId")
	if tenantID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Tenant id required"})
	}

	if err := svc.Unlink(c.Context(), tenantID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to remove tenant"})
	}
	return c.JSON(fiber.Map{"success": true})
}
