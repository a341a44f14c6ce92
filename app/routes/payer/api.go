package payer

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Rushirajkorde/Rent-Edge/app/services"
	"github.com/Rushirajkorde/Rent-Edge/app/utils"
)

// ConnectPropertyAPI links the authenticated payer to a property by its
// shareable code and initializes their ledger.
func ConnectPropertyAPI(c *fiber.Ctx, svc *services.LedgerService) error {
	type ConnectRequest struct {
		Code string `json:"code" validate:"required,len=6"`
	}

	tenantID, ok := c.Locals("user_id").(string)
	if !ok || tenantID == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	var req ConnectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	_, prop, err := svc.Link(c.Context(), tenantID, req.Code)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCode) {
			return c.Status(404).JSON(fiber.Map{"error": "Invalid Property Code"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to connect property"})
	}

	return c.JSON(fiber.Map{"success": true, "property": prop})
}

// GetPayerDashboardAPI returns the payer's property and ledger with the
// live fine estimate injected. The estimate is read-only; nothing is charged
// until the payer actually pays.
func GetPayerDashboardAPI(c *fiber.Ctx, svc *services.LedgerService) error {
	tenantID, ok := c.Locals("user_id").(string)
	if !ok || tenantID == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	est, err := svc.EstimateFine(c.Context(), tenantID)
	if err != nil {
		if errors.Is(err, services.ErrNotLinked) {
			return c.JSON(fiber.Map{"linked": false})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load dashboard"})
	}

	return c.JSON(fiber.Map{
		"linked":   true,
		"property": est.Property,
		"record": fiber.Map{
			"id":                est.Record.ID,
			"property_id":       est.Record.PropertyID,
			"current_deposit":   est.Record.CurrentDeposit,
			"last_payment_date": est.Record.LastPaymentDate,
			"move_in_date":      est.Record.MoveInDate,
			"fine_history":      est.Record.FineHistory,
			"payment_history":   est.Record.PaymentHistory,
			"fine":              est.Fine,
			"days_late":         est.DaysLate,
			"day_of_cycle":      est.CycleDay,
		},
	})
}

// ProcessPaymentAPI charges the payer's rent and settles any accrued fine.
func ProcessPaymentAPI(c *fiber.Ctx, svc *services.LedgerService) error {
	tenantID, ok := c.Locals("user_id").(string)
	if !ok || tenantID == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	result, err := svc.ProcessPayment(c.Context(), tenantID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotLinked):
			return c.Status(404).JSON(fiber.Map{"error": "No property found"})
		case errors.Is(err, services.ErrConflict):
			// Nothing was written; the payer can retry safely.
			return c.Status(409).JSON(fiber.Map{"error": "Payment Failed, try again"})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Payment failed"})
		}
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"fine_paid":   result.FineCharged,
		"new_deposit": result.NewDeposit,
		"transaction": result.Transaction,
	})
}
