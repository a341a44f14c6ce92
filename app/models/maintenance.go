package models

import "time"

// MaintenanceRequest is a ticket raised by a tenant against a property.
type MaintenanceRequest struct {
	ID          string            `json:"id"`
	PropertyID  string            `json:"property_id"`
	TenantID    string            `json:"tenant_id"`
	TenantName  string            `json:"tenant_name"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      MaintenanceStatus `json:"status"`
	AiEnhanced  bool              `json:"ai_enhanced"`
	CreatedAt   time.Time         `json:"created_at"`
}
