package models

// UserRole distinguishes property owners from rent payers.
type UserRole string

const (
	RoleOwner UserRole = "OWNER"
	RolePayer UserRole = "PAYER"
)

// MaintenanceStatus tracks the lifecycle of a maintenance request.
type MaintenanceStatus string

const (
	MaintenanceOpen       MaintenanceStatus = "OPEN"
	MaintenanceInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceResolved   MaintenanceStatus = "RESOLVED"
)
