package models

import "time"

// User is an account in the system, either a property owner or a payer.
type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	PasswordHash     string    `json:"-"`
	Role             UserRole  `json:"role"`
	LinkedPropertyID *string   `json:"linked_property_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsLinked reports whether a payer is currently connected to a property.
func (u *User) IsLinked() bool {
	return u.LinkedPropertyID != nil && *u.LinkedPropertyID != ""
}
