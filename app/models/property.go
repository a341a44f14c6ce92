package models

import "time"

// Property is a rental unit registered by an owner. The ledger treats it as
// read-only: rent changes never rewrite already-recorded transactions.
type Property struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	OwnerUpiID      string    `json:"owner_upi_id"`
	RentAmount      int64     `json:"rent_amount"`
	SecurityDeposit int64     `json:"security_deposit"`
	DueDate         time.Time `json:"rent_payment_date"`
	PropertyCode    string    `json:"property_code"`
	CreatedAt       time.Time `json:"created_at"`
}
