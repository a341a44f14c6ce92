package models

import "time"

// TenantRecord is the per-tenant ledger: deposit balance plus append-only
// fine and payment history. Created once when a payer connects to a property,
// deleted only when the owner removes the tenant.
//
// Invariant: CurrentDeposit equals the property's security deposit at link
// time minus the sum of all FineHistory deductions. No other mutation path
// exists.
type TenantRecord struct {
	ID              string               `json:"id"` // matches User.ID
	PropertyID      string               `json:"property_id"`
	CurrentDeposit  int64                `json:"current_deposit"`
	LastPaymentDate time.Time            `json:"last_payment_date"`
	MoveInDate      time.Time            `json:"move_in_date"`
	FineHistory     []FineRecord         `json:"fine_history"`     // chronological
	PaymentHistory  []PaymentTransaction `json:"payment_history"`  // most recent first
}

// FineRecord is one deduction from the security deposit. Zero-fine payments
// are never recorded here.
type FineRecord struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	AmountDeducted int64     `json:"amount_deducted"`
	DaysLate       int       `json:"days_late"`
	RentMonth      string    `json:"rent_month"`
}

// PaymentTransaction is one processed rent payment. AmountPaid is the rent
// charged; FineDeducted is whatever penalty came out of the deposit at the
// same time (may be zero).
type PaymentTransaction struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	AmountPaid     int64     `json:"amount_paid"`
	FineDeducted   int64     `json:"fine_deducted"`
	RentMonth      string    `json:"rent_month"`
	TransactionRef string    `json:"transaction_ref"`
}

// TotalFines sums every deduction recorded against the deposit.
func (t *TenantRecord) TotalFines() int64 {
	var total int64
	for _, f := range t.FineHistory {
		total += f.AmountDeducted
	}
	return total
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the stored history slices to mutation.
func (t *TenantRecord) Clone() *TenantRecord {
	cp := *t
	cp.FineHistory = make([]FineRecord, len(t.FineHistory))
	copy(cp.FineHistory, t.FineHistory)
	cp.PaymentHistory = make([]PaymentTransaction, len(t.PaymentHistory))
	copy(cp.PaymentHistory, t.PaymentHistory)
	return &cp
}
