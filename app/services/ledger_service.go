// Package services holds the payment ledger: the one place where fines are
// applied to a tenant's security deposit and history is written. Handlers
// stay thin and call into here; storage details stay behind LedgerStore.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/Rushirajkorde/Rent-Edge/app/fines"
	"github.com/Rushirajkorde/Rent-Edge/app/models"
)

// backdateDays shifts a fresh tenant's lastPaymentDate into the past so an
// unpaid first cycle is delinquent immediately after linking.
const backdateDays = 30

// PaymentMutation is the atomic unit a payment applies to a ledger: the new
// deposit balance, the new last-payment date, at most one fine record, and
// exactly one payment transaction.
type PaymentMutation struct {
	NewDeposit      int64
	LastPaymentDate time.Time
	Fine            *models.FineRecord // nil when no fine accrued
	Transaction     models.PaymentTransaction
}

// LedgerStore is the persistence boundary for tenant ledgers. Implementations
// must make ApplyPayment exclusive per tenant: the decide callback runs with
// the current record while no other mutating call for the same tenant can
// interleave, and either the whole mutation lands or none of it does.
type LedgerStore interface {
	GetLedger(ctx context.Context, tenantID string) (*models.TenantRecord, error)
	// CreateLedger stores the record unless one already exists for the
	// tenant, and returns whichever record is current afterwards.
	CreateLedger(ctx context.Context, rec *models.TenantRecord) (*models.TenantRecord, error)
	ApplyPayment(ctx context.Context, tenantID string, decide func(rec *models.TenantRecord) (PaymentMutation, error)) (*models.TenantRecord, error)
	// DeleteLedger removes the record; deleting a missing record is not an
	// error.
	DeleteLedger(ctx context.Context, tenantID string) error
}

// PropertyDirectory resolves properties for the ledger. Read-only.
type PropertyDirectory interface {
	GetPropertyByID(ctx context.Context, id string) (*models.Property, error)
	GetPropertyByCode(ctx context.Context, code string) (*models.Property, error)
}

// UserDirectory maintains the payer-side property linkage.
type UserDirectory interface {
	SetLinkedProperty(ctx context.Context, userID, propertyID string) error
	ClearLinkedProperty(ctx context.Context, userID string) error
}

// PaymentResult is what a processed payment reports back to the caller.
type PaymentResult struct {
	FineCharged int64                     `json:"fine_paid"`
	NewDeposit  int64                     `json:"new_deposit"`
	Transaction models.PaymentTransaction `json:"transaction"`
}

// FineEstimate pairs a live fine computation with the record it was computed
// against, for dashboard display.
type FineEstimate struct {
	fines.Result
	Record   *models.TenantRecord `json:"record"`
	Property *models.Property     `json:"property"`
}

type LedgerService struct {
	Store      LedgerStore
	Properties PropertyDirectory
	Users      UserDirectory
	Now        func() time.Time
	Log        *logrus.Logger
}

func NewLedgerService(store LedgerStore, props PropertyDirectory, users UserDirectory, log *logrus.Logger) *LedgerService {
	return &LedgerService{
		Store:      store,
		Properties: props,
		Users:      users,
		Now:        time.Now,
		Log:        log,
	}
}

func (s *LedgerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Link resolves a shareable property code and points the tenant's ledger at
// that property. Re-linking with the same property's code is idempotent: the
// existing ledger comes back untouched, so the deposit balance and fine
// history survive duplicate connect requests. Linking to a different property
// starts over: the old ledger and its histories are dropped and a fresh one
// opens against the new property's deposit, so the returned record always
// belongs to the returned property.
func (s *LedgerService) Link(ctx context.Context, tenantID, propertyCode string) (*models.TenantRecord, *models.Property, error) {
	prop, err := s.Properties.GetPropertyByCode(ctx, strings.ToUpper(strings.TrimSpace(propertyCode)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrInvalidCode
	}
	if err != nil {
		return nil, nil, fmt.Errorf("resolving property code: %w", err)
	}

	existing, err := s.Store.GetLedger(ctx, tenantID)
	switch {
	case err == nil && existing.PropertyID != prop.ID:
		if err := s.Store.DeleteLedger(ctx, tenantID); err != nil {
			return nil, nil, fmt.Errorf("replacing tenant ledger: %w", err)
		}
	case err != nil && !errors.Is(err, ErrNotLinked):
		return nil, nil, err
	}

	if err := s.Users.SetLinkedProperty(ctx, tenantID, prop.ID); err != nil {
		return nil, nil, fmt.Errorf("linking user to property: %w", err)
	}

	now := s.now()
	rec, err := s.Store.CreateLedger(ctx, &models.TenantRecord{
		ID:             tenantID,
		PropertyID:     prop.ID,
		CurrentDeposit: prop.SecurityDeposit,
		// Backdated so the very first cycle counts as unpaid.
		LastPaymentDate: now.AddDate(0, 0, -backdateDays),
		MoveInDate:      now,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating tenant ledger: %w", err)
	}

	s.Log.WithFields(logrus.Fields{
		"tenant_id":   tenantID,
		"property_id": prop.ID,
	}).Info("tenant linked to property")
	return rec, prop, nil
}

// Unlink deletes the tenant's ledger and clears their linkage. Irreversible
// and unconditional: outstanding fines are not reconciled, and unlinking an
// unlinked tenant is a no-op rather than an error.
func (s *LedgerService) Unlink(ctx context.Context, tenantID string) error {
	if err := s.Users.ClearLinkedProperty(ctx, tenantID); err != nil {
		return fmt.Errorf("clearing user linkage: %w", err)
	}
	if err := s.Store.DeleteLedger(ctx, tenantID); err != nil {
		return fmt.Errorf("deleting tenant ledger: %w", err)
	}
	s.Log.WithField("tenant_id", tenantID).Info("tenant unlinked")
	return nil
}

// EstimateFine computes the fine the tenant would be charged right now.
// Read-only: it never touches the deposit or the histories, so it is safe to
// call concurrently with anything.
func (s *LedgerService) EstimateFine(ctx context.Context, tenantID string) (*FineEstimate, error) {
	rec, err := s.Store.GetLedger(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	prop, err := s.Properties.GetPropertyByID(ctx, rec.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("loading property %s: %w", rec.PropertyID, err)
	}

	return &FineEstimate{
		Result:   fines.Calculate(prop.DueDate, rec.LastPaymentDate, s.now()),
		Record:   rec,
		Property: prop,
	}, nil
}

// ProcessPayment charges the tenant's rent and settles any accrued fine, as
// one atomic unit: deduct the fine from the deposit (which may go negative),
// append a fine record when the fine is nonzero, prepend the payment
// transaction, and advance lastPaymentDate. The fine is recomputed inside
// the store's per-tenant exclusive scope, so two simultaneous payments can
// never both charge it.
func (s *LedgerService) ProcessPayment(ctx context.Context, tenantID string) (*PaymentResult, error) {
	rec, err := s.Store.GetLedger(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	prop, err := s.Properties.GetPropertyByID(ctx, rec.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("loading property %s: %w", rec.PropertyID, err)
	}

	now := s.now()
	// One label per call, shared by the fine record and the transaction.
	monthLabel := now.Format("January 2006")

	updated, err := s.Store.ApplyPayment(ctx, tenantID, func(cur *models.TenantRecord) (PaymentMutation, error) {
		res := fines.Calculate(prop.DueDate, cur.LastPaymentDate, now)

		mut := PaymentMutation{
			NewDeposit:      cur.CurrentDeposit - res.Fine,
			LastPaymentDate: now,
			Transaction: models.PaymentTransaction{
				ID:             uuid.NewString(),
				Date:           now,
				AmountPaid:     prop.RentAmount,
				FineDeducted:   res.Fine,
				RentMonth:      monthLabel,
				TransactionRef: "UPI" + strings.ToUpper(xid.New().String()),
			},
		}
		if res.Fine > 0 {
			mut.Fine = &models.FineRecord{
				ID:             uuid.NewString(),
				Date:           now,
				AmountDeducted: res.Fine,
				DaysLate:       res.DaysLate,
				RentMonth:      monthLabel,
			}
		}
		return mut, nil
	})
	if err != nil {
		return nil, err
	}

	txn := updated.PaymentHistory[0]
	s.Log.WithFields(logrus.Fields{
		"tenant_id":       tenantID,
		"fine_paid":       txn.FineDeducted,
		"new_deposit":     updated.CurrentDeposit,
		"transaction_ref": txn.TransactionRef,
	}).Info("rent payment processed")

	return &PaymentResult{
		FineCharged: txn.FineDeducted,
		NewDeposit:  updated.CurrentDeposit,
		Transaction: txn,
	}, nil
}
