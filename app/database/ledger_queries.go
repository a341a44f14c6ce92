package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Rushirajkorde/Rent-Edge/app/models"
	"github.com/Rushirajkorde/Rent-Edge/app/services"
)

// LedgerStore is the Postgres implementation of the ledger persistence
// boundary. Per-tenant exclusion comes from holding a row lock
// (SELECT ... FOR UPDATE) on the tenant's record across the whole
// read-compute-write sequence; different tenants lock different rows and
// never contend.
type LedgerStore struct {
	DB *sql.DB
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{DB: db}
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const selectRecord = `SELECT tenant_id, property_id, current_deposit, last_payment_date, move_in_date
	FROM tenant_records WHERE tenant_id = $1`

func scanRecord(row *sql.Row) (*models.TenantRecord, error) {
	rec := &models.TenantRecord{}
	err := row.Scan(&rec.ID, &rec.PropertyID, &rec.CurrentDeposit, &rec.LastPaymentDate, &rec.MoveInDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.ErrNotLinked
	}
	if err != nil {
		return nil, fmt.Errorf("loading tenant record: %w", err)
	}
	return rec, nil
}

func loadHistories(ctx context.Context, q queryer, rec *models.TenantRecord) error {
	// Fine history stays chronological, payment history most-recent-first.
	rows, err := q.QueryContext(ctx, `SELECT id, date, amount_deducted, days_late, rent_month
		FROM fine_records WHERE tenant_id = $1 ORDER BY seq ASC`, rec.ID)
	if err != nil {
		return fmt.Errorf("loading fine history: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var f models.FineRecord
		if err := rows.Scan(&f.ID, &f.Date, &f.AmountDeducted, &f.DaysLate, &f.RentMonth); err != nil {
			return err
		}
		rec.FineHistory = append(rec.FineHistory, f)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	prows, err := q.QueryContext(ctx, `SELECT id, date, amount_paid, fine_deducted, rent_month, transaction_ref
		FROM payment_transactions WHERE tenant_id = $1 ORDER BY seq DESC`, rec.ID)
	if err != nil {
		return fmt.Errorf("loading payment history: %w", err)
	}
	defer prows.Close()
	for prows.Next() {
		var p models.PaymentTransaction
		if err := prows.Scan(&p.ID, &p.Date, &p.AmountPaid, &p.FineDeducted, &p.RentMonth, &p.TransactionRef); err != nil {
			return err
		}
		rec.PaymentHistory = append(rec.PaymentHistory, p)
	}
	return prows.Err()
}

func (s *LedgerStore) GetLedger(ctx context.Context, tenantID string) (*models.TenantRecord, error) {
	rec, err := scanRecord(s.DB.QueryRowContext(ctx, selectRecord, tenantID))
	if err != nil {
		return nil, err
	}
	if err := loadHistories(ctx, s.DB, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// CreateLedger inserts the record unless the tenant already has one, then
// returns whichever record is current. The ON CONFLICT guard is what makes
// linking idempotent even under racing connect requests.
func (s *LedgerStore) CreateLedger(ctx context.Context, rec *models.TenantRecord) (*models.TenantRecord, error) {
	_, err := s.DB.ExecContext(ctx, `INSERT INTO tenant_records (tenant_id, property_id, current_deposit, last_payment_date, move_in_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id) DO NOTHING`,
		rec.ID, rec.PropertyID, rec.CurrentDeposit, rec.LastPaymentDate, rec.MoveInDate,
	)
	if err != nil {
		return nil, fmt.Errorf("creating tenant record: %w", err)
	}
	return s.GetLedger(ctx, rec.ID)
}

// ApplyPayment runs decide against the current record while the tenant's row
// is locked, then persists the returned mutation in the same transaction.
// Either everything commits or nothing does.
func (s *LedgerStore) ApplyPayment(ctx context.Context, tenantID string, decide func(rec *models.TenantRecord) (services.PaymentMutation, error)) (*models.TenantRecord, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning payment transaction: %w", err)
	}
	defer tx.Rollback()

	rec, err := scanRecord(tx.QueryRowContext(ctx, selectRecord+" FOR UPDATE", tenantID))
	if err != nil {
		return nil, conflictOr(err)
	}
	if err := loadHistories(ctx, tx, rec); err != nil {
		return nil, err
	}

	mut, err := decide(rec)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `UPDATE tenant_records SET current_deposit = $1, last_payment_date = $2 WHERE tenant_id = $3`,
		mut.NewDeposit, mut.LastPaymentDate, tenantID)
	if err != nil {
		return nil, conflictOr(fmt.Errorf("updating tenant record: %w", err))
	}

	if mut.Fine != nil {
		_, err = tx.ExecContext(ctx, `INSERT INTO fine_records (id, tenant_id, date, amount_deducted, days_late, rent_month)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			mut.Fine.ID, tenantID, mut.Fine.Date, mut.Fine.AmountDeducted, mut.Fine.DaysLate, mut.Fine.RentMonth)
		if err != nil {
			return nil, conflictOr(fmt.Errorf("inserting fine record: %w", err))
		}
	}

	txn := mut.Transaction
	_, err = tx.ExecContext(ctx, `INSERT INTO payment_transactions (id, tenant_id, date, amount_paid, fine_deducted, rent_month, transaction_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		txn.ID, tenantID, txn.Date, txn.AmountPaid, txn.FineDeducted, txn.RentMonth, txn.TransactionRef)
	if err != nil {
		return nil, conflictOr(fmt.Errorf("inserting payment transaction: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return nil, conflictOr(fmt.Errorf("committing payment: %w", err))
	}

	rec.CurrentDeposit = mut.NewDeposit
	rec.LastPaymentDate = mut.LastPaymentDate
	if mut.Fine != nil {
		rec.FineHistory = append(rec.FineHistory, *mut.Fine)
	}
	rec.PaymentHistory = append([]models.PaymentTransaction{txn}, rec.PaymentHistory...)
	return rec, nil
}

func (s *LedgerStore) DeleteLedger(ctx context.Context, tenantID string) error {
	// Fine and payment rows go with the record via ON DELETE CASCADE.
	// Deleting a missing record is deliberately not an error.
	_, err := s.DB.ExecContext(ctx, `DELETE FROM tenant_records WHERE tenant_id = $1`, tenantID)
	if err != nil {
		return fmt.Errorf("deleting tenant record: %w", err)
	}
	return nil
}

// conflictOr maps Postgres lock/serialization failures onto the service's
// retryable conflict error and passes everything else through.
func conflictOr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01", "55P03": // serialization, deadlock, lock not available
			return fmt.Errorf("%w: %v", services.ErrConflict, err)
		}
	}
	return err
}
