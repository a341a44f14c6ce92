package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rushirajkorde/Rent-Edge/app/models"
	"github.com/Rushirajkorde/Rent-Edge/app/services"
)

func sampleRecord(tenantID string) *models.TenantRecord {
	return &models.TenantRecord{
		ID:              tenantID,
		PropertyID:      "prop-1",
		CurrentDeposit:  50000,
		LastPaymentDate: time.Date(2024, time.December, 14, 0, 0, 0, 0, time.Local),
		MoveInDate:      time.Date(2025, time.January, 13, 0, 0, 0, 0, time.Local),
	}
}

func TestMemoryStoreGetReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryLedgerStore()

	_, err := store.CreateLedger(ctx, sampleRecord("tenant-1"))
	require.NoError(t, err)

	rec, err := store.GetLedger(ctx, "tenant-1")
	require.NoError(t, err)

	// Mutating the snapshot must not leak into the store.
	rec.CurrentDeposit = 0
	rec.FineHistory = append(rec.FineHistory, models.FineRecord{ID: "bogus"})

	fresh, err := store.GetLedger(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, int64(50000), fresh.CurrentDeposit)
	assert.Empty(t, fresh.FineHistory)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryLedgerStore()

	_, err := store.GetLedger(context.Background(), "nobody")
	assert.ErrorIs(t, err, services.ErrNotLinked)
}

func TestMemoryStoreCreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryLedgerStore()

	first, err := store.CreateLedger(ctx, sampleRecord("tenant-1"))
	require.NoError(t, err)

	again := sampleRecord("tenant-1")
	again.CurrentDeposit = 99999
	second, err := store.CreateLedger(ctx, again)
	require.NoError(t, err)

	assert.Equal(t, first.CurrentDeposit, second.CurrentDeposit, "existing record must win")
}

func TestMemoryStoreDeleteMissingIsNoError(t *testing.T) {
	store := NewMemoryLedgerStore()
	assert.NoError(t, store.DeleteLedger(context.Background(), "nobody"))
}

func TestMemoryStoreApplyPaymentSerializesPerTenant(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryLedgerStore()

	_, err := store.CreateLedger(ctx, sampleRecord("tenant-1"))
	require.NoError(t, err)

	// Each call adds one transaction and drops the deposit by 100 based on
	// the state it observes. Interleaving would lose updates.
	const workers = 25
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.ApplyPayment(ctx, "tenant-1", func(rec *models.TenantRecord) (services.PaymentMutation, error) {
				return services.PaymentMutation{
					NewDeposit:      rec.CurrentDeposit - 100,
					LastPaymentDate: rec.LastPaymentDate,
					Transaction:     models.PaymentTransaction{ID: "txn", Date: time.Now(), AmountPaid: 15000},
				}, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rec, err := store.GetLedger(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, int64(50000-100*workers), rec.CurrentDeposit)
	assert.Len(t, rec.PaymentHistory, workers)
}

func TestMemoryStoreApplyPaymentDecideErrorLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryLedgerStore()

	_, err := store.CreateLedger(ctx, sampleRecord("tenant-1"))
	require.NoError(t, err)

	_, err = store.ApplyPayment(ctx, "tenant-1", func(rec *models.TenantRecord) (services.PaymentMutation, error) {
		return services.PaymentMutation{}, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	rec, err := store.GetLedger(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, int64(50000), rec.CurrentDeposit)
	assert.Empty(t, rec.PaymentHistory)
}
