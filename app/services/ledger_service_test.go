package services_test

import (
	"context"
	"database/sql"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rushirajkorde/Rent-Edge/app/database"
	"github.com/Rushirajkorde/Rent-Edge/app/models"
	"github.com/Rushirajkorde/Rent-Edge/app/services"
)

type stubProperties struct {
	byID   map[string]*models.Property
	byCode map[string]*models.Property
}

func (s *stubProperties) GetPropertyByID(_ context.Context, id string) (*models.Property, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubProperties) GetPropertyByCode(_ context.Context, code string) (*models.Property, error) {
	if p, ok := s.byCode[code]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

type stubUsers struct {
	mu     sync.Mutex
	linked map[string]string
}

func (s *stubUsers) SetLinkedProperty(_ context.Context, userID, propertyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.linked[userID] = propertyID
	return nil
}

func (s *stubUsers) ClearLinkedProperty(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.linked, userID)
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func testProperty() *models.Property {
	return &models.Property{
		ID:              "prop-1",
		OwnerID:         "owner-1",
		Name:            "Lakeview 2B",
		Address:         "14 Lakeview Road",
		OwnerUpiID:      "owner@upi",
		RentAmount:      15000,
		SecurityDeposit: 50000,
		DueDate:         date(2025, time.January, 10),
		PropertyCode:    "AB12CD",
	}
}

func newTestService(now time.Time, props ...*models.Property) *services.LedgerService {
	dir := &stubProperties{
		byID:   map[string]*models.Property{},
		byCode: map[string]*models.Property{},
	}
	for _, p := range props {
		dir.byID[p.ID] = p
		dir.byCode[p.PropertyCode] = p
	}

	logg := logrus.New()
	logg.SetOutput(io.Discard)

	svc := services.NewLedgerService(
		database.NewMemoryLedgerStore(),
		dir,
		&stubUsers{linked: map[string]string{}},
		logg,
	)
	svc.Now = func() time.Time { return now }
	return svc
}

func TestLinkCreatesBackdatedLedger(t *testing.T) {
	now := date(2025, time.January, 13)
	svc := newTestService(now, testProperty())

	rec, prop, err := svc.Link(context.Background(), "tenant-1", "ab12cd")
	require.NoError(t, err)
	assert.Equal(t, "prop-1", prop.ID)
	assert.Equal(t, int64(50000), rec.CurrentDeposit)
	assert.Equal(t, now.AddDate(0, 0, -30), rec.LastPaymentDate)
	assert.Equal(t, now, rec.MoveInDate)
	assert.Empty(t, rec.FineHistory)
	assert.Empty(t, rec.PaymentHistory)
}

func TestLinkInvalidCode(t *testing.T) {
	svc := newTestService(date(2025, time.January, 13), testProperty())

	_, _, err := svc.Link(context.Background(), "tenant-1", "ZZZZZZ")
	assert.ErrorIs(t, err, services.ErrInvalidCode)
}

func TestLinkIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(date(2025, time.January, 13), testProperty())

	_, _, err := svc.Link(ctx, "tenant-1", "AB12CD")
	require.NoError(t, err)

	result, err := svc.ProcessPayment(ctx, "tenant-1")
	require.NoError(t, err)
	require.Equal(t, int64(400), result.FineCharged)

	// Re-linking must not reset the deposit or wipe history.
	rec, _, err := svc.Link(ctx, "tenant-1", "AB12CD")
	require.NoError(t, err)
	assert.Equal(t, int64(49600), rec.CurrentDeposit)
	assert.Len(t, rec.FineHistory, 1)
	assert.Len(t, rec.PaymentHistory, 1)
}

func TestLinkDifferentPropertyStartsFreshLedger(t *testing.T) {
	ctx := context.Background()
	now := date(2025, time.January, 13)
	second := &models.Property{
		ID:              "prop-2",
		OwnerID:         "owner-2",
		Name:            "Hillside 1A",
		Address:         "3 Hillside Lane",
		OwnerUpiID:      "hillside@upi",
		RentAmount:      18000,
		SecurityDeposit: 80000,
		DueDate:         date(2025, time.January, 20),
		PropertyCode:    "ZZ99XX",
	}
	svc := newTestService(now, testProperty(), second)

	_, _, err := svc.Link(ctx, "tenant-1", "AB12CD")
	require.NoError(t, err)
	_, err = svc.ProcessPayment(ctx, "tenant-1")
	require.NoError(t, err)

	// Moving to another property abandons the old ledger entirely: the
	// record returned must belong to the new property, carry its deposit,
	// and start with empty histories.
	rec, prop, err := svc.Link(ctx, "tenant-1", "ZZ99XX")
	require.NoError(t, err)
	assert.Equal(t, "prop-2", prop.ID)
	assert.Equal(t, "prop-2", rec.PropertyID)
	assert.Equal(t, int64(80000), rec.CurrentDeposit)
	assert.Equal(t, now.AddDate(0, 0, -30), rec.LastPaymentDate)
	assert.Empty(t, rec.FineHistory)
	assert.Empty(t, rec.PaymentHistory)

	// Estimates now run against the new property's due date.
	est, err := svc.EstimateFine(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, "prop-2", est.Property.ID)
	assert.Zero(t, est.Fine)
	assert.Equal(t, 1, est.CycleDay)
}

func TestEstimateFineIsReadOnly(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(date(2025, time.January, 13), testProperty())

	_, _, err := svc.Link(ctx, "tenant-1", "AB12CD")
	require.NoError(t, err)

	before, err := svc.Store.GetLedger(ctx, "tenant-1")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		est, err := svc.EstimateFine(ctx, "tenant-1")
		require.NoError(t, err)
		assert.Equal(t, int64(400), est.Fine)
		assert.Equal(t, 3, est.DaysLate)
		assert.Equal(t, 4, est.CycleDay)
	}

	after, err := svc.Store.GetLedger(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestEstimateFineNotLinked(t *testing.T) {
	svc := newTestService(date(2025, time.January, 13), testProperty())

	_, err := svc.EstimateFine(context.Background(), "stranger")
	assert.ErrorIs(t, err, services.ErrNotLinked)
}

func TestProcessPaymentEndToEnd(t *testing.T) {
	ctx := context.Background()
	now := date(2025, time.January, 13)
	svc := newTestService(now, testProperty())

	_, _, err := svc.Link(ctx, "tenant-1", "AB12CD")
	require.NoError(t, err)

	result, err := svc.ProcessPayment(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, int64(400), result.FineCharged)
	assert.Equal(t, int64(49600), result.NewDeposit)

	rec, err := svc.Store.GetLedger(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, now, rec.LastPaymentDate)

	require.Len(t, rec.FineHistory, 1)
	fine := rec.FineHistory[0]
	assert.Equal(t, int64(400), fine.AmountDeducted)
	assert.Equal(t, 3, fine.DaysLate)
	assert.Equal(t, "January 2025", fine.RentMonth)

	require.Len(t, rec.PaymentHistory, 1)
	txn := rec.PaymentHistory[0]
	assert.Equal(t, int64(15000), txn.AmountPaid)
	assert.Equal(t, int64(400), txn.FineDeducted)
	assert.Equal(t, "January 2025", txn.RentMonth)
	assert.True(t, strings.HasPrefix(txn.TransactionRef, "UPI"))
}

func TestProcessPaymentNotLinked(t *testing.T) {
	svc := newTestService(date(2025, time.January, 13), testProperty())

	_, err := svc.ProcessPayment(context.Background(), "stranger")
	assert.ErrorIs(t, err, services.ErrNotLinked)
}

func TestRepeatPaymentChargesNoFurtherFine(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(date(2025, time.January, 13), testProperty())

	_, _, err := svc.Link(ctx, "tenant-1", "AB12CD")
	require.NoError(t, err)

	first, err := svc.ProcessPayment(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, int64(400), first.FineCharged)

	// lastPaymentDate now sits on or after the due date, so the cycle is
	// settled and further payments carry no fine.
	second, err := svc.ProcessPayment(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Zero(t, second.FineCharged)

	rec, err := svc.Store.GetLedger(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Len(t, rec.FineHistory, 1)
	assert.Len(t, rec.PaymentHistory, 2)
	assert.Zero(t, rec.PaymentHistory[0].FineDeducted) // most recent first
	assert.Equal(t, int64(400), rec.PaymentHistory[1].FineDeducted)
}

func TestDepositBalanceInvariant(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(date(2025, time.January, 13), testProperty())

	_, _, err := svc.Link(ctx, "tenant-1", "AB12CD")
	require.NoError(t, err)
	initial := int64(50000)

	for i := 0; i < 4; i++ {
		_, err := svc.ProcessPayment(ctx, "tenant-1")
		require.NoError(t, err)

		rec, err := svc.Store.GetLedger(ctx, "tenant-1")
		require.NoError(t, err)
		assert.Equal(t, initial-rec.TotalFines(), rec.CurrentDeposit)
	}
}

func TestHistoriesAppendOnly(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(date(2025, time.January, 13), testProperty())

	_, _, err := svc.Link(ctx, "tenant-1", "AB12CD")
	require.NoError(t, err)

	var fineLens, payLens []int
	var firstFine *models.FineRecord
	for i := 0; i < 3; i++ {
		_, err := svc.ProcessPayment(ctx, "tenant-1")
		require.NoError(t, err)

		rec, err := svc.Store.GetLedger(ctx, "tenant-1")
		require.NoError(t, err)
		fineLens = append(fineLens, len(rec.FineHistory))
		payLens = append(payLens, len(rec.PaymentHistory))

		if firstFine == nil && len(rec.FineHistory) > 0 {
			f := rec.FineHistory[0]
			firstFine = &f
		} else if firstFine != nil {
			assert.Equal(t, *firstFine, rec.FineHistory[0], "existing fine entries must never change")
		}
	}

	for i := 1; i < len(fineLens); i++ {
		assert.GreaterOrEqual(t, fineLens[i], fineLens[i-1])
		assert.Greater(t, payLens[i], payLens[i-1])
	}
}

func TestUnlinkDeletesLedgerAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(date(2025, time.January, 13), testProperty())

	_, _, err := svc.Link(ctx, "tenant-1", "AB12CD")
	require.NoError(t, err)

	require.NoError(t, svc.Unlink(ctx, "tenant-1"))

	_, err = svc.EstimateFine(ctx, "tenant-1")
	assert.ErrorIs(t, err, services.ErrNotLinked)

	// Unlinking an already-unlinked tenant is a no-op, not an error.
	assert.NoError(t, svc.Unlink(ctx, "tenant-1"))
}

func TestConcurrentPaymentsChargeFineOnce(t *testing.T) {
	ctx := context.Background()
	due := date(2025, time.January, 10)
	prop := testProperty()
	prop.DueDate = due

	// One day late: a pending fine of exactly 100.
	svc := newTestService(due.AddDate(0, 0, 1), prop)

	_, _, err := svc.Link(ctx, "tenant-1", "AB12CD")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]int64, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.ProcessPayment(ctx, "tenant-1")
			if assert.NoError(t, err) {
				results[i] = res.FineCharged
			}
		}(i)
	}
	wg.Wait()

	// Exactly one of the two payments may carry the fine.
	assert.Equal(t, int64(100), results[0]+results[1])

	rec, err := svc.Store.GetLedger(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, int64(49900), rec.CurrentDeposit, "deposit must be reduced by 100, never 200")
	require.Len(t, rec.FineHistory, 1)
	assert.Equal(t, int64(100), rec.FineHistory[0].AmountDeducted)
	assert.Len(t, rec.PaymentHistory, 2)
}
