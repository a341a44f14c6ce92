package database

import (
	"context"
	"sync"

	"github.com/Rushirajkorde/Rent-Edge/app/models"
	"github.com/Rushirajkorde/Rent-Edge/app/services"
)

// MemoryLedgerStore keeps tenant ledgers in a process-local map. It honors
// the same boundary contract as the Postgres store: ApplyPayment is
// exclusive per tenant, and callers only ever see snapshots, never the
// stored slices. Used by tests and small single-process deployments.
type MemoryLedgerStore struct {
	mu      sync.Mutex
	records map[string]*models.TenantRecord
	locks   map[string]*sync.Mutex
}

func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{
		records: make(map[string]*models.TenantRecord),
		locks:   make(map[string]*sync.Mutex),
	}
}

// tenantLock returns the mutex serializing mutations for one tenant.
// Different tenants get different mutexes and never contend.
func (s *MemoryLedgerStore) tenantLock(tenantID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[tenantID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[tenantID] = l
	}
	return l
}

func (s *MemoryLedgerStore) get(tenantID string) (*models.TenantRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[tenantID]
	return rec, ok
}

func (s *MemoryLedgerStore) GetLedger(ctx context.Context, tenantID string) (*models.TenantRecord, error) {
	rec, ok := s.get(tenantID)
	if !ok {
		return nil, services.ErrNotLinked
	}
	return rec.Clone(), nil
}

func (s *MemoryLedgerStore) CreateLedger(ctx context.Context, rec *models.TenantRecord) (*models.TenantRecord, error) {
	lock := s.tenantLock(rec.ID)
	lock.Lock()
	defer lock.Unlock()

	if existing, ok := s.get(rec.ID); ok {
		return existing.Clone(), nil
	}
	s.mu.Lock()
	s.records[rec.ID] = rec.Clone()
	s.mu.Unlock()
	return rec.Clone(), nil
}

func (s *MemoryLedgerStore) ApplyPayment(ctx context.Context, tenantID string, decide func(rec *models.TenantRecord) (services.PaymentMutation, error)) (*models.TenantRecord, error) {
	lock := s.tenantLock(tenantID)
	lock.Lock()
	defer lock.Unlock()

	stored, ok := s.get(tenantID)
	if !ok {
		return nil, services.ErrNotLinked
	}

	mut, err := decide(stored.Clone())
	if err != nil {
		return nil, err
	}

	updated := stored.Clone()
	updated.CurrentDeposit = mut.NewDeposit
	updated.LastPaymentDate = mut.LastPaymentDate
	if mut.Fine != nil {
		updated.FineHistory = append(updated.FineHistory, *mut.Fine)
	}
	updated.PaymentHistory = append([]models.PaymentTransaction{mut.Transaction}, updated.PaymentHistory...)

	s.mu.Lock()
	s.records[tenantID] = updated
	s.mu.Unlock()
	return updated.Clone(), nil
}

func (s *MemoryLedgerStore) DeleteLedger(ctx context.Context, tenantID string) error {
	lock := s.tenantLock(tenantID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	delete(s.records, tenantID)
	s.mu.Unlock()
	return nil
}
