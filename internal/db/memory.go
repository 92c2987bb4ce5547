package db

import (
	"context"
	"sync"
	"time"

	"payment-service/internal/payment"

	"github.com/google/uuid"
)

// MemoryStore is the in-memory payment.Store used when no database is
// configured (development, tests). Status transitions are atomic per row
// under the store mutex, matching the guarded-update semantics of the
// Postgres repository.
type MemoryStore struct {
	mu       sync.Mutex
	payments map[uuid.UUID]*payment.Payment
	order    []uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		payments: make(map[uuid.UUID]*payment.Payment),
	}
}

func (s *MemoryStore) Create(_ context.Context, p *payment.Payment) (*payment.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	stored := *p
	stored.ID = uuid.New()
	stored.RequestedAt = now
	stored.FinalizedAt = now

	s.payments[stored.ID] = &stored
	s.order = append(s.order, stored.ID)

	result := stored
	return &result, nil
}

func (s *MemoryStore) SaveAll(_ context.Context, payments []*payment.Payment) ([]*payment.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var saved []*payment.Payment
	for _, p := range payments {
		stored, ok := s.payments[p.ID]
		if !ok || stored.Status != payment.StatusPending {
			continue
		}

		stored.Status = p.Status
		stored.FinalizedAt = time.Now()

		result := *stored
		saved = append(saved, &result)
	}
	return saved, nil
}

func (s *MemoryStore) FindByStatus(_ context.Context, status payment.Status) ([]*payment.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payments []*payment.Payment
	for _, id := range s.order {
		if p := s.payments[id]; p.Status == status {
			result := *p
			payments = append(payments, &result)
		}
	}
	return payments, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*payment.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, payment.ErrNotFound
	}
	result := *p
	return &result, nil
}
