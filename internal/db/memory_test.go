package db_test

import (
	"context"
	"testing"

	"payment-service/internal/db"
	"payment-service/internal/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_CreateAssignsID(t *testing.T) {
	store := db.NewMemoryStore()

	created, err := store.Create(context.Background(), payment.New(10, 1, payment.StatusPending))
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.RequestedAt.IsZero())
}

func TestMemoryStore_FindByIDNotFound(t *testing.T) {
	store := db.NewMemoryStore()

	_, err := store.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, payment.ErrNotFound)
}

func TestMemoryStore_SaveAllGuardsPendingTransitions(t *testing.T) {
	store := db.NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, payment.New(10, 1, payment.StatusPending))
	assert.NoError(t, err)

	created.Status = payment.StatusPaid
	saved, err := store.SaveAll(ctx, []*payment.Payment{created})
	assert.NoError(t, err)
	assert.Len(t, saved, 1)

	created.Status = payment.StatusFailed
	saved, err = store.SaveAll(ctx, []*payment.Payment{created})
	assert.NoError(t, err)
	assert.Empty(t, saved)

	stored, err := store.FindByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, payment.StatusPaid, stored.Status)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := db.NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, payment.New(10, 1, payment.StatusPending))
	assert.NoError(t, err)

	// mutating the returned value must not leak into the store
	created.Status = payment.StatusPaid

	stored, err := store.FindByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, payment.StatusPending, stored.Status)
}
