package payment

import (
	"context"

	"github.com/google/uuid"
)

// Store is the narrow persistence contract the payment pipeline depends on.
//
// Create inserts a new row and assigns ID and RequestedAt. SaveAll finalizes
// a batch of payments and only transitions rows that are still PENDING; it
// returns the rows it actually transitioned, so a concurrent drain that
// already claimed a row makes that row drop out of the result. FindByID
// returns ErrNotFound when no row matches.
type Store interface {
	Create(ctx context.Context, p *Payment) (*Payment, error)
	SaveAll(ctx context.Context, payments []*Payment) ([]*Payment, error)
	FindByStatus(ctx context.Context, status Status) ([]*Payment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
}
