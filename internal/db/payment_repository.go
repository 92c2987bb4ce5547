package db

import (
	"context"
	"time"

	"payment-service/internal/payment"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// PaymentRepository is the Postgres implementation of payment.Store.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) (*payment.Payment, error) {
	now := time.Now()
	p.ID = uuid.New()
	p.RequestedAt = now
	p.FinalizedAt = now

	query := `INSERT INTO payment (id, amount, rider_id, status, requested_at, finalized_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, p.ID, p.Amount, p.RiderID, p.Status, p.RequestedAt, p.FinalizedAt)
	if err != nil {
		return nil, errors.Wrap(err, "inserting payment")
	}
	return p, nil
}

// SaveAll finalizes a batch in one transaction. Each update is guarded on
// the row still being PENDING, so a row claimed by a concurrent drain is
// skipped; only the rows actually transitioned are returned.
func (r *PaymentRepository) SaveAll(ctx context.Context, payments []*payment.Payment) ([]*payment.Payment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "starting transaction")
	}
	defer tx.Rollback(ctx)

	query := `UPDATE payment SET status = $2, finalized_at = $3
	          WHERE id = $1 AND status = $4`

	var saved []*payment.Payment
	for _, p := range payments {
		p.FinalizedAt = time.Now()
		tag, err := tx.Exec(ctx, query, p.ID, p.Status, p.FinalizedAt, payment.StatusPending)
		if err != nil {
			return nil, errors.Wrap(err, "updating payment")
		}
		if tag.RowsAffected() > 0 {
			saved = append(saved, p)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "committing transaction")
	}
	return saved, nil
}

func (r *PaymentRepository) FindByStatus(ctx context.Context, status payment.Status) ([]*payment.Payment, error) {
	query := `SELECT id, amount, rider_id, status, requested_at, finalized_at
	          FROM payment WHERE status = $1`
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, errors.Wrap(err, "querying payments by status")
	}
	defer rows.Close()

	var payments []*payment.Payment
	for rows.Next() {
		var p payment.Payment
		if err := rows.Scan(&p.ID, &p.Amount, &p.RiderID, &p.Status, &p.RequestedAt, &p.FinalizedAt); err != nil {
			return nil, errors.Wrap(err, "scanning payment row")
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	query := `SELECT id, amount, rider_id, status, requested_at, finalized_at
	          FROM payment WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)

	var p payment.Payment
	err := row.Scan(&p.ID, &p.Amount, &p.RiderID, &p.Status, &p.RequestedAt, &p.FinalizedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payment.ErrNotFound
		}
		return nil, errors.Wrap(err, "querying payment by id")
	}
	return &p, nil
}
