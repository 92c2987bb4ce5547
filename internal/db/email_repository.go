package db

import (
	"context"

	"payment-service/internal/mailer"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// EmailRepository persists the sent-email log. Implements mailer.Archive.
type EmailRepository struct {
	pool *pgxpool.Pool
}

func NewEmailRepository(pool *pgxpool.Pool) *EmailRepository {
	return &EmailRepository{pool: pool}
}

func (r *EmailRepository) Save(ctx context.Context, email *mailer.SentEmail) error {
	query := `INSERT INTO email (id, recipient, subject, body, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, email.ID, email.To, email.Subject, email.Body, email.CreatedAt)
	return errors.Wrap(err, "inserting email record")
}
