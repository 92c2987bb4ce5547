package payment

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
)

// IsTerminal reports whether no further core-driven transition happens.
func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusFailed || s == StatusCancelled
}

type Payment struct {
	ID          uuid.UUID `json:"id"`
	Amount      float64   `json:"amount"`
	RiderID     int       `json:"riderId"`
	Status      Status    `json:"status"`
	RequestedAt time.Time `json:"requestedAt"`
	FinalizedAt time.Time `json:"finalizedAt"`
}

func New(amount float64, riderID int, status Status) *Payment {
	return &Payment{
		Amount:  amount,
		RiderID: riderID,
		Status:  status,
	}
}
