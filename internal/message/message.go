package message

import (
	"payment-service/internal/card"
	"payment-service/internal/payment"

	"github.com/google/uuid"
)

// ChargeRequest is the charge intake message. With card data attached the
// charge executes immediately; without it the payment is enqueued for the
// next drain.
type ChargeRequest struct {
	Amount  float64    `json:"amount"`
	RiderID int        `json:"riderId"`
	Card    *card.Data `json:"card,omitempty"`
}

// PaymentEvent announces a processed payment after a queue drain.
type PaymentEvent struct {
	ID      uuid.UUID      `json:"id"`
	RiderID int            `json:"riderId"`
	Amount  float64        `json:"amount"`
	Status  payment.Status `json:"status"`
}
