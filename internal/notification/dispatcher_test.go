package notification_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"payment-service/internal/notification"
	"payment-service/internal/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type recordingMailer struct {
	err      error
	to       []string
	subjects []string
	bodies   []string
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.to = append(m.to, to)
	m.subjects = append(m.subjects, subject)
	m.bodies = append(m.bodies, body)
	return m.err
}

func terminalPayment(status payment.Status) *payment.Payment {
	return &payment.Payment{
		ID:          uuid.New(),
		Amount:      25.5,
		RiderID:     42,
		Status:      status,
		RequestedAt: time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC),
		FinalizedAt: time.Date(2026, time.June, 15, 12, 0, 1, 0, time.UTC),
	}
}

func TestNotify_Paid(t *testing.T) {
	mailer := &recordingMailer{}
	dispatcher := notification.NewDispatcher(mailer, "example.com", slog.Default())

	p := terminalPayment(payment.StatusPaid)
	dispatcher.Notify(context.Background(), p)

	assert.Equal(t, []string{"rider42@example.com"}, mailer.to)
	assert.Equal(t, []string{"Charge processed successfully"}, mailer.subjects)
	assert.Contains(t, mailer.bodies[0], "25.50")
	assert.Contains(t, mailer.bodies[0], p.ID.String())
	assert.Contains(t, mailer.bodies[0], "2026-06-15 12:00:01")
}

func TestNotify_Failed(t *testing.T) {
	mailer := &recordingMailer{}
	dispatcher := notification.NewDispatcher(mailer, "example.com", slog.Default())

	p := terminalPayment(payment.StatusFailed)
	dispatcher.Notify(context.Background(), p)

	assert.Equal(t, []string{"Charge processing failed"}, mailer.subjects)
	assert.Contains(t, mailer.bodies[0], "25.50")
	assert.Contains(t, mailer.bodies[0], p.ID.String())
	assert.Contains(t, mailer.bodies[0], "FAILED")
	assert.Contains(t, mailer.bodies[0], "verify your card details")
}

func TestNotify_SkipsNonTerminalOutcomes(t *testing.T) {
	mailer := &recordingMailer{}
	dispatcher := notification.NewDispatcher(mailer, "example.com", slog.Default())

	dispatcher.Notify(context.Background(), terminalPayment(payment.StatusPending))
	dispatcher.Notify(context.Background(), terminalPayment(payment.StatusCancelled))

	assert.Empty(t, mailer.to)
}

func TestNotify_SwallowsMailerErrors(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	dispatcher := notification.NewDispatcher(mailer, "example.com", slog.Default())

	assert.NotPanics(t, func() {
		dispatcher.Notify(context.Background(), terminalPayment(payment.StatusPaid))
	})
	assert.Len(t, mailer.to, 1)
}

func TestRecipient_Deterministic(t *testing.T) {
	dispatcher := notification.NewDispatcher(&recordingMailer{}, "", slog.Default())

	first := dispatcher.Recipient(7)
	second := dispatcher.Recipient(7)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "rider7@")
}
