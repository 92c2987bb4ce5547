package notification

import (
	"context"
	"fmt"
	"log/slog"

	"payment-service/internal/payment"

	"github.com/VictoriaMetrics/metrics"
)

const (
	subjectPaid   = "Charge processed successfully"
	subjectFailed = "Charge processing failed"

	defaultRecipientDomain = "riders.bikerental.example"
)

var (
	notifySentCounter    = metrics.GetOrCreateCounter(`payment_notifications_total{result="sent"}`)
	notifyFailedCounter  = metrics.GetOrCreateCounter(`payment_notifications_total{result="failed"}`)
	notifySkippedCounter = metrics.GetOrCreateCounter(`payment_notifications_total{result="skipped"}`)
)

// Mailer is the outbound email capability the dispatcher depends on.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Dispatcher composes outcome-specific messages and sends them best-effort:
// failures are logged and never surface to the caller.
type Dispatcher struct {
	mailer          Mailer
	recipientDomain string
	logger          *slog.Logger
}

func NewDispatcher(mailer Mailer, recipientDomain string, logger *slog.Logger) *Dispatcher {
	if recipientDomain == "" {
		recipientDomain = defaultRecipientDomain
	}
	return &Dispatcher{
		mailer:          mailer,
		recipientDomain: recipientDomain,
		logger:          logger,
	}
}

// Notify emails the rider about a terminal payment outcome. Statuses other
// than PAID and FAILED are not dispatched.
func (d *Dispatcher) Notify(ctx context.Context, p *payment.Payment) {
	var subject, body string

	switch p.Status {
	case payment.StatusPaid:
		subject = subjectPaid
		body = fmt.Sprintf(
			"Your charge of %.2f was processed successfully.\nPayment ID: %s\nFinalized at: %s",
			p.Amount, p.ID, p.FinalizedAt.Format("2006-01-02 15:04:05"),
		)
	case payment.StatusFailed:
		subject = subjectFailed
		body = fmt.Sprintf(
			"Your charge of %.2f could not be processed.\nPayment ID: %s\nStatus: %s\nPlease verify your card details and try again.",
			p.Amount, p.ID, p.Status,
		)
	default:
		notifySkippedCounter.Inc()
		return
	}

	to := d.Recipient(p.RiderID)

	if err := d.mailer.Send(ctx, to, subject, body); err != nil {
		d.logger.ErrorContext(ctx, "Error sending notification", "paymentId", p.ID, "to", to, "error", err)
		notifyFailedCounter.Inc()
		return
	}

	d.logger.InfoContext(ctx, "Notification sent", "paymentId", p.ID, "to", to)
	notifySentCounter.Inc()
}

// Recipient derives the synthetic rider address used for notifications.
func (d *Dispatcher) Recipient(riderID int) string {
	return fmt.Sprintf("rider%d@%s", riderID, d.recipientDomain)
}
