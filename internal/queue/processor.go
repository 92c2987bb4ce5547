package queue

import (
	"context"
	"log/slog"
	"time"

	"payment-service/internal/card"
	"payment-service/internal/charge"
	"payment-service/internal/payment"

	"github.com/VictoriaMetrics/metrics"
)

var (
	drainEmptyCounter     = metrics.GetOrCreateCounter(`payment_queue_drain_total{result="empty"}`)
	drainSuccessCounter   = metrics.GetOrCreateCounter(`payment_queue_drain_total{result="success"}`)
	drainErrorCounter     = metrics.GetOrCreateCounter(`payment_queue_drain_total{result="error"}`)
	drainProcessedCounter = metrics.GetOrCreateCounter(`payment_queue_processed_total`)

	drainDurationHistogram = metrics.GetOrCreateHistogram(`payment_queue_drain_duration_milliseconds`)
)

// Notifier delivers a best-effort outcome notification for one payment.
type Notifier interface {
	Notify(ctx context.Context, p *payment.Payment)
}

// Publisher emits processed-payment events after a drain. Optional.
type Publisher interface {
	Publish(ctx context.Context, payments []*payment.Payment) error
}

// Processor owns the deferred charge path: enqueue persists a PENDING
// payment immediately, Drain batch-resolves everything still pending. The
// queue path carries no card data, so outcomes always come from the
// simulated strategy.
type Processor struct {
	store     payment.Store
	strategy  charge.Strategy
	notifier  Notifier
	publisher Publisher
	logger    *slog.Logger
}

func NewProcessor(store payment.Store, strategy charge.Strategy, notifier Notifier, logger *slog.Logger) *Processor {
	return &Processor{
		store:    store,
		strategy: strategy,
		notifier: notifier,
		logger:   logger,
	}
}

// WithPublisher attaches an event publisher for processed payments.
func (p *Processor) WithPublisher(publisher Publisher) *Processor {
	p.publisher = publisher
	return p
}

// Enqueue persists a PENDING payment. Cards are not captured on this path;
// only amount and rider presence are checked.
func (p *Processor) Enqueue(ctx context.Context, amount float64, riderID int) (*payment.Payment, error) {
	if amount <= 0 {
		return nil, payment.ErrInvalidAmount
	}
	if riderID <= 0 {
		return nil, payment.ErrMissingRider
	}

	saved, err := p.store.Create(ctx, payment.New(amount, riderID, payment.StatusPending))
	if err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "Payment enqueued", "id", saved.ID, "riderId", saved.RiderID)
	return saved, nil
}

// Drain resolves every PENDING payment to a terminal status, saves the batch
// and notifies each rider best-effort. It returns the payments it actually
// transitioned. Rows claimed by a concurrent drain in the meantime are
// skipped by the guarded save, so they are neither returned nor notified
// twice. A crash mid-batch leaves the remaining rows PENDING for the next
// drain.
func (p *Processor) Drain(ctx context.Context) ([]*payment.Payment, error) {
	startTime := time.Now()
	defer func() {
		drainDurationHistogram.Update(float64(time.Since(startTime).Milliseconds()))
	}()

	pending, err := p.store.FindByStatus(ctx, payment.StatusPending)
	if err != nil {
		drainErrorCounter.Inc()
		return nil, err
	}

	if len(pending) == 0 {
		p.logger.InfoContext(ctx, "No pending payments found")
		drainEmptyCounter.Inc()
		return []*payment.Payment{}, nil
	}

	for _, pmt := range pending {
		status, err := p.strategy.Execute(ctx, pmt.Amount, card.Data{})
		if err != nil {
			drainErrorCounter.Inc()
			return nil, err
		}
		pmt.Status = status
	}

	processed, err := p.store.SaveAll(ctx, pending)
	if err != nil {
		drainErrorCounter.Inc()
		return nil, err
	}

	for _, pmt := range processed {
		p.notifier.Notify(ctx, pmt)
	}

	if p.publisher != nil && len(processed) > 0 {
		if err := p.publisher.Publish(ctx, processed); err != nil {
			p.logger.ErrorContext(ctx, "Error publishing processed payments", "error", err)
		}
	}

	p.logger.InfoContext(ctx, "Queue drained", "pending", len(pending), "processed", len(processed))
	drainSuccessCounter.Inc()
	drainProcessedCounter.Add(len(processed))

	return processed, nil
}
