package event

import (
	"context"
	"log/slog"

	"payment-service/internal/charge"
	"payment-service/internal/message"
	"payment-service/internal/queue"
)

// Processor routes charge-request intake messages: requests carrying card
// data are charged immediately, the rest are enqueued as PENDING for the
// next drain.
type Processor struct {
	executor *charge.Executor
	queue    *queue.Processor
	logger   *slog.Logger
}

func NewProcessor(executor *charge.Executor, q *queue.Processor, logger *slog.Logger) *Processor {
	return &Processor{executor: executor, queue: q, logger: logger}
}

func (p *Processor) Process(ctx context.Context, req message.ChargeRequest) error {
	p.logger.InfoContext(ctx, "Processing charge request", "riderId", req.RiderID, "amount", req.Amount, "immediate", req.Card != nil)

	if req.Card != nil {
		saved, err := p.executor.Charge(ctx, charge.Request{
			Amount:  req.Amount,
			RiderID: req.RiderID,
			Card:    *req.Card,
		})
		if err != nil {
			p.logger.ErrorContext(ctx, "Error executing charge", "riderId", req.RiderID, "error", err)
			return err
		}
		p.logger.InfoContext(ctx, "Charge executed", "id", saved.ID, "status", saved.Status)
		return nil
	}

	saved, err := p.queue.Enqueue(ctx, req.Amount, req.RiderID)
	if err != nil {
		p.logger.ErrorContext(ctx, "Error enqueueing charge request", "riderId", req.RiderID, "error", err)
		return err
	}

	p.logger.InfoContext(ctx, "Charge request enqueued", "id", saved.ID)
	return nil
}
