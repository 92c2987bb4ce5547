package queue

import (
	"context"
	"log/slog"
	"time"

	"payment-service/internal/logcontext"

	"github.com/google/uuid"
)

const defaultPollingIntervalMs = 5_000

// Poller drains the queue on a fixed interval. Only one poller should run
// against a given store; overlapping drains are prevented here by the
// sequential loop, not by the processor.
type Poller struct {
	processor       *Processor
	pollingInterval time.Duration
	logger          *slog.Logger
}

func NewPoller(processor *Processor, pollingInterval time.Duration, logger *slog.Logger) *Poller {
	if pollingInterval <= 0 {
		pollingInterval = defaultPollingIntervalMs * time.Millisecond
	}
	return &Poller{
		processor:       processor,
		pollingInterval: pollingInterval,
		logger:          logger,
	}
}

func (p *Poller) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(p.pollingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				p.drain(ctx)
			case <-ctx.Done():
				p.logger.InfoContext(ctx, "Context done, stopping queue poller")
				return
			}
		}
	}()
}

func (p *Poller) drain(ctx context.Context) {
	// runId correlates all logs of one drain run
	ctx = logcontext.AppendCtx(ctx, slog.String("runId", uuid.New().String()))

	if _, err := p.processor.Drain(ctx); err != nil {
		p.logger.ErrorContext(ctx, "Error draining payment queue", "error", err)
	}
}
