package charge

import (
	"context"
	"log/slog"

	"payment-service/internal/card"
	"payment-service/internal/payment"

	"github.com/VictoriaMetrics/metrics"
)

var (
	chargePaidCounter      = metrics.GetOrCreateCounter(`payment_charges_total{result="paid"}`)
	chargeFailedCounter    = metrics.GetOrCreateCounter(`payment_charges_total{result="failed"}`)
	chargeRejectedCounter  = metrics.GetOrCreateCounter(`payment_charges_total{result="rejected"}`)
	chargeProcessingErrors = metrics.GetOrCreateCounter(`payment_charges_total{result="processing_error"}`)
)

// Request is one charge attempt: amount, rider reference and the payment
// instrument. Validated before any state-changing effect.
type Request struct {
	Amount  float64
	RiderID int
	Card    card.Data
}

// Executor runs the charge pipeline: amount check, card validation, strategy
// execution, then persistence of exactly one terminal payment.
type Executor struct {
	validator *card.Validator
	strategy  Strategy
	store     payment.Store
	logger    *slog.Logger
}

func NewExecutor(validator *card.Validator, strategy Strategy, store payment.Store, logger *slog.Logger) *Executor {
	return &Executor{
		validator: validator,
		strategy:  strategy,
		store:     store,
		logger:    logger,
	}
}

// Charge validates the request and persists a payment with terminal status
// PAID or FAILED. Validation errors short-circuit before any persistence;
// gateway errors abort without persisting either.
func (e *Executor) Charge(ctx context.Context, req Request) (*payment.Payment, error) {
	if req.Amount <= 0 {
		chargeRejectedCounter.Inc()
		return nil, payment.ErrInvalidAmount
	}

	if err := e.validator.Validate(ctx, req.Card); err != nil {
		e.logger.InfoContext(ctx, "Card validation failed", "riderId", req.RiderID, "error", err)
		chargeRejectedCounter.Inc()
		return nil, err
	}

	status, err := e.strategy.Execute(ctx, req.Amount, req.Card)
	if err != nil {
		e.logger.ErrorContext(ctx, "Charge execution failed", "riderId", req.RiderID, "error", err)
		chargeProcessingErrors.Inc()
		return nil, err
	}

	saved, err := e.store.Create(ctx, payment.New(req.Amount, req.RiderID, status))
	if err != nil {
		return nil, err
	}

	if status == payment.StatusPaid {
		chargePaidCounter.Inc()
	} else {
		chargeFailedCounter.Inc()
	}

	e.logger.InfoContext(ctx, "Charge processed", "id", saved.ID, "riderId", saved.RiderID, "status", saved.Status)
	return saved, nil
}

// Record persists a payment as PAID without capturing card data. It backs
// the direct intake path where the charge was settled out of band.
func (e *Executor) Record(ctx context.Context, amount float64, riderID int) (*payment.Payment, error) {
	if amount <= 0 {
		return nil, payment.ErrInvalidAmount
	}

	saved, err := e.store.Create(ctx, payment.New(amount, riderID, payment.StatusPaid))
	if err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "Payment recorded", "id", saved.ID, "riderId", saved.RiderID)
	return saved, nil
}
