package charge

import (
	"context"
	"math"
	"strconv"
	"strings"

	"payment-service/internal/card"
	"payment-service/internal/gateway"
	"payment-service/internal/payment"
)

// failureThreshold is the simulated outcome split: draws below it fail,
// draws at or above it succeed (90% success, 10% failure).
const failureThreshold = 0.1

// Strategy resolves the terminal status of a single charge attempt. It is
// selected once at service construction: the gateway strategy when a gateway
// credential is configured, the simulated strategy otherwise.
type Strategy interface {
	Execute(ctx context.Context, amount float64, data card.Data) (payment.Status, error)
}

// SimulatedStrategy stands in for a real gateway in environments without a
// configured credential. One uniform draw decides the outcome.
type SimulatedStrategy struct {
	random RandomSource
}

func NewSimulatedStrategy(random RandomSource) *SimulatedStrategy {
	return &SimulatedStrategy{random: random}
}

func (s *SimulatedStrategy) Execute(_ context.Context, _ float64, _ card.Data) (payment.Status, error) {
	if s.random.Next() >= failureThreshold {
		return payment.StatusPaid, nil
	}
	return payment.StatusFailed, nil
}

// GatewayStrategy tokenizes the card (or reuses a supplied token) and
// confirms a charge in minor units. Any gateway error aborts the whole
// operation as a ProcessingError; no payment is persisted in that case.
type GatewayStrategy struct {
	gateway  gateway.Gateway
	currency string
}

func NewGatewayStrategy(gw gateway.Gateway, currency string) *GatewayStrategy {
	return &GatewayStrategy{gateway: gw, currency: currency}
}

func (s *GatewayStrategy) Execute(ctx context.Context, amount float64, data card.Data) (payment.Status, error) {
	token := data.Token
	if token == "" {
		month, year := splitExpiration(data.Expiration)
		var err error
		token, err = s.gateway.Tokenize(ctx, gateway.CardFields{
			Number:   data.Number,
			ExpMonth: month,
			ExpYear:  year,
			CVC:      data.CVV,
		})
		if err != nil {
			return "", &ProcessingError{Err: err}
		}
	}

	status, err := s.gateway.CreateCharge(ctx, minorUnits(amount), s.currency, token)
	if err != nil {
		return "", &ProcessingError{Err: err}
	}

	if status == gateway.StatusSucceeded {
		return payment.StatusPaid, nil
	}
	return payment.StatusFailed, nil
}

func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// splitExpiration assumes the MM/YYYY format was already validated.
func splitExpiration(expiration string) (month, year int) {
	parts := strings.SplitN(expiration, "/", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	month, _ = strconv.Atoi(parts[0])
	year, _ = strconv.Atoi(parts[1])
	return month, year
}
