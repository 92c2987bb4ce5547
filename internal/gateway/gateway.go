package gateway

import "context"

// ChargeStatus values reported by the gateway for a confirmed charge.
const StatusSucceeded = "succeeded"

// CardFields is the raw card material sent to the gateway for tokenization.
type CardFields struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
}

// Gateway is the narrow capability contract against the external payment
// processor: tokenize raw card data, verify a previously issued token, and
// create a charge in minor currency units.
type Gateway interface {
	Tokenize(ctx context.Context, card CardFields) (string, error)
	VerifyToken(ctx context.Context, token string) (bool, error)
	CreateCharge(ctx context.Context, amountMinorUnits int64, currency, token string) (string, error)
}
