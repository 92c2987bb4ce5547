package card_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"payment-service/internal/card"

	"github.com/stretchr/testify/assert"
)

type fakeVerifier struct {
	valid bool
	err   error
	calls int
}

func (f *fakeVerifier) VerifyToken(_ context.Context, _ string) (bool, error) {
	f.calls++
	return f.valid, f.err
}

func fixedClock(year int, month time.Month) card.Option {
	return card.WithClock(func() time.Time {
		return time.Date(year, month, 15, 12, 0, 0, 0, time.UTC)
	})
}

func validCard() card.Data {
	return card.Data{
		HolderName: "Maria Silva",
		Number:     "4532015112830366",
		Expiration: "12/2030",
		CVV:        "123",
	}
}

func TestValidate_ValidCard(t *testing.T) {
	validator := card.NewValidator(nil, fixedClock(2026, time.June))

	err := validator.Validate(context.Background(), validCard())
	assert.NoError(t, err)
}

func TestValidate_FieldChecks(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*card.Data)
		expectedErr error
	}{
		{
			name:        "missing number",
			mutate:      func(d *card.Data) { d.Number = "" },
			expectedErr: card.ErrIncompleteCardData,
		},
		{
			name:        "missing cvv",
			mutate:      func(d *card.Data) { d.CVV = "" },
			expectedErr: card.ErrIncompleteCardData,
		},
		{
			name:        "missing expiration",
			mutate:      func(d *card.Data) { d.Expiration = "" },
			expectedErr: card.ErrIncompleteCardData,
		},
		{
			name:        "blank holder name",
			mutate:      func(d *card.Data) { d.HolderName = "   " },
			expectedErr: card.ErrMissingHolderName,
		},
		{
			name:        "blank card number",
			mutate:      func(d *card.Data) { d.Number = "  " },
			expectedErr: card.ErrMissingCardNumber,
		},
		{
			name:        "expiration without year",
			mutate:      func(d *card.Data) { d.Expiration = "12/30" },
			expectedErr: card.ErrInvalidExpiration,
		},
		{
			name:        "expiration month out of range",
			mutate:      func(d *card.Data) { d.Expiration = "13/2030" },
			expectedErr: card.ErrInvalidExpiration,
		},
		{
			name:        "expiration month zero",
			mutate:      func(d *card.Data) { d.Expiration = "0/2030" },
			expectedErr: card.ErrInvalidExpiration,
		},
		{
			name:        "failed luhn check",
			mutate:      func(d *card.Data) { d.Number = "1234567890123456" },
			expectedErr: card.ErrInvalidCardNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := card.NewValidator(nil, fixedClock(2026, time.June))

			data := validCard()
			tt.mutate(&data)

			err := validator.Validate(context.Background(), data)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.True(t, card.IsValidationError(err))
		})
	}
}

func TestValidate_Expiration(t *testing.T) {
	tests := []struct {
		name        string
		expiration  string
		expectedErr error
	}{
		{name: "past year", expiration: "12/2025", expectedErr: card.ErrCardExpired},
		{name: "past month same year", expiration: "5/2026", expectedErr: card.ErrCardExpired},
		{name: "current month", expiration: "6/2026"},
		{name: "next month", expiration: "7/2026"},
		{name: "future year", expiration: "01/2027"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := card.NewValidator(nil, fixedClock(2026, time.June))

			data := validCard()
			data.Expiration = tt.expiration

			err := validator.Validate(context.Background(), data)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_CVV(t *testing.T) {
	for _, cvv := range []string{"12", "12345", "abc", "12a"} {
		t.Run(cvv, func(t *testing.T) {
			validator := card.NewValidator(nil, fixedClock(2026, time.June))

			data := validCard()
			data.CVV = cvv

			err := validator.Validate(context.Background(), data)
			assert.ErrorIs(t, err, card.ErrInvalidCVV)
		})
	}

	t.Run("four digits", func(t *testing.T) {
		validator := card.NewValidator(nil, fixedClock(2026, time.June))

		data := validCard()
		data.CVV = "1234"

		assert.NoError(t, validator.Validate(context.Background(), data))
	})
}

func TestValidate_Luhn(t *testing.T) {
	tests := []struct {
		number string
		valid  bool
	}{
		{number: "4532015112830366", valid: true},
		{number: "4242424242424242", valid: true},
		{number: "4532 0151 1283 0366", valid: true}, // non-digits stripped
		{number: "1234567890123456", valid: false},
		{number: "4532015112830367", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			validator := card.NewValidator(nil, fixedClock(2026, time.June))

			data := validCard()
			data.Number = tt.number

			err := validator.Validate(context.Background(), data)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, card.ErrInvalidCardNumber)
			}
		})
	}
}

func TestValidate_TokenDelegatesToGateway(t *testing.T) {
	verifier := &fakeVerifier{valid: true}
	validator := card.NewValidator(verifier, fixedClock(2026, time.June))

	// local checks must not run for token-backed requests
	err := validator.Validate(context.Background(), card.Data{Token: "pm_123"})
	assert.NoError(t, err)
	assert.Equal(t, 1, verifier.calls)
}

func TestValidate_TokenRejected(t *testing.T) {
	verifier := &fakeVerifier{valid: false}
	validator := card.NewValidator(verifier)

	err := validator.Validate(context.Background(), card.Data{Token: "pm_unknown"})

	var tokenErr *card.TokenError
	assert.ErrorAs(t, err, &tokenErr)
	assert.True(t, card.IsValidationError(err))
}

func TestValidate_TokenVerificationFailure(t *testing.T) {
	gatewayErr := errors.New("gateway unavailable")
	verifier := &fakeVerifier{err: gatewayErr}
	validator := card.NewValidator(verifier)

	err := validator.Validate(context.Background(), card.Data{Token: "pm_123"})

	var tokenErr *card.TokenError
	assert.ErrorAs(t, err, &tokenErr)
	assert.ErrorIs(t, err, gatewayErr)
}

func TestValidate_Idempotent(t *testing.T) {
	validator := card.NewValidator(nil, fixedClock(2026, time.June))
	data := validCard()
	data.Number = "1234567890123456"

	first := validator.Validate(context.Background(), data)
	second := validator.Validate(context.Background(), data)

	assert.ErrorIs(t, first, card.ErrInvalidCardNumber)
	assert.Equal(t, first, second)
}
