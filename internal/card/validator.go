package card

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	expirationPattern = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
	nonDigits         = regexp.MustCompile(`\D`)
)

// TokenVerifier checks a pre-tokenized payment method reference with the
// gateway. Implemented by the gateway client.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (bool, error)
}

// Validator checks card data before a charge is attempted. It has no side
// effects; only the expiration comparison depends on the current time.
type Validator struct {
	verifier TokenVerifier
	now      func() time.Time
}

type Option func(*Validator)

// WithClock overrides the time source used for expiration checks.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

func NewValidator(verifier TokenVerifier, opts ...Option) *Validator {
	v := &Validator{
		verifier: verifier,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate returns nil when the card data is acceptable. Checks run in a
// fixed order and the first failure wins. A token reference delegates
// validity entirely to the gateway; no local checks run in that case.
func (v *Validator) Validate(ctx context.Context, data Data) error {
	if data.HasToken() {
		if v.verifier == nil {
			return &TokenError{Err: errors.New("no payment gateway configured")}
		}
		ok, err := v.verifier.VerifyToken(ctx, data.Token)
		if err != nil {
			return &TokenError{Err: err}
		}
		if !ok {
			return &TokenError{}
		}
		return nil
	}

	if data.HolderName == "" || data.Number == "" || data.Expiration == "" || data.CVV == "" {
		return ErrIncompleteCardData
	}

	if strings.TrimSpace(data.HolderName) == "" {
		return ErrMissingHolderName
	}

	if strings.TrimSpace(data.Number) == "" {
		return ErrMissingCardNumber
	}

	month, year, err := parseExpiration(data.Expiration)
	if err != nil {
		return err
	}

	now := v.now()
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return ErrCardExpired
	}

	if !luhnValid(data.Number) {
		return ErrInvalidCardNumber
	}

	if !cvvPattern.MatchString(data.CVV) {
		return ErrInvalidCVV
	}

	return nil
}

func parseExpiration(expiration string) (month, year int, err error) {
	match := expirationPattern.FindStringSubmatch(expiration)
	if match == nil {
		return 0, 0, ErrInvalidExpiration
	}

	month, _ = strconv.Atoi(match[1])
	year, _ = strconv.Atoi(match[2])

	if month < 1 || month > 12 {
		return 0, 0, ErrInvalidExpiration
	}

	return month, year, nil
}

// luhnValid runs the Luhn checksum over the digits of number: right to left,
// every second digit is doubled and reduced by 9 when it exceeds 9; the sum
// of all digits must be divisible by 10.
func luhnValid(number string) bool {
	digits := nonDigits.ReplaceAllString(number, "")
	if digits == "" {
		return false
	}

	sum := 0
	double := false

	for i := len(digits) - 1; i >= 0; i-- {
		digit := int(digits[i] - '0')

		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		double = !double
	}

	return sum%10 == 0
}
