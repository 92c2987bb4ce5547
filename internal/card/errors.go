package card

import (
	"errors"
	"fmt"
)

var (
	ErrIncompleteCardData = errors.New("incomplete card data")
	ErrMissingHolderName  = errors.New("cardholder name is required")
	ErrMissingCardNumber  = errors.New("card number is required")
	ErrInvalidExpiration  = errors.New("expiration date must be in MM/YYYY format")
	ErrCardExpired        = errors.New("card has expired")
	ErrInvalidCardNumber  = errors.New("invalid card number")
	ErrInvalidCVV         = errors.New("invalid CVV")
)

// TokenError reports that a pre-tokenized payment method reference could not
// be verified. It carries the gateway's message when verification itself
// failed.
type TokenError struct {
	Err error
}

func (e *TokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid payment method: %v", e.Err)
	}
	return "invalid payment method"
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is a client-caused card validation
// failure, as opposed to a gateway or storage failure.
func IsValidationError(err error) bool {
	var tokenErr *TokenError
	if errors.As(err, &tokenErr) {
		return true
	}
	for _, sentinel := range []error{
		ErrIncompleteCardData,
		ErrMissingHolderName,
		ErrMissingCardNumber,
		ErrInvalidExpiration,
		ErrCardExpired,
		ErrInvalidCardNumber,
		ErrInvalidCVV,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
