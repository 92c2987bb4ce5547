package charge

import "fmt"

// ProcessingError reports a gateway execution failure. It is a server-side
// error, distinct from a business FAILED outcome: nothing is persisted when
// it occurs.
type ProcessingError struct {
	Err error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("payment processing failed: %v", e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
