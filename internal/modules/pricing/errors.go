package pricing

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks caller-fixable input problems. It aborts only the
	// calculation in progress.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidNumber is returned by Round for NaN or infinite input.
	ErrInvalidNumber = errors.New("invalid number")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// IntegrityError signals that a computed total disagrees with its own
// components. This is an engine bug, never bad input, so callers should log
// it loudly rather than correct it.
type IntegrityError struct {
	Scope    string
	Expected float64
	Actual   float64
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity check failed for %s: expected %.2f, got %.2f", e.Scope, e.Expected, e.Actual)
}

const integrityTolerance = 0.01

func checkIntegrity(scope string, expected, actual float64) error {
	diff := expected - actual
	if diff < 0 {
		diff = -diff
	}
	if diff > integrityTolerance {
		return &IntegrityError{Scope: scope, Expected: expected, Actual: actual}
	}
	return nil
}
