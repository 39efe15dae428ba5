package signal

import (
	"errors"
	"fmt"
	"time"

	"github.com/njchilds90/gosignal/symbolic"
)

var (
	// ErrNotFinite is the cause of an IntegrationError whose value came out
	// NaN or infinite. It matches symbolic.ErrNotFinite.
	ErrNotFinite = symbolic.ErrNotFinite

	ErrEmptyInput = errors.New("signal: empty function string")
)

// ParseError reports input that is not a valid signal expression.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string { return "Invalid function string: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// PeriodicityError reports an expression whose periodicity could not be decided.
type PeriodicityError struct {
	Err error
}

func (e *PeriodicityError) Error() string { return "Failed to detect periodicity: " + e.Err.Error() }
func (e *PeriodicityError) Unwrap() error { return e.Err }

// IntegrationError reports a metric integral that failed or did not converge.
// Formula is one of "power", "mean" or "energy".
type IntegrationError struct {
	Formula string
	Err     error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("Integration failed for %s: %v", e.Formula, e.Err)
}
func (e *IntegrationError) Unwrap() error { return e.Err }

// TimeoutError reports an analysis stopped by its time budget or by the
// caller's context. Err is the context error.
type TimeoutError struct {
	Stage  string
	Budget time.Duration
	Err    error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("Analysis exceeded %s during %s", e.Budget, e.Stage)
}
func (e *TimeoutError) Unwrap() error { return e.Err }
