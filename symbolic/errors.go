package symbolic

import "errors"

// Sentinel errors returned by the kernel. Callers match them with errors.Is;
// context is added with fmt.Errorf("...: %w", ErrX).
var (
	// ErrUnsupported marks input outside the shapes an algorithm understands,
	// e.g. a non-linear inequality handed to SolveSet.
	ErrUnsupported = errors.New("symbolic: unsupported expression")

	// ErrNoLimit is returned when a limit is indeterminate for this kernel.
	ErrNoLimit = errors.New("symbolic: limit could not be determined")

	// ErrDiverges signals an integral that does not converge to a finite value.
	ErrDiverges = errors.New("symbolic: integral does not converge")

	// ErrNotFinite signals NaN or ±Inf where a finite number was required.
	ErrNotFinite = errors.New("symbolic: value is not finite")

	// ErrFreeSymbol is returned when an expression holds symbols other than
	// the integration or limit variable.
	ErrFreeSymbol = errors.New("symbolic: unexpected free symbol")
)
