package domain

import "errors"

// Error kinds. Callers add context with fmt.Errorf("...: %w", Err...) and
// classify with errors.Is.
var (
	ErrMissingParameter = errors.New("missing parameter")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidColumn    = errors.New("invalid column")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrNotFound         = errors.New("not found")
	ErrLoadFailure      = errors.New("dataset load failure")
	ErrComputation      = errors.New("computation error")
)
