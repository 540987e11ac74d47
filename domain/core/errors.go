package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrReportNotFound = fmt.Errorf("%w: report", ErrNotFound)
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)

	// Structural errors - the only conditions allowed to escape the engine
	ErrDataLoad          = errors.New("dataset could not be materialized")
	ErrDimensionMismatch = errors.New("sequence length mismatch")

	// Input errors
	ErrEmptyInput    = errors.New("empty input sequence")
	ErrNonNumeric    = errors.New("column is not numeric")
	ErrMissingCell   = errors.New("column contains null cells")
	ErrInvalidSchema = errors.New("invalid schema definition")
)

// Error constructors with context
func NewDataLoadError(reason string) error {
	return fmt.Errorf("%w: %s", ErrDataLoad, reason)
}

func NewDimensionMismatchError(what string, want, got int) error {
	return fmt.Errorf("%w: %s has %d elements, expected %d", ErrDimensionMismatch, what, got, want)
}

func NewColumnNotFoundError(column string) error {
	return fmt.Errorf("%w: %s", ErrColumnNotFound, column)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDataLoadError(err error) bool {
	return errors.Is(err, ErrDataLoad)
}

func IsDimensionMismatch(err error) bool {
	return errors.Is(err, ErrDimensionMismatch)
}
