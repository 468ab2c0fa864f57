package survey

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Load errors
	ErrEmptyTable        = errors.New("survey table has no data rows")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrFileUnreadable    = errors.New("survey file unreadable")

	// Validation errors
	ErrColumnNotFound    = errors.New("column not found")
	ErrCountryColumn     = fmt.Errorf("%w: home country", ErrColumnNotFound)
	ErrCountryNotFound   = errors.New("country not present in data")
	ErrNoRowsAfterFilter = errors.New("no rows remain after filtering")

	// Computation errors
	ErrInsufficientData = errors.New("insufficient data for statistical test")
	ErrNotNumeric       = errors.New("column has no numeric values")

	// Lifecycle errors
	ErrNotLoaded = errors.New("no survey data loaded")
)

// Error constructors with context
func NewColumnNotFoundError(column string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, column)
}

func NewCountryNotFoundError(country string) error {
	return fmt.Errorf("%w: %q", ErrCountryNotFound, country)
}

func NewLoadError(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrFileUnreadable, path, err)
}

// Error checking helpers
func IsLoadError(err error) bool {
	return errors.Is(err, ErrEmptyTable) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrFileUnreadable)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrCountryNotFound) ||
		errors.Is(err, ErrNoRowsAfterFilter)
}

func IsComputationError(err error) bool {
	return errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrNotNumeric)
}

func IsNotLoaded(err error) bool {
	return errors.Is(err, ErrNotLoaded)
}
