package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrSourceUnavailable = errors.New("position source unavailable")
	ErrGenerationFailure = errors.New("text generation failed")
	ErrEntitlementDenied = errors.New("premium entitlement required")
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateHazard   = errors.New("hazard already indexed")
)

// ErrHazardNotFound is returned when removing or fetching an unknown hazard
var ErrHazardNotFound = fmt.Errorf("hazard %w", ErrNotFound)

// Validation wraps ErrValidation with a field-specific message
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Generation wraps ErrGenerationFailure around the provider error
func Generation(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrGenerationFailure, err)
}
