// Package errors provides standardized error handling for the sysmon
// system. It implements structured error types with proper wrapping and
// classification following Go 1.20+ error handling practices.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// Monitoring lifecycle errors
	ErrAlreadyRunning     = errors.New("monitoring is already running")
	ErrNotRunning         = errors.New("monitoring is not running")
	ErrMonitoringDisabled = errors.New("monitoring is disabled in configuration")
	ErrShutdownTimeout    = errors.New("monitoring worker did not stop within the grace period")

	// Query errors
	ErrUnknownCategory = errors.New("unknown metric category")

	// System-related errors
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// CollectionError represents a single metric source failing for one tick.
// It is recovered locally: the tick stores an error-marked sample for the
// category and continues.
type CollectionError struct {
	Category string
	Err      error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("collecting %s metrics: %v", e.Category, e.Err)
}

func (e *CollectionError) Unwrap() error {
	return e.Err
}

// NewCollectionError wraps a collector failure with its category.
func NewCollectionError(category string, err error) *CollectionError {
	return &CollectionError{Category: category, Err: err}
}

// IsCollectionError reports whether err is (or wraps) a CollectionError.
func IsCollectionError(err error) bool {
	var ce *CollectionError
	return errors.As(err, &ce)
}

// Wrap adds context to an error, returning nil if the error is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error, returning nil if the error is nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is re-exports errors.Is so callers need a single errors import.
func Is(err, target error) bool { return errors.Is(err, target) }

// As re-exports errors.As so callers need a single errors import.
func As(err error, target interface{}) bool { return errors.As(err, target) }
