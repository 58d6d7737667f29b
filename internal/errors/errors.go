package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit codes.
const (
	ExitSuccess       = 0   // fold completed
	ExitErrorGeneric  = 1   // any other failure
	ExitErrorTimeout  = 2   // --timeout elapsed
	ExitErrorMismatch = 3   // strategies disagree, or a table failed traceback
	ExitErrorConfig   = 4   // invalid flags, input or memory budget
	ExitErrorCanceled = 130 // SIGINT
)

// ConfigError is a user configuration error: a bad flag value or an unusable
// input source.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// FoldError attaches the strategy name to a failed fold.
type FoldError struct {
	Strategy string
	Cause    error
}

func (e FoldError) Error() string {
	if e.Strategy == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Strategy, e.Cause)
}

// Unwrap returns the cause.
func (e FoldError) Unwrap() error { return e.Cause }

// TimeoutError reports that an operation exceeded its time limit.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MemoryError reports that the estimated table footprint exceeds the budget.
type MemoryError struct {
	Requested uint64
	Limit     uint64
}

func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: folding needs %d bytes, limit is %d", e.Requested, e.Limit)
}

// WrapError prefixes err with a formatted message, keeping it in the chain.
// It returns nil for a nil err.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a cancellation or deadline error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
