package nussinov

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a sequence or its parameters are rejected
	// at the boundary, before any table cell is computed.
	ErrInvalidInput = errors.New("nussinov: invalid input")

	// ErrInconsistentTable is returned when a table does not belong to the
	// sequence or parameters handed to Reconstruct.
	ErrInconsistentTable = errors.New("nussinov: inconsistent score table")
)

// TracebackError reports the interval at which no recurrence branch reproduced
// the stored cell value. It wraps ErrInconsistentTable.
type TracebackError struct {
	// I and J delimit the interval being explained.
	I, J int
	// Value is the stored table value at (I, J).
	Value int
}

// Error describes the interval that could not be explained.
func (e *TracebackError) Error() string {
	return fmt.Sprintf("%v: no branch reproduces dp[%d][%d] = %d", ErrInconsistentTable, e.I, e.J, e.Value)
}

// Unwrap returns ErrInconsistentTable so errors.Is matches.
func (e *TracebackError) Unwrap() error { return ErrInconsistentTable }
