package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/rnafold/internal/nussinov"
)

// ColorProvider supplies the escape sequences used to highlight errors.
// Implementations return empty strings when color is disabled.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// noColor is used when HandleFoldError receives a nil provider.
type noColor struct{}

func (noColor) Red() string    { return "" }
func (noColor) Yellow() string { return "" }
func (noColor) Reset() string  { return "" }

// ExitCodeFor maps an error to its process exit code.
func ExitCodeFor(err error) int {
	var (
		cfgErr ConfigError
		valErr ValidationError
		memErr MemoryError
		toErr  TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &toErr):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.Is(err, nussinov.ErrInconsistentTable):
		return ExitErrorMismatch
	case errors.Is(err, nussinov.ErrInvalidInput),
		errors.As(err, &cfgErr), errors.As(err, &valErr), errors.As(err, &memErr):
		return ExitErrorConfig
	}
	return ExitErrorGeneric
}

// HandleFoldError prints a one-line diagnosis of err to out and returns the
// matching exit code. duration is the time spent before the failure.
func HandleFoldError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColor{}
	}
	code := ExitCodeFor(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sFold timed out after %s.%s\n", colors.Yellow(), duration.Round(time.Millisecond), colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sFold canceled.%s\n", colors.Yellow(), colors.Reset())
	case ExitErrorMismatch:
		fmt.Fprintf(out, "%sInconsistent score table: %v%s\n", colors.Red(), err, colors.Reset())
	case ExitErrorConfig:
		fmt.Fprintf(out, "%sInvalid input: %v%s\n", colors.Red(), err, colors.Reset())
	default:
		fmt.Fprintf(out, "%sFold failed: %v%s\n", colors.Red(), err, colors.Reset())
	}
	return code
}
