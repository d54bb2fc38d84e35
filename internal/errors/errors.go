package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorMismatch = 3 // solvers disagree on the answer
	ExitErrorConfig   = 4
	ExitErrorCanceled = 130 // SIGINT
)

// ConfigError reports an invalid flag, environment variable or config file
// entry. The program cannot start with it.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError reports a puzzle parameter that is out of range, such as
// a negative bound or a zero divisor.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError formats a ValidationError for field.
func NewValidationError(field, format string, a ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// SolveError ties a failure to the solver that produced it.
type SolveError struct {
	Solver string
	Cause  error
}

func (e SolveError) Error() string {
	if e.Solver == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Solver, e.Cause)
}

func (e SolveError) Unwrap() error { return e.Cause }

// WrapError prefixes err with a formatted context message. It returns nil
// when err is nil so it can wrap a call's result directly.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from cancellation or a deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsUserError reports whether err was caused by bad input rather than by a
// failure inside the program.
func IsUserError(err error) bool {
	var cfgErr ConfigError
	var valErr ValidationError
	return errors.As(err, &cfgErr) || errors.As(err, &valErr)
}
