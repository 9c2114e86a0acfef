package terrain

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is returned when a field or mesh build is configured
// with values that make evaluation meaningless. No partial output is produced.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamError names the offending parameter
type ParamError struct {
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrInvalidParameter, e.Field, e.Reason)
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidParameter)
func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}

func invalid(field, format string, args ...interface{}) error {
	return &ParamError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
