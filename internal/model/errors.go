package model

import (
	"errors"
	"fmt"
)

// InputError reports analysis input that cannot be processed (empty or
// too-short text). It is surfaced to the caller as a rejected request
// and never retried.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "invalid input: " + e.Reason
}

// NewInputError creates an InputError with the given reason.
func NewInputError(format string, args ...any) error {
	return &InputError{Reason: fmt.Sprintf(format, args...)}
}

// IsInputError reports whether err is (or wraps) an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// ErrModelUnavailable signals that the classifier backend could not be
// loaded or reached. Callers degrade to the heuristic stub path rather
// than failing the request.
var ErrModelUnavailable = errors.New("classifier backend unavailable")

// ConfigError reports invalid configuration. It is fatal at startup and
// never produced at request time.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}
