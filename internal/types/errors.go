package types

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrDuplicateKey    = errors.New("login already taken")
	ErrNotFound        = errors.New("user not found")
	ErrForbidden       = errors.New("operation forbidden")
	ErrAccessDenied    = errors.New("access denied")
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
	ErrTooManyAttempts = errors.New("too many failed login attempts")
)

// ValidationError describes a rejected input field. It matches ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ErrorKind classifies err into a short label used for logs and metrics.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrDuplicateKey):
		return "duplicate"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrAccessDenied):
		return "denied"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrTooManyAttempts):
		return "throttled"
	default:
		return "error"
	}
}
