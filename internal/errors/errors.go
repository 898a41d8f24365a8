package errors

import (
	"errors"
	"fmt"
)

// Common error types for the auth flow client
var (
	// Flow state errors (ephemeral journey state)
	ErrFlowStateMissing = errors.New("flow state missing")
	ErrFlowStateCorrupt = errors.New("flow state corrupt")
	ErrEmailImmutable   = errors.New("pending email cannot be changed")

	// Validation errors (local format checks, never reach the network)
	ErrValidation      = errors.New("validation failed")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidOTP      = errors.New("invalid one-time code format")
	ErrInvalidPIN      = errors.New("PIN must be exactly 4 digits")
	ErrPINMismatch     = errors.New("PIN and confirmation do not match")
	ErrPasswordMissing = errors.New("password is required")

	// Backend errors
	ErrBackendRejected = errors.New("backend rejected request")
	ErrNetwork         = errors.New("network error")
	ErrUnauthorized    = errors.New("unauthorized")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// OTP exchange errors
	ErrResendInFlight = errors.New("resend already in flight")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
