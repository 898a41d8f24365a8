package authflow

import (
	"strings"

	apperrors "github.com/jrsteele09/go-authflow/internal/errors"
)

// Local format validation. These checks exist purely for UX: the backend
// re-validates everything authoritatively. Nothing here reaches the network.

// ValidateEmail performs the basic shape check used before any journey start
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperrors.Wrapf(apperrors.ErrInvalidEmail, "email is required")
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return apperrors.ErrInvalidEmail
	}
	return nil
}

// ValidatePasswordStrength enforces the minimum the backend will accept so
// obviously-rejected passwords never leave the form
func ValidatePasswordStrength(password string) error {
	if password == "" {
		return apperrors.ErrPasswordMissing
	}
	if len(password) < 8 {
		return apperrors.Wrapf(apperrors.ErrValidation, "password must be at least 8 characters")
	}
	return nil
}

// ValidatePIN checks a single PIN field: exactly PINLength numeric digits
func ValidatePIN(pin string) error {
	if len(pin) != PINLength || !isNumeric(pin) {
		return apperrors.ErrInvalidPIN
	}
	return nil
}

// ValidateNewPIN checks the creation-mode pair: both fields must be exactly
// PINLength digits and equal. This predicate gates the submit control.
func ValidateNewPIN(pin, confirmPin string) error {
	if err := ValidatePIN(pin); err != nil {
		return err
	}
	if err := ValidatePIN(confirmPin); err != nil {
		return err
	}
	if pin != confirmPin {
		return apperrors.ErrPINMismatch
	}
	return nil
}

// CanSubmitPIN is the submit-enabled predicate for the PIN creation screen.
// It re-evaluates on every field change without needing a remount.
func CanSubmitPIN(pin, confirmPin string) bool {
	return ValidateNewPIN(pin, confirmPin) == nil
}

// validateOTPCode checks the fixed-length numeric pattern. No checksum, no
// local expiry: the backend owns code validity.
func (c *Controller) validateOTPCode(code string) error {
	if len(code) != c.otpDigits || !isNumeric(code) {
		return apperrors.ErrInvalidOTP
	}
	return nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
