package authflow

import (
	"context"

	"github.com/jrsteele09/go-authflow/backend"
	apperrors "github.com/jrsteele09/go-authflow/internal/errors"
	"github.com/pkg/errors"
)

// OTP exchange. Requests are idempotent from the caller's perspective; the
// only client-side throttle is the per-purpose in-flight flag that keeps a
// double-tapped resend from issuing two overlapping calls. There is no
// cooldown timer, the backend rate-limits authoritatively.

// ResendOTP re-issues the one-time code for an email/purpose pair. While a
// resend for the same purpose is in flight it returns ErrResendInFlight
// without touching the network; the flag clears on completion regardless of
// outcome.
func (c *Controller) ResendOTP(ctx context.Context, email string, purpose backend.OTPPurpose) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}

	if !c.beginResend(purpose) {
		return apperrors.ErrResendInFlight
	}
	defer c.endResend(purpose)

	if err := c.deps.API.RequestOTP(ctx, email, purpose); err != nil {
		c.log.Warn().Str("purpose", string(purpose)).Err(err).Msg("otp resend failed")
		return errors.Wrap(err, "[Controller.ResendOTP] request otp")
	}

	c.log.Debug().Str("purpose", string(purpose)).Msg("otp resent")
	return nil
}

// ResendInFlight reports whether a resend for the purpose is currently in
// flight, so the rendering layer can disable the control.
func (c *Controller) ResendInFlight(purpose backend.OTPPurpose) bool {
	c.resendMu.Lock()
	defer c.resendMu.Unlock()
	return c.resendInFlight[purpose]
}

func (c *Controller) beginResend(purpose backend.OTPPurpose) bool {
	c.resendMu.Lock()
	defer c.resendMu.Unlock()

	if c.resendInFlight[purpose] {
		return false
	}
	c.resendInFlight[purpose] = true
	return true
}

func (c *Controller) endResend(purpose backend.OTPPurpose) {
	c.resendMu.Lock()
	defer c.resendMu.Unlock()
	c.resendInFlight[purpose] = false
}

// verifyOTP runs the local format check then the backend verification.
// On failure the entered code is left for correction, nothing is cleared.
func (c *Controller) verifyOTP(ctx context.Context, email, code string, purpose backend.OTPPurpose) error {
	if err := c.validateOTPCode(code); err != nil {
		return err
	}
	if err := c.deps.API.VerifyOTP(ctx, email, code, purpose); err != nil {
		c.log.Warn().Str("purpose", string(purpose)).Err(err).Msg("otp verification failed")
		return errors.Wrap(err, "[Controller.verifyOTP] verify otp")
	}
	return nil
}
