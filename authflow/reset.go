package authflow

import (
	"context"
	"strings"

	"github.com/jrsteele09/go-authflow/backend"
	"github.com/pkg/errors"
)

// The forgot-password and pin-reset journeys are structurally identical:
// collect the email, prove ownership with an OTP, finalize with one call.
// resetJourney binds the shared step logic to a purpose and its key
// namespace so the two never interfere even when both are in flight.
type resetJourney struct {
	purpose       backend.OTPPurpose
	startRoute    string
	finalizeRoute string
	setEmail      func(string) error
	email         func() (string, error)
	setOTP        func(string) error
	otp           func() (string, error)
}

func (c *Controller) passwordResetJourney() resetJourney {
	return resetJourney{
		purpose:       backend.PurposePasswordReset,
		startRoute:    RouteForgotPassword,
		finalizeRoute: RouteResetPassword,
		setEmail:      c.deps.Flow.SetPasswordResetEmail,
		email:         c.deps.Flow.PasswordResetEmail,
		setOTP:        c.deps.Flow.SetPasswordResetOTP,
		otp:           c.deps.Flow.PasswordResetOTP,
	}
}

func (c *Controller) pinResetJourney() resetJourney {
	return resetJourney{
		purpose:       backend.PurposePINReset,
		startRoute:    RoutePinReset,
		finalizeRoute: RoutePinResetNew,
		setEmail:      c.deps.Flow.SetPINResetEmail,
		email:         c.deps.Flow.PINResetEmail,
		setOTP:        c.deps.Flow.SetPINResetOTP,
		otp:           c.deps.Flow.PINResetOTP,
	}
}

func (c *Controller) resetStep(j resetJourney) Step {
	if _, err := j.email(); err != nil {
		return StepCollectIdentity
	}
	if _, err := j.otp(); err != nil {
		return StepAwaitOTP
	}
	return StepFinalize
}

func (c *Controller) startReset(ctx context.Context, j resetJourney, email string, otpRoute string) (Redirect, error) {
	if err := ValidateEmail(email); err != nil {
		return Redirect{}, err
	}
	email = strings.TrimSpace(email)

	if err := j.setEmail(email); err != nil {
		return Redirect{}, errors.Wrapf(err, "[Controller.startReset] store email (%s)", j.purpose)
	}

	if err := c.deps.API.RequestOTP(ctx, email, j.purpose); err != nil {
		c.log.Warn().Str("purpose", string(j.purpose)).Err(err).Msg("reset otp request failed")
		return Redirect{}, errors.Wrapf(err, "[Controller.startReset] request otp (%s)", j.purpose)
	}

	c.log.Info().Str("purpose", string(j.purpose)).Msg("reset journey started")
	return Redirect{Route: otpRoute}, nil
}

func (c *Controller) verifyResetOTP(ctx context.Context, j resetJourney, code string) (Redirect, error) {
	if redirect := guardStep(c.resetStep(j), StepAwaitOTP, false, j.startRoute); !redirect.IsZero() {
		return redirect, nil
	}

	email, err := j.email()
	if err != nil {
		return Redirect{Route: j.startRoute, Notice: NoticeSessionExpired}, nil
	}

	if err := c.verifyOTP(ctx, email, code, j.purpose); err != nil {
		return Redirect{}, err
	}

	if err := j.setOTP(code); err != nil {
		return Redirect{}, errors.Wrapf(err, "[Controller.verifyResetOTP] store otp (%s)", j.purpose)
	}

	return Redirect{Route: j.finalizeRoute}, nil
}

// resetPayload guards the finalize step and returns the accumulated
// email/otp pair, or the step-1 redirect when either is missing.
func (c *Controller) resetPayload(j resetJourney) (string, string, Redirect) {
	email, err := j.email()
	if err != nil {
		return "", "", Redirect{Route: j.startRoute, Notice: NoticeSessionExpired}
	}
	code, err := j.otp()
	if err != nil {
		return "", "", Redirect{Route: j.startRoute, Notice: NoticeSessionExpired}
	}
	return email, code, Redirect{}
}

// StartPasswordReset begins the forgot-password journey.
func (c *Controller) StartPasswordReset(ctx context.Context, email string) (Redirect, error) {
	return c.startReset(ctx, c.passwordResetJourney(), email, RouteForgotPasswordOTP)
}

// PasswordResetStep derives the forgot-password journey's current step.
func (c *Controller) PasswordResetStep() Step {
	return c.resetStep(c.passwordResetJourney())
}

// GuardPasswordResetOTP is the mount guard for the forgot-password OTP screen.
func (c *Controller) GuardPasswordResetOTP() Redirect {
	j := c.passwordResetJourney()
	return guardStep(c.resetStep(j), StepAwaitOTP, false, j.startRoute)
}

// GuardPasswordResetFinalize is the mount guard for the new-password screen.
func (c *Controller) GuardPasswordResetFinalize() Redirect {
	j := c.passwordResetJourney()
	return guardStep(c.resetStep(j), StepFinalize, false, j.startRoute)
}

// VerifyPasswordResetOTP checks the emailed code and attaches it to the
// journey.
func (c *Controller) VerifyPasswordResetOTP(ctx context.Context, code string) (Redirect, error) {
	return c.verifyResetOTP(ctx, c.passwordResetJourney(), code)
}

// CompletePasswordReset issues the single reset call with the accumulated
// email and code, clears the journey, and lands on login.
func (c *Controller) CompletePasswordReset(ctx context.Context, newPassword string) (Redirect, error) {
	j := c.passwordResetJourney()

	email, code, redirect := c.resetPayload(j)
	if !redirect.IsZero() {
		return redirect, nil
	}

	if err := ValidatePasswordStrength(newPassword); err != nil {
		return Redirect{}, err
	}

	if err := c.deps.API.ResetPassword(ctx, email, code, newPassword); err != nil {
		c.log.Warn().Err(err).Msg("password reset failed")
		return Redirect{}, errors.Wrap(err, "[Controller.CompletePasswordReset] reset password")
	}

	if err := c.deps.Flow.ClearPasswordReset(); err != nil {
		return Redirect{}, errors.Wrap(err, "[Controller.CompletePasswordReset] clear journey")
	}

	c.log.Info().Msg("password reset completed")
	return Redirect{Route: RouteLogin, Notice: NoticePasswordUpdated}, nil
}

// StartPINReset begins the pin-reset journey. It never requires the old PIN;
// email ownership is re-proved via OTP instead.
func (c *Controller) StartPINReset(ctx context.Context, email string) (Redirect, error) {
	return c.startReset(ctx, c.pinResetJourney(), email, RoutePinResetOTP)
}

// PINResetStep derives the pin-reset journey's current step.
func (c *Controller) PINResetStep() Step {
	return c.resetStep(c.pinResetJourney())
}

// GuardPINResetOTP is the mount guard for the pin-reset OTP screen.
func (c *Controller) GuardPINResetOTP() Redirect {
	j := c.pinResetJourney()
	return guardStep(c.resetStep(j), StepAwaitOTP, false, j.startRoute)
}

// GuardPINResetFinalize is the mount guard for the new-PIN screen.
func (c *Controller) GuardPINResetFinalize() Redirect {
	j := c.pinResetJourney()
	return guardStep(c.resetStep(j), StepFinalize, false, j.startRoute)
}

// VerifyPINResetOTP checks the emailed code and attaches it to the journey.
func (c *Controller) VerifyPINResetOTP(ctx context.Context, code string) (Redirect, error) {
	return c.verifyResetOTP(ctx, c.pinResetJourney(), code)
}

// CompletePINReset validates the new PIN pair, issues the single reset call,
// clears the journey, and lands on login.
func (c *Controller) CompletePINReset(ctx context.Context, newPIN, confirmPIN string) (Redirect, error) {
	j := c.pinResetJourney()

	email, code, redirect := c.resetPayload(j)
	if !redirect.IsZero() {
		return redirect, nil
	}

	if err := ValidateNewPIN(newPIN, confirmPIN); err != nil {
		return Redirect{}, err
	}

	if err := c.deps.API.ResetPIN(ctx, email, code, newPIN); err != nil {
		c.log.Warn().Err(err).Msg("pin reset failed")
		return Redirect{}, errors.Wrap(err, "[Controller.CompletePINReset] reset pin")
	}

	if err := c.deps.Flow.ClearPINReset(); err != nil {
		return Redirect{}, errors.Wrap(err, "[Controller.CompletePINReset] clear journey")
	}

	c.log.Info().Msg("pin reset completed")
	return Redirect{Route: RouteLogin, Notice: NoticePINUpdated}, nil
}
