package authflow

import (
	"context"

	apperrors "github.com/jrsteele09/go-authflow/internal/errors"
	"github.com/pkg/errors"
)

// Step-Up Gate: the 4-digit PIN checkpoint. Creation mode lives inside the
// signup journey (CompleteSignup); this file is re-verification mode, used
// after the inactivity lock.

// VerifyPIN re-proves the PIN against the backend using the existing session
// token. Success resumes the stored return path (dashboard when unset) and
// consumes it; failure keeps the user on the gate with the session intact.
// An authorization failure is the one case that ends the session.
func (c *Controller) VerifyPIN(ctx context.Context, pin string) (Redirect, error) {
	token, err := c.deps.Sessions.Token()
	if err != nil {
		// No token to step up against
		_ = c.deps.Sessions.Clear()
		return Redirect{Route: RouteLogin, Notice: NoticeSessionExpired}, nil
	}

	if err := ValidatePIN(pin); err != nil {
		return Redirect{}, err
	}

	if err := c.deps.API.VerifyPIN(ctx, token, pin); err != nil {
		if apperrors.Is(err, apperrors.ErrUnauthorized) {
			c.log.Info().Msg("session rejected during step-up, clearing")
			_ = c.deps.Sessions.Clear()
			return Redirect{Route: RouteLogin, Notice: NoticeSessionExpired}, nil
		}
		c.log.Warn().Err(err).Msg("pin verification failed")
		return Redirect{}, errors.Wrap(err, "[Controller.VerifyPIN] verify pin")
	}

	route, err := c.deps.Flow.ConsumeReturnPath()
	if err != nil || route == "" {
		route = RouteDashboard
	}

	c.log.Debug().Str("route", route).Msg("step-up passed, resuming")
	return Redirect{Route: route}, nil
}

// LockForInactivity is invoked by the inactivity monitor's callback. It
// captures where the user was and redirects to the step-up gate without
// touching the session token: a soft lock, not a logout.
func (c *Controller) LockForInactivity(currentRoute string) Redirect {
	if _, err := c.deps.Sessions.Token(); err != nil {
		return Redirect{} // Nothing to lock without a session
	}

	if err := c.deps.Flow.SetReturnPath(currentRoute); err != nil {
		c.log.Warn().Err(err).Msg("failed to store return path, step-up will fall back to dashboard")
	}

	c.log.Info().Str("route", currentRoute).Msg("inactivity lock engaged")
	return Redirect{Route: RoutePinVerifyLogin}
}

// EscapeToPINReset is the gate's "reset PIN" escape hatch. It only routes
// into the pin-reset journey; the journey itself re-proves email ownership
// via OTP and never needs the old PIN.
func (c *Controller) EscapeToPINReset() Redirect {
	return Redirect{Route: RoutePinReset}
}
