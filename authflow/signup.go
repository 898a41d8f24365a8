package authflow

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-authflow/backend"
	"github.com/jrsteele09/go-authflow/flowstate"
	apperrors "github.com/jrsteele09/go-authflow/internal/errors"
	"github.com/pkg/errors"
)

// SignupDetails is what the first signup screen collects.
type SignupDetails struct {
	Name         string
	Email        string
	Password     string
	ReferralCode *string
}

// StartSignup validates the identity data, stores the pending registration,
// and requests the signup OTP. Restarting the journey replaces any previous
// pending registration wholesale; the email-immutability rule applies to
// later steps, not to beginning again.
func (c *Controller) StartSignup(ctx context.Context, details SignupDetails) (Redirect, error) {
	if strings.TrimSpace(details.Name) == "" {
		return Redirect{}, apperrors.Wrapf(apperrors.ErrValidation, "name is required")
	}
	if err := ValidateEmail(details.Email); err != nil {
		return Redirect{}, err
	}
	if err := ValidatePasswordStrength(details.Password); err != nil {
		return Redirect{}, err
	}

	device, err := c.deps.Fingerprint.Device(ctx)
	if err != nil {
		return Redirect{}, errors.Wrap(err, "[Controller.StartSignup] device fingerprint")
	}

	if err := c.deps.Flow.ClearSignup(); err != nil {
		return Redirect{}, errors.Wrap(err, "[Controller.StartSignup] clear previous journey")
	}

	flowID := uuid.New().String()
	if err := c.deps.Flow.SetPendingRegistration(flowstate.PendingRegistration{
		FlowID:            flowID,
		Name:              strings.TrimSpace(details.Name),
		Email:             strings.TrimSpace(details.Email),
		Password:          details.Password,
		ReferralCode:      details.ReferralCode,
		DeviceFingerprint: device.Fingerprint,
		IPAddress:         device.IPAddress,
		UserAgent:         device.UserAgent,
		CreatedAt:         c.nowTime(),
	}); err != nil {
		return Redirect{}, errors.Wrap(err, "[Controller.StartSignup] store pending registration")
	}

	if err := c.deps.API.RequestOTP(ctx, strings.TrimSpace(details.Email), backend.PurposeSignup); err != nil {
		// The pending record stays so the user can retry this step.
		c.log.Warn().Str("flow_id", flowID).Err(err).Msg("signup otp request failed")
		return Redirect{}, errors.Wrap(err, "[Controller.StartSignup] request otp")
	}

	c.log.Info().Str("flow_id", flowID).Msg("signup journey started")
	return Redirect{Route: RouteSignupVerifyOTP}, nil
}

// SignupStep derives the journey's current step from the flow store. The
// second return reports corrupt stored state.
func (c *Controller) SignupStep() (Step, bool) {
	reg, err := c.deps.Flow.PendingRegistration()
	if err != nil {
		return StepCollectIdentity, apperrors.Is(err, apperrors.ErrFlowStateCorrupt)
	}
	if !reg.OTPVerified {
		return StepAwaitOTP, false
	}
	return StepFinalize, false
}

// GuardSignupOTP is the mount guard for the OTP screen. A non-zero redirect
// means the prerequisite state is gone and the journey restarts; no backend
// call is ever issued from a failed guard.
func (c *Controller) GuardSignupOTP() Redirect {
	step, corrupt := c.SignupStep()
	return guardStep(step, StepAwaitOTP, corrupt, RouteSignup)
}

// GuardSignupPIN is the mount guard for the PIN creation screen.
func (c *Controller) GuardSignupPIN() Redirect {
	step, corrupt := c.SignupStep()
	return guardStep(step, StepFinalize, corrupt, RouteSignup)
}

// VerifySignupOTP checks the emailed code and advances to PIN creation.
func (c *Controller) VerifySignupOTP(ctx context.Context, code string) (Redirect, error) {
	if redirect := c.GuardSignupOTP(); !redirect.IsZero() {
		return redirect, nil
	}

	reg, err := c.deps.Flow.PendingRegistration()
	if err != nil {
		return Redirect{Route: RouteSignup, Notice: NoticeSessionExpired}, nil
	}

	if err := c.verifyOTP(ctx, reg.Email, code, backend.PurposeSignup); err != nil {
		return Redirect{}, err
	}

	if err := c.deps.Flow.MarkSignupOTPVerified(); err != nil {
		return Redirect{}, errors.Wrap(err, "[Controller.VerifySignupOTP] mark otp verified")
	}

	c.log.Debug().Str("flow_id", reg.FlowID).Msg("signup otp verified")
	return Redirect{Route: RouteSignupCreatePIN}, nil
}

// CompleteSignup bundles the PIN into the accumulated payload and issues the
// single atomic account-creation call. On success the pending registration
// is deleted and the user lands on login with a success notice; on failure
// everything stays put for a retry.
func (c *Controller) CompleteSignup(ctx context.Context, pin, confirmPin string) (Redirect, error) {
	if redirect := c.GuardSignupPIN(); !redirect.IsZero() {
		return redirect, nil
	}

	if err := ValidateNewPIN(pin, confirmPin); err != nil {
		return Redirect{}, err
	}

	reg, err := c.deps.Flow.PendingRegistration()
	if err != nil {
		return Redirect{Route: RouteSignup, Notice: NoticeSessionExpired}, nil
	}
	if reg.Name == "" || reg.Email == "" || reg.Password == "" {
		return Redirect{Route: RouteSignup, Notice: NoticeSessionError}, nil
	}

	if err := c.deps.API.Signup(ctx, backend.SignupRequest{
		Name:              reg.Name,
		Email:             reg.Email,
		Password:          reg.Password,
		ReferralCode:      reg.ReferralCode,
		DeviceFingerprint: reg.DeviceFingerprint,
		IPAddress:         reg.IPAddress,
		UserAgent:         reg.UserAgent,
		PIN:               pin,
	}); err != nil {
		c.log.Warn().Str("flow_id", reg.FlowID).Err(err).Msg("account creation failed")
		return Redirect{}, errors.Wrap(err, "[Controller.CompleteSignup] signup")
	}

	if err := c.deps.Flow.ClearSignup(); err != nil {
		return Redirect{}, errors.Wrap(err, "[Controller.CompleteSignup] clear journey")
	}

	c.log.Info().Str("flow_id", reg.FlowID).Msg("signup journey completed")
	return Redirect{Route: RouteLogin, Notice: NoticeAccountCreated}, nil
}
