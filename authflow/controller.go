// Package authflow orchestrates the multi-step identity journeys of the
// reward platform client: signup, login, forgot-password, pin-reset, and the
// step-up PIN gate. Each journey is an explicit state machine over the
// ephemeral flow store; entering a step whose prerequisite state is absent
// redirects back to the journey's first screen instead of touching the
// backend.
package authflow

import (
	"sync"
	"time"

	"github.com/jrsteele09/go-authflow/backend"
	"github.com/jrsteele09/go-authflow/captcha"
	"github.com/jrsteele09/go-authflow/fingerprint"
	"github.com/jrsteele09/go-authflow/flowstate"
	"github.com/jrsteele09/go-authflow/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const defaultOTPDigits = 6

// PINLength is fixed by the backend contract.
const PINLength = 4

// Deps holds all collaborator dependencies for the Controller
type Deps struct {
	API         API                   // Backend REST boundary
	Flow        *flowstate.Store      // Ephemeral journey state
	Sessions    session.Store         // Current session holder
	Captcha     captcha.TokenProvider // Invisible CAPTCHA widget (optional)
	Fingerprint fingerprint.Provider  // Device fingerprint widget (optional)
}

// Controller sequences the journeys and guards step entry. Safe for
// concurrent use; the in-flight resend guard is the only mutable state it
// owns directly.
type Controller struct {
	deps      Deps
	log       zerolog.Logger
	otpDigits int
	nowTime   func() time.Time // nowTime function (injectable for testing)

	resendMu       sync.Mutex
	resendInFlight map[backend.OTPPurpose]bool
}

// Option defines a function type to modify the Controller instance.
type Option func(*Controller)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// WithOTPDigits overrides the expected one-time-code length.
func WithOTPDigits(digits int) Option {
	return func(c *Controller) {
		c.otpDigits = digits
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(c *Controller) {
		c.nowTime = nowFunc
	}
}

// New initializes a Controller with required dependencies. Captcha and
// Fingerprint default to the no-op widget boundaries when nil.
func New(deps Deps, options ...Option) (*Controller, error) {
	if deps.API == nil {
		return nil, errors.New("[authflow.New] API is required")
	}
	if deps.Flow == nil {
		return nil, errors.New("[authflow.New] Flow store is required")
	}
	if deps.Sessions == nil {
		return nil, errors.New("[authflow.New] Sessions store is required")
	}
	if deps.Captcha == nil {
		deps.Captcha = captcha.NopProvider{}
	}
	if deps.Fingerprint == nil {
		deps.Fingerprint = fingerprint.HostProvider{}
	}

	c := &Controller{
		deps:           deps,
		log:            zerolog.Nop(),
		otpDigits:      defaultOTPDigits,
		nowTime:        time.Now,
		resendInFlight: make(map[backend.OTPPurpose]bool),
	}

	for _, opt := range options {
		opt(c)
	}

	return c, nil
}
