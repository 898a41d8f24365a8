package flowstate

import (
	"encoding/json"
	"time"

	apperrors "github.com/jrsteele09/go-authflow/internal/errors"
	"github.com/pkg/errors"
)

// Keys owned by the flow store. Each key has exactly one producer: the flow
// controller writes the journey records, the inactivity lock writes the
// return path.
const (
	KeyTempSignupData      = "tempSignupData"
	KeyForgotPasswordEmail = "forgotPasswordEmail"
	KeyForgotPasswordOTP   = "forgotPasswordOtp"
	KeyPINResetEmail       = "pinResetEmail"
	KeyPINResetOTP         = "pinResetOtp"
	KeyPrePINVerifyPath    = "prePinVerifyPath"
)

// PendingRegistration accumulates the signup journey's payload. It is
// consumed (and deleted) only after PIN creation succeeds and the atomic
// account-creation call completes.
type PendingRegistration struct {
	FlowID            string    `json:"flow_id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Password          string    `json:"password"`
	ReferralCode      *string   `json:"referral_code,omitempty"`
	DeviceFingerprint string    `json:"device_fingerprint"`
	IPAddress         string    `json:"ip_address"`
	UserAgent         string    `json:"user_agent"`
	OTPVerified       bool      `json:"otp_verified"`
	CreatedAt         time.Time `json:"created_at"`
}

// Store gives the journey records typed access on top of a Repo. Unparsable
// stored state is surfaced as ErrFlowStateCorrupt so the controller can
// restart the journey rather than operate on garbage.
type Store struct {
	repo Repo
}

// NewStore wraps a Repo with the typed record accessors
func NewStore(repo Repo) *Store {
	return &Store{repo: repo}
}

// SetPendingRegistration writes the signup record. The email is immutable
// once set: updating an existing record with a different email fails, and
// the caller must clear the journey first.
func (s *Store) SetPendingRegistration(reg PendingRegistration) error {
	existing, err := s.PendingRegistration()
	if err == nil && existing.Email != reg.Email {
		return apperrors.ErrEmailImmutable
	}
	if err != nil && !apperrors.Is(err, apperrors.ErrFlowStateMissing) && !apperrors.Is(err, apperrors.ErrFlowStateCorrupt) {
		return err
	}

	encoded, err := json.Marshal(reg)
	if err != nil {
		return errors.Wrap(err, "[Store.SetPendingRegistration] marshal")
	}
	return s.repo.Set(KeyTempSignupData, string(encoded))
}

// PendingRegistration reads the signup record
func (s *Store) PendingRegistration() (*PendingRegistration, error) {
	value, err := s.repo.Get(KeyTempSignupData)
	if err != nil {
		return nil, err
	}

	var reg PendingRegistration
	if err := json.Unmarshal([]byte(value), &reg); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrFlowStateCorrupt, "[Store.PendingRegistration] unmarshal: %v", err)
	}
	return &reg, nil
}

// MarkSignupOTPVerified records that the signup OTP step completed
func (s *Store) MarkSignupOTPVerified() error {
	reg, err := s.PendingRegistration()
	if err != nil {
		return err
	}
	reg.OTPVerified = true

	encoded, err := json.Marshal(reg)
	if err != nil {
		return errors.Wrap(err, "[Store.MarkSignupOTPVerified] marshal")
	}
	return s.repo.Set(KeyTempSignupData, string(encoded))
}

// ClearSignup abandons or completes the signup journey
func (s *Store) ClearSignup() error {
	return s.repo.Delete(KeyTempSignupData)
}

// SetPasswordResetEmail starts the forgot-password journey
func (s *Store) SetPasswordResetEmail(email string) error {
	return s.repo.Set(KeyForgotPasswordEmail, email)
}

// PasswordResetEmail reads the forgot-password journey's email
func (s *Store) PasswordResetEmail() (string, error) {
	return s.repo.Get(KeyForgotPasswordEmail)
}

// SetPasswordResetOTP attaches the verified code to the journey
func (s *Store) SetPasswordResetOTP(code string) error {
	return s.repo.Set(KeyForgotPasswordOTP, code)
}

// PasswordResetOTP reads the verified code
func (s *Store) PasswordResetOTP() (string, error) {
	return s.repo.Get(KeyForgotPasswordOTP)
}

// ClearPasswordReset removes the whole forgot-password journey
func (s *Store) ClearPasswordReset() error {
	if err := s.repo.Delete(KeyForgotPasswordEmail); err != nil {
		return err
	}
	return s.repo.Delete(KeyForgotPasswordOTP)
}

// SetPINResetEmail starts the pin-reset journey. The namespace is
// independent of the password reset: both can be in flight at once.
func (s *Store) SetPINResetEmail(email string) error {
	return s.repo.Set(KeyPINResetEmail, email)
}

// PINResetEmail reads the pin-reset journey's email
func (s *Store) PINResetEmail() (string, error) {
	return s.repo.Get(KeyPINResetEmail)
}

// SetPINResetOTP attaches the verified code to the journey
func (s *Store) SetPINResetOTP(code string) error {
	return s.repo.Set(KeyPINResetOTP, code)
}

// PINResetOTP reads the verified code
func (s *Store) PINResetOTP() (string, error) {
	return s.repo.Get(KeyPINResetOTP)
}

// ClearPINReset removes the whole pin-reset journey
func (s *Store) ClearPINReset() error {
	if err := s.repo.Delete(KeyPINResetEmail); err != nil {
		return err
	}
	return s.repo.Delete(KeyPINResetOTP)
}

// SetReturnPath remembers where the user was when the inactivity lock fired
func (s *Store) SetReturnPath(route string) error {
	return s.repo.Set(KeyPrePINVerifyPath, route)
}

// ConsumeReturnPath reads and deletes the return path in one step so a
// second step-up cannot resume a stale route.
func (s *Store) ConsumeReturnPath() (string, error) {
	route, err := s.repo.Get(KeyPrePINVerifyPath)
	if err != nil {
		return "", err
	}
	if err := s.repo.Delete(KeyPrePINVerifyPath); err != nil {
		return "", err
	}
	return route, nil
}
