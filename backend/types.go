package backend

// OTPPurpose declares why a one-time code is being issued. The backend
// scopes code validity to the purpose, so a signup code cannot be replayed
// against a password reset.
type OTPPurpose string

const (
	PurposeSignup        OTPPurpose = "signup"
	PurposePasswordReset OTPPurpose = "password_reset"
	PurposePINReset      OTPPurpose = "pin_reset"
)

// SignupRequest is the single atomic account-creation payload. The PIN is
// never sent on its own; it always travels with the rest of the identity
// data collected across the signup journey.
type SignupRequest struct {
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Password          string  `json:"password"`
	ReferralCode      *string `json:"referral_code,omitempty"`
	DeviceFingerprint string  `json:"device_fingerprint"`
	IPAddress         string  `json:"ip_address"`
	UserAgent         string  `json:"user_agent"`
	PIN               string  `json:"pin"`
}

type LoginRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// UserProfile is the wire projection of the account returned by the login
// endpoint. The client caches it for display only; the backend remains the
// authority on every flag.
type UserProfile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

type LoginResponse struct {
	Success     bool         `json:"success"`
	AccessToken string       `json:"accessToken"`
	User        *UserProfile `json:"user"`
	Message     *string      `json:"message,omitempty"`
}

type requestOTPRequest struct {
	Email   string     `json:"email"`
	Purpose OTPPurpose `json:"purpose"`
}

type verifyOTPRequest struct {
	Email   string     `json:"email"`
	OTPCode string     `json:"otp_code"`
	Purpose OTPPurpose `json:"purpose"`
}

type verifyPINRequest struct {
	PIN string `json:"pin"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTPCode     string `json:"otp_code"`
	NewPassword string `json:"new_password"`
}

type resetPINRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otp_code"`
	NewPIN  string `json:"new_pin"`
}
