package authflow

import (
	"context"

	"github.com/jrsteele09/go-authflow/backend"
)

// API is the slice of the backend boundary the journeys consume.
// backend.Client satisfies it; tests use apifakes.
type API interface {
	RequestOTP(ctx context.Context, email string, purpose backend.OTPPurpose) error
	VerifyOTP(ctx context.Context, email, code string, purpose backend.OTPPurpose) error
	Signup(ctx context.Context, req backend.SignupRequest) error
	Login(ctx context.Context, req backend.LoginRequest) (*backend.LoginResponse, error)
	VerifyPIN(ctx context.Context, accessToken, pin string) error
	ResetPassword(ctx context.Context, email, otpCode, newPassword string) error
	ResetPIN(ctx context.Context, email, otpCode, newPIN string) error
}

var _ API = (*backend.Client)(nil)
