package apifakes

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/go-authflow/authflow"
	"github.com/jrsteele09/go-authflow/backend"
)

var _ authflow.API = (*FakeAPI)(nil)

// FakeAPI is a hand-written fake of the authflow.API interface. Error
// fields are returned verbatim; call slices record every invocation so
// tests can assert that guards never reach the backend.
type FakeAPI struct {
	mu sync.Mutex

	RequestOTPErr    error
	VerifyOTPErr     error
	SignupErr        error
	LoginResp        *backend.LoginResponse
	LoginErr         error
	VerifyPINErr     error
	ResetPasswordErr error
	ResetPINErr      error

	// RequestOTPDelay simulates a slow backend for in-flight guard tests.
	RequestOTPDelay time.Duration

	RequestOTPCalls    []OTPCall
	VerifyOTPCalls     []OTPCall
	SignupCalls        []backend.SignupRequest
	LoginCalls         []backend.LoginRequest
	VerifyPINCalls     []PINCall
	ResetPasswordCalls []ResetCall
	ResetPINCalls      []ResetCall
}

type OTPCall struct {
	Email   string
	Code    string
	Purpose backend.OTPPurpose
}

type PINCall struct {
	AccessToken string
	PIN         string
}

type ResetCall struct {
	Email   string
	OTPCode string
	Value   string // new password or new PIN
}

func NewFakeAPI() *FakeAPI {
	return &FakeAPI{}
}

func (f *FakeAPI) RequestOTP(_ context.Context, email string, purpose backend.OTPPurpose) error {
	if f.RequestOTPDelay > 0 {
		time.Sleep(f.RequestOTPDelay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.RequestOTPCalls = append(f.RequestOTPCalls, OTPCall{Email: email, Purpose: purpose})
	return f.RequestOTPErr
}

func (f *FakeAPI) VerifyOTP(_ context.Context, email, code string, purpose backend.OTPPurpose) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.VerifyOTPCalls = append(f.VerifyOTPCalls, OTPCall{Email: email, Code: code, Purpose: purpose})
	return f.VerifyOTPErr
}

func (f *FakeAPI) Signup(_ context.Context, req backend.SignupRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignupCalls = append(f.SignupCalls, req)
	return f.SignupErr
}

func (f *FakeAPI) Login(_ context.Context, req backend.LoginRequest) (*backend.LoginResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls = append(f.LoginCalls, req)
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.LoginResp, nil
}

func (f *FakeAPI) VerifyPIN(_ context.Context, accessToken, pin string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.VerifyPINCalls = append(f.VerifyPINCalls, PINCall{AccessToken: accessToken, PIN: pin})
	return f.VerifyPINErr
}

func (f *FakeAPI) ResetPassword(_ context.Context, email, otpCode, newPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ResetPasswordCalls = append(f.ResetPasswordCalls, ResetCall{Email: email, OTPCode: otpCode, Value: newPassword})
	return f.ResetPasswordErr
}

func (f *FakeAPI) ResetPIN(_ context.Context, email, otpCode, newPIN string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ResetPINCalls = append(f.ResetPINCalls, ResetCall{Email: email, OTPCode: otpCode, Value: newPIN})
	return f.ResetPINErr
}

// TotalCalls reports how many backend calls of any kind were made.
func (f *FakeAPI) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.RequestOTPCalls) + len(f.VerifyOTPCalls) + len(f.SignupCalls) +
		len(f.LoginCalls) + len(f.VerifyPINCalls) + len(f.ResetPasswordCalls) + len(f.ResetPINCalls)
}
