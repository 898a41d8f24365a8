// Package backend is the typed client for the reward platform's REST auth
// boundary. The backend owns all business rules (OTP expiry, token validity,
// PIN lockout); this client only shapes requests, attaches the bearer token,
// and classifies failures.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-authflow/internal/errors"
	"github.com/pkg/errors"
)

const defaultTimeout = 15 * time.Second

// Client calls the backend auth endpoints. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option modifies a Client during construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (primarily for testing
// and for callers that need custom transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a backend client for the given base URL
// (e.g. "https://api.example.com").
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// RequestOTP asks the backend to issue a one-time code to the email address
// for the declared purpose. Safe to call repeatedly (resend).
func (c *Client) RequestOTP(ctx context.Context, email string, purpose OTPPurpose) error {
	return c.do(ctx, http.MethodPost, "/auth/request-otp", requestOTPRequest{
		Email:   email,
		Purpose: purpose,
	}, "", nil)
}

// VerifyOTP checks the code against the backend. Succeeds or fails
// atomically; there is no partially verified state.
func (c *Client) VerifyOTP(ctx context.Context, email, code string, purpose OTPPurpose) error {
	return c.do(ctx, http.MethodPost, "/auth/verify-otp", verifyOTPRequest{
		Email:   email,
		OTPCode: code,
		Purpose: purpose,
	}, "", nil)
}

// Signup creates the account in a single atomic call carrying the full
// accumulated journey payload.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/signup", req, "", nil)
}

// Login exchanges credentials (and a CAPTCHA token) for an access token and
// a cached user projection.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, "", &resp); err != nil {
		return nil, errors.Wrap(err, "[Client.Login] login request")
	}
	return &resp, nil
}

// VerifyPIN re-proves the PIN for the authenticated session (step-up).
func (c *Client) VerifyPIN(ctx context.Context, accessToken, pin string) error {
	if strings.TrimSpace(accessToken) == "" {
		return errors.Wrap(apperrors.ErrUnauthorized, "[Client.VerifyPIN] missing access token")
	}
	return c.do(ctx, http.MethodPost, "/auth/verify-pin", verifyPINRequest{PIN: pin}, accessToken, nil)
}

// ResetPassword finalises the forgot-password journey.
func (c *Client) ResetPassword(ctx context.Context, email, otpCode, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/auth/reset-password", resetPasswordRequest{
		Email:       email,
		OTPCode:     otpCode,
		NewPassword: newPassword,
	}, "", nil)
}

// ResetPIN finalises the pin-reset journey. The old PIN is not required;
// email ownership was re-proved via OTP.
func (c *Client) ResetPIN(ctx context.Context, email, otpCode, newPIN string) error {
	return c.do(ctx, http.MethodPost, "/auth/reset-pin", resetPINRequest{
		Email:   email,
		OTPCode: otpCode,
		NewPIN:  newPIN,
	}, "", nil)
}

// do issues a JSON request and decodes the response into out (when non-nil).
// Non-2xx responses become *APIError; transport failures wrap ErrNetwork.
func (c *Client) do(ctx context.Context, method, path string, body any, bearer string, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "[Client.do] marshal request body")
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, "[Client.do] build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrNetwork, "[Client.do] %s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Detail:     decodeDetail(resp.Body),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperrors.Wrapf(apperrors.ErrNetwork, "[Client.do] decode response: %v", err)
		}
	}
	return nil
}

// decodeDetail pulls the standard `detail` field out of an error body.
// Anything unparsable is treated as an empty detail rather than an error:
// the status code alone still classifies the failure.
func decodeDetail(r io.Reader) string {
	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return ""
	}
	return envelope.Detail
}
