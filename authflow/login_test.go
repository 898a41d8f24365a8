package authflow_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-authflow/authflow"
	"github.com/jrsteele09/go-authflow/backend"
	"github.com/jrsteele09/go-authflow/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresSessionAndRedirects(t *testing.T) {
	f := setupTestFixture(t)
	f.api.LoginResp = &backend.LoginResponse{
		Success:     true,
		AccessToken: testToken,
		User:        &backend.UserProfile{ID: "u1", Name: testName, Email: testEmail, Verified: true},
	}

	redirect, err := f.controller.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	require.Equal(t, authflow.RouteDashboard, redirect.Route)

	// The CAPTCHA token travelled with the credentials
	require.Len(t, f.api.LoginCalls, 1)
	require.Equal(t, testCaptcha, f.api.LoginCalls[0].RecaptchaToken)

	current, err := f.sessions.Get()
	require.NoError(t, err)
	require.Equal(t, testToken, current.AccessToken)
	require.Equal(t, testEmail, current.User.Email)
	require.True(t, current.User.Verified)
}

func TestLoginRejectionSurfacesMessage(t *testing.T) {
	f := setupTestFixture(t)
	f.api.LoginResp = &backend.LoginResponse{
		Success: false,
		Message: utils.Ptr("Invalid credentials"),
	}

	_, err := f.controller.Login(context.Background(), testEmail, "wrong-password")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Invalid credentials")

	// No session was created
	_, err = f.sessions.Token()
	require.Error(t, err)
}

func TestLoginValidatesLocallyBeforeNetwork(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.controller.Login(context.Background(), "not-an-email", testPassword)
	require.Error(t, err)

	_, err = f.controller.Login(context.Background(), testEmail, "")
	require.Error(t, err)

	require.Empty(t, f.api.LoginCalls)
}

func TestLoginFallsBackToEnteredEmailWhenProfileAbsent(t *testing.T) {
	f := setupTestFixture(t)
	f.api.LoginResp = &backend.LoginResponse{
		Success:     true,
		AccessToken: "opaque-token", // not a JWT, so no claims to project
	}

	redirect, err := f.controller.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	require.Equal(t, authflow.RouteDashboard, redirect.Route)

	current, err := f.sessions.Get()
	require.NoError(t, err)
	require.Equal(t, testEmail, current.User.Email)
}

func TestLogoutClearsSession(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	redirect := f.controller.Logout()
	require.Equal(t, authflow.RouteLogin, redirect.Route)

	_, err := f.sessions.Token()
	require.Error(t, err)
}
