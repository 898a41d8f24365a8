package authflow_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-authflow/authflow"
	apperrors "github.com/jrsteele09/go-authflow/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestLockForInactivityCapturesReturnPath(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	redirect := f.controller.LockForInactivity("/rewards/history")
	require.Equal(t, authflow.RoutePinVerifyLogin, redirect.Route)

	// Soft lock: the session token is untouched
	token, err := f.sessions.Token()
	require.NoError(t, err)
	require.Equal(t, testToken, token)
}

func TestLockForInactivityWithoutSessionIsNoop(t *testing.T) {
	f := setupTestFixture(t)

	redirect := f.controller.LockForInactivity("/dashboard")
	require.True(t, redirect.IsZero())
}

func TestVerifyPINResumesReturnPathExactlyOnce(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)
	f.controller.LockForInactivity("/rewards/history")

	redirect, err := f.controller.VerifyPIN(context.Background(), testPIN)
	require.NoError(t, err)
	require.Equal(t, "/rewards/history", redirect.Route)

	require.Len(t, f.api.VerifyPINCalls, 1)
	require.Equal(t, testToken, f.api.VerifyPINCalls[0].AccessToken)

	// A second step-up has no stored path and falls back to the dashboard
	redirect, err = f.controller.VerifyPIN(context.Background(), testPIN)
	require.NoError(t, err)
	require.Equal(t, authflow.RouteDashboard, redirect.Route)
}

func TestVerifyPINFailureKeepsSession(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)
	f.controller.LockForInactivity("/rewards/history")

	f.api.VerifyPINErr = apperrors.ErrBackendRejected

	_, err := f.controller.VerifyPIN(context.Background(), testPIN)
	require.ErrorIs(t, err, apperrors.ErrBackendRejected)

	// Still logged in, still locked, return path still pending
	token, tokenErr := f.sessions.Token()
	require.NoError(t, tokenErr)
	require.Equal(t, testToken, token)

	f.api.VerifyPINErr = nil
	redirect, err := f.controller.VerifyPIN(context.Background(), testPIN)
	require.NoError(t, err)
	require.Equal(t, "/rewards/history", redirect.Route)
}

func TestVerifyPINUnauthorizedClearsSession(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	f.api.VerifyPINErr = apperrors.ErrUnauthorized

	redirect, err := f.controller.VerifyPIN(context.Background(), testPIN)
	require.NoError(t, err)
	require.Equal(t, authflow.RouteLogin, redirect.Route)
	require.Equal(t, authflow.NoticeSessionExpired, redirect.Notice)

	_, err = f.sessions.Token()
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestVerifyPINWithoutSessionRedirectsToLogin(t *testing.T) {
	f := setupTestFixture(t)

	redirect, err := f.controller.VerifyPIN(context.Background(), testPIN)
	require.NoError(t, err)
	require.Equal(t, authflow.RouteLogin, redirect.Route)
	require.Empty(t, f.api.VerifyPINCalls)
}

func TestVerifyPINValidatesFormatLocally(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	_, err := f.controller.VerifyPIN(context.Background(), "12a4")
	require.ErrorIs(t, err, apperrors.ErrInvalidPIN)
	require.Empty(t, f.api.VerifyPINCalls)
}

func TestEscapeToPINReset(t *testing.T) {
	f := setupTestFixture(t)

	redirect := f.controller.EscapeToPINReset()
	require.Equal(t, authflow.RoutePinReset, redirect.Route)
}
