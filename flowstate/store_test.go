package flowstate_test

import (
	"testing"

	"github.com/jrsteele09/go-authflow/flowstate"
	apperrors "github.com/jrsteele09/go-authflow/internal/errors"
	"github.com/stretchr/testify/require"
)

func newStore() (*flowstate.Store, *flowstate.InMemoryRepo) {
	repo := flowstate.NewInMemoryRepo()
	return flowstate.NewStore(repo), repo
}

func pendingReg(email string) flowstate.PendingRegistration {
	return flowstate.PendingRegistration{
		Name:              "John Doe",
		Email:             email,
		Password:          "password123",
		DeviceFingerprint: "fp-1",
		IPAddress:         "1.2.3.4",
		UserAgent:         "test-agent",
	}
}

func TestPendingRegistrationRoundTrip(t *testing.T) {
	store, _ := newStore()

	require.NoError(t, store.SetPendingRegistration(pendingReg("a@b.com")))

	reg, err := store.PendingRegistration()
	require.NoError(t, err)
	require.Equal(t, "a@b.com", reg.Email)
	require.Equal(t, "John Doe", reg.Name)
	require.False(t, reg.OTPVerified)
}

func TestPendingRegistrationMissing(t *testing.T) {
	store, _ := newStore()

	_, err := store.PendingRegistration()
	require.ErrorIs(t, err, apperrors.ErrFlowStateMissing)
}

func TestPendingRegistrationEmailImmutable(t *testing.T) {
	store, _ := newStore()

	require.NoError(t, store.SetPendingRegistration(pendingReg("a@b.com")))

	err := store.SetPendingRegistration(pendingReg("other@b.com"))
	require.ErrorIs(t, err, apperrors.ErrEmailImmutable)

	// Same email may be rewritten (e.g. OTP verification flag)
	updated := pendingReg("a@b.com")
	updated.OTPVerified = true
	require.NoError(t, store.SetPendingRegistration(updated))
}

func TestCorruptRecordSurfacesSessionError(t *testing.T) {
	store, repo := newStore()

	require.NoError(t, repo.Set(flowstate.KeyTempSignupData, "{not json"))

	_, err := store.PendingRegistration()
	require.ErrorIs(t, err, apperrors.ErrFlowStateCorrupt)
}

func TestMarkSignupOTPVerified(t *testing.T) {
	store, _ := newStore()

	require.NoError(t, store.SetPendingRegistration(pendingReg("a@b.com")))
	require.NoError(t, store.MarkSignupOTPVerified())

	reg, err := store.PendingRegistration()
	require.NoError(t, err)
	require.True(t, reg.OTPVerified)
}

func TestClearSignupDeletesRecord(t *testing.T) {
	store, _ := newStore()

	require.NoError(t, store.SetPendingRegistration(pendingReg("a@b.com")))
	require.NoError(t, store.ClearSignup())

	_, err := store.PendingRegistration()
	require.ErrorIs(t, err, apperrors.ErrFlowStateMissing)

	// Clearing again is not an error
	require.NoError(t, store.ClearSignup())
}

func TestResetJourneysAreIndependent(t *testing.T) {
	store, _ := newStore()

	require.NoError(t, store.SetPasswordResetEmail("a@b.com"))
	require.NoError(t, store.SetPINResetEmail("a@b.com"))
	require.NoError(t, store.SetPasswordResetOTP("111111"))
	require.NoError(t, store.SetPINResetOTP("222222"))

	pwOTP, err := store.PasswordResetOTP()
	require.NoError(t, err)
	require.Equal(t, "111111", pwOTP)

	pinOTP, err := store.PINResetOTP()
	require.NoError(t, err)
	require.Equal(t, "222222", pinOTP)

	// Clearing one journey leaves the other in flight
	require.NoError(t, store.ClearPasswordReset())

	_, err = store.PasswordResetEmail()
	require.ErrorIs(t, err, apperrors.ErrFlowStateMissing)

	email, err := store.PINResetEmail()
	require.NoError(t, err)
	require.Equal(t, "a@b.com", email)
}

func TestReturnPathConsumedExactlyOnce(t *testing.T) {
	store, _ := newStore()

	require.NoError(t, store.SetReturnPath("/rewards/history"))

	route, err := store.ConsumeReturnPath()
	require.NoError(t, err)
	require.Equal(t, "/rewards/history", route)

	_, err = store.ConsumeReturnPath()
	require.ErrorIs(t, err, apperrors.ErrFlowStateMissing)
}
