package authflow_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-authflow/authflow"
	"github.com/jrsteele09/go-authflow/authflow/apifakes"
	"github.com/jrsteele09/go-authflow/captcha"
	"github.com/jrsteele09/go-authflow/fingerprint"
	"github.com/jrsteele09/go-authflow/flowstate"
	"github.com/jrsteele09/go-authflow/session"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "a@b.com"
	testName     = "John Doe"
	testPassword = "password123"
	testOTP      = "123456"
	testPIN      = "1234"
	testToken    = "access-token-1"
	testCaptcha  = "captcha-token-1"
)

// testFixture holds all controller dependencies
type testFixture struct {
	api        *apifakes.FakeAPI
	repo       *flowstate.InMemoryRepo
	flow       *flowstate.Store
	sessions   *session.InMemoryStore
	controller *authflow.Controller
}

// setupTestFixture creates a controller with fake collaborators
func setupTestFixture(t *testing.T, options ...authflow.Option) *testFixture {
	t.Helper()

	api := apifakes.NewFakeAPI()
	repo := flowstate.NewInMemoryRepo()
	flow := flowstate.NewStore(repo)
	sessions := session.NewInMemoryStore()

	controller, err := authflow.New(authflow.Deps{
		API:      api,
		Flow:     flow,
		Sessions: sessions,
		Captcha:  captcha.StaticProvider{Value: testCaptcha},
		Fingerprint: fingerprint.StaticProvider{Value: fingerprint.Device{
			Fingerprint: "fp-1",
			IPAddress:   "1.2.3.4",
			UserAgent:   "test-agent",
		}},
	}, options...)
	require.NoError(t, err)

	return &testFixture{
		api:        api,
		repo:       repo,
		flow:       flow,
		sessions:   sessions,
		controller: controller,
	}
}

// startSignup walks the fixture through a successful step 1
func (f *testFixture) startSignup(t *testing.T) {
	t.Helper()

	redirect, err := f.controller.StartSignup(context.Background(), authflow.SignupDetails{
		Name:     testName,
		Email:    testEmail,
		Password: testPassword,
	})
	require.NoError(t, err)
	require.Equal(t, authflow.RouteSignupVerifyOTP, redirect.Route)
}

// verifySignupOTP walks the fixture through a successful step 2
func (f *testFixture) verifySignupOTP(t *testing.T) {
	t.Helper()

	redirect, err := f.controller.VerifySignupOTP(context.Background(), testOTP)
	require.NoError(t, err)
	require.Equal(t, authflow.RouteSignupCreatePIN, redirect.Route)
}

// login puts a session in place
func (f *testFixture) login(t *testing.T) {
	t.Helper()
	require.NoError(t, f.sessions.Set(testToken, session.User{Email: testEmail}))
}

func TestNewRequiresDependencies(t *testing.T) {
	flow := flowstate.NewStore(flowstate.NewInMemoryRepo())
	sessions := session.NewInMemoryStore()
	api := apifakes.NewFakeAPI()

	_, err := authflow.New(authflow.Deps{Flow: flow, Sessions: sessions})
	require.Error(t, err)

	_, err = authflow.New(authflow.Deps{API: api, Sessions: sessions})
	require.Error(t, err)

	_, err = authflow.New(authflow.Deps{API: api, Flow: flow})
	require.Error(t, err)

	// Captcha and Fingerprint are optional
	_, err = authflow.New(authflow.Deps{API: api, Flow: flow, Sessions: sessions})
	require.NoError(t, err)
}
