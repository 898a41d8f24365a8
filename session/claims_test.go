package session_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-authflow/session"
	"github.com/stretchr/testify/require"
)

func signedTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return signed
}

func TestUserFromTokenProjectsDisplayClaims(t *testing.T) {
	accessToken := signedTestToken(t, jwt.MapClaims{
		"sub":      "user-1",
		"name":     "John Doe",
		"email":    "a@b.com",
		"verified": true,
	})

	user, err := session.UserFromToken(accessToken)
	require.NoError(t, err)
	require.Equal(t, "user-1", user.ID)
	require.Equal(t, "John Doe", user.Name)
	require.Equal(t, "a@b.com", user.Email)
	require.True(t, user.Verified)
}

func TestUserFromTokenWithMissingClaims(t *testing.T) {
	accessToken := signedTestToken(t, jwt.MapClaims{"sub": "user-1"})

	user, err := session.UserFromToken(accessToken)
	require.NoError(t, err)
	require.Equal(t, "user-1", user.ID)
	require.Empty(t, user.Email)
}

func TestUserFromTokenRejectsGarbage(t *testing.T) {
	_, err := session.UserFromToken("not-a-jwt")
	require.Error(t, err)
}
