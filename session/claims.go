package session

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// profileClaims are the display claims the backend embeds in its access
// tokens.
type profileClaims struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	jwt.RegisteredClaims
}

// UserFromToken builds a best-effort profile projection from the token's
// claims without verifying the signature. It exists only as a display
// fallback when the login response omits the user object; token validity is
// decided exclusively by the backend, never here.
func UserFromToken(accessToken string) (User, error) {
	parser := jwt.NewParser()

	var claims profileClaims
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
		return User{}, errors.Wrap(err, "[UserFromToken] parse token")
	}

	return User{
		ID:       claims.Subject,
		Name:     claims.Name,
		Email:    claims.Email,
		Verified: claims.Verified,
	}, nil
}
