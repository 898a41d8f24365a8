package authflow

import (
	"context"
	"strings"

	"github.com/jrsteele09/go-authflow/backend"
	"github.com/jrsteele09/go-authflow/internal/utils"
	"github.com/jrsteele09/go-authflow/session"
	"github.com/pkg/errors"
)

// Login exchanges credentials for a session. The CAPTCHA token is fetched
// from the widget boundary just before the call; login is a single screen,
// not a journey, so nothing is written to the flow store.
func (c *Controller) Login(ctx context.Context, email, password string) (Redirect, error) {
	if err := ValidateEmail(email); err != nil {
		return Redirect{}, err
	}
	if password == "" {
		return Redirect{}, errors.New("password is required")
	}

	captchaToken, err := c.deps.Captcha.Token(ctx)
	if err != nil {
		return Redirect{}, errors.Wrap(err, "[Controller.Login] captcha token")
	}

	resp, err := c.deps.API.Login(ctx, backend.LoginRequest{
		Email:          strings.TrimSpace(email),
		Password:       password,
		RecaptchaToken: captchaToken,
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("login failed")
		return Redirect{}, errors.Wrap(err, "[Controller.Login] login")
	}
	if !resp.Success || resp.AccessToken == "" {
		message := utils.Value(resp.Message)
		if message == "" {
			message = "login rejected"
		}
		return Redirect{}, errors.Errorf("[Controller.Login] %s", message)
	}

	user := c.profileFromLogin(resp, strings.TrimSpace(email))
	if err := c.deps.Sessions.Set(resp.AccessToken, user); err != nil {
		return Redirect{}, errors.Wrap(err, "[Controller.Login] store session")
	}

	c.log.Info().Str("email", user.Email).Msg("login succeeded")
	return Redirect{Route: RouteDashboard}, nil
}

// profileFromLogin prefers the response's user object, falling back to the
// token's display claims, then to just the entered email.
func (c *Controller) profileFromLogin(resp *backend.LoginResponse, email string) session.User {
	if resp.User != nil {
		return session.User{
			ID:       resp.User.ID,
			Name:     resp.User.Name,
			Email:    resp.User.Email,
			Verified: resp.User.Verified,
		}
	}
	if user, err := session.UserFromToken(resp.AccessToken); err == nil && user.Email != "" {
		return user
	}
	return session.User{Email: email}
}

// Logout ends the session locally. The backend invalidates the token on its
// own schedule; the client just stops holding it.
func (c *Controller) Logout() Redirect {
	if err := c.deps.Sessions.Clear(); err != nil {
		c.log.Warn().Err(err).Msg("session clear failed during logout")
	}
	c.log.Info().Msg("logged out")
	return Redirect{Route: RouteLogin}
}
