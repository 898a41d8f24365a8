// Package session holds the current access credential and cached user
// profile for the lifetime of the authenticated session. There is no
// client-side refresh or expiry: one token is used until the backend rejects
// it, and the only recovery path is a fresh login.
package session

import "time"

// User is the cached profile projection kept for display. The backend
// remains the authority on every flag.
type User struct {
	ID       string
	Name     string
	Email    string
	Verified bool
}

// Session pairs the access token with the cached profile.
type Session struct {
	AccessToken string
	User        User
	CreatedAt   time.Time
}

// Store is the process-wide session holder.
type Store interface {
	// Set replaces the current session
	Set(accessToken string, user User) error

	// Get returns the current session; ErrSessionNotFound when logged out
	Get() (Session, error)

	// Token returns just the access token; ErrSessionNotFound when logged out
	Token() (string, error)

	// Clear ends the session (logout or authorization failure)
	Clear() error
}
