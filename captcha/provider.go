// Package captcha is the boundary to the third-party invisible CAPTCHA
// widget. The widget itself is never re-implemented here; callers plug in
// whatever produces a token for the backend to verify.
package captcha

import "context"

// TokenProvider produces a CAPTCHA token for the login call.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticProvider returns a fixed token. Useful for tests and for backends
// running with CAPTCHA verification in permissive mode.
type StaticProvider struct {
	Value string
}

func (p StaticProvider) Token(_ context.Context) (string, error) {
	return p.Value, nil
}

// NopProvider returns an empty token for backends with CAPTCHA disabled.
type NopProvider struct{}

func (NopProvider) Token(_ context.Context) (string, error) {
	return "", nil
}
