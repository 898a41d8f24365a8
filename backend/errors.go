package backend

import (
	"fmt"
	"net/http"

	apperrors "github.com/jrsteele09/go-authflow/internal/errors"
)

// APIError is a non-2xx response from the backend. Detail carries the
// backend's human-readable message verbatim so the UI can surface it
// unchanged.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// Unwrap classifies the failure: authorization failures are terminal for the
// session, everything else is a retryable rejection.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return apperrors.ErrUnauthorized
	}
	return apperrors.ErrBackendRejected
}

// ErrorDetail extracts the backend's message from an error chain, falling
// back to the given default notice for transport failures.
func ErrorDetail(err error, fallback string) string {
	var apiErr *APIError
	if apperrors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
