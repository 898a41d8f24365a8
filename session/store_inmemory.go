package session

import (
	"sync"
	"time"

	apperrors "github.com/jrsteele09/go-authflow/internal/errors"
	"github.com/pkg/errors"
)

var _ Store = (*InMemoryStore)(nil)

// InMemoryStore is a thread-safe in-memory implementation of the Store
// interface, scoped to the hosting process like the ephemeral flow state.
type InMemoryStore struct {
	mu      sync.RWMutex
	current *Session
	nowTime func() time.Time
}

// InMemoryStoreOption modifies an InMemoryStore during construction.
type InMemoryStoreOption func(*InMemoryStore)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) InMemoryStoreOption {
	return func(s *InMemoryStore) {
		s.nowTime = nowFunc
	}
}

// NewInMemoryStore creates a new in-memory session store
func NewInMemoryStore(options ...InMemoryStoreOption) *InMemoryStore {
	s := &InMemoryStore{nowTime: time.Now}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Set replaces the current session
func (s *InMemoryStore) Set(accessToken string, user User) error {
	if accessToken == "" {
		return errors.New("accessToken cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &Session{
		AccessToken: accessToken,
		User:        user,
		CreatedAt:   s.nowTime(),
	}
	return nil
}

// Get returns a copy of the current session
func (s *InMemoryStore) Get() (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return Session{}, apperrors.ErrSessionNotFound
	}
	return *s.current, nil
}

// Token returns the current access token
func (s *InMemoryStore) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return "", apperrors.ErrSessionNotFound
	}
	return s.current.AccessToken, nil
}

// Clear ends the session
func (s *InMemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	return nil
}
