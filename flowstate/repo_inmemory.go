package flowstate

import (
	"sync"

	apperrors "github.com/jrsteele09/go-authflow/internal/errors"
	"github.com/pkg/errors"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo
// interface. It is the default store and carries the tab-scoped semantics:
// state lives exactly as long as the process.
type InMemoryRepo struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewInMemoryRepo creates a new in-memory flow state repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		values: make(map[string]string),
	}
}

// Set stores or updates a flow state value
func (r *InMemoryRepo) Set(key, value string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[key] = value
	return nil
}

// Get retrieves a flow state value by key
func (r *InMemoryRepo) Get(key string) (string, error) {
	if key == "" {
		return "", errors.New("key cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.values[key]
	if !exists {
		return "", apperrors.ErrFlowStateMissing
	}
	return value, nil
}

// Delete removes a flow state value
func (r *InMemoryRepo) Delete(key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.values, key)
	return nil
}
