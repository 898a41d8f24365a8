package flowstate

import (
	"context"
	"time"

	apperrors "github.com/jrsteele09/go-authflow/internal/errors"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "authflow"

var _ Repo = (*RedisRepo)(nil)

// RedisRepo backs the flow state with Redis for deployments where the
// journey runs server-side (BFF) and must survive a single process. A TTL
// bounds abandoned journeys; zero means no expiry, matching the default
// client-side policy of leaving expiry decisions to the backend.
type RedisRepo struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOption modifies a RedisRepo during construction.
type RedisOption func(*RedisRepo)

// WithTTL sets an expiry on every stored value.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *RedisRepo) {
		r.ttl = ttl
	}
}

// WithKeyPrefix overrides the key namespace (useful when several apps share
// one Redis).
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *RedisRepo) {
		r.prefix = prefix
	}
}

// NewRedisRepo creates a Redis-backed flow state repository
func NewRedisRepo(client *redis.Client, options ...RedisOption) *RedisRepo {
	r := &RedisRepo{
		client: client,
		prefix: redisKeyPrefix,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *RedisRepo) key(key string) string {
	return r.prefix + ":" + key
}

// Set stores or updates a flow state value
func (r *RedisRepo) Set(key, value string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if err := r.client.Set(context.Background(), r.key(key), value, r.ttl).Err(); err != nil {
		return errors.Wrap(err, "[RedisRepo.Set] redis set")
	}
	return nil
}

// Get retrieves a flow state value by key
func (r *RedisRepo) Get(key string) (string, error) {
	if key == "" {
		return "", errors.New("key cannot be empty")
	}
	value, err := r.client.Get(context.Background(), r.key(key)).Result()
	if err == redis.Nil {
		return "", apperrors.ErrFlowStateMissing
	}
	if err != nil {
		return "", errors.Wrap(err, "[RedisRepo.Get] redis get")
	}
	return value, nil
}

// Delete removes a flow state value
func (r *RedisRepo) Delete(key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if err := r.client.Del(context.Background(), r.key(key)).Err(); err != nil {
		return errors.Wrap(err, "[RedisRepo.Delete] redis del")
	}
	return nil
}
