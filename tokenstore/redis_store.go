package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces the credential keys, e.g. one per account or
	// device. Defaults to "sessionkit".
	Prefix      string
	DialTimeout time.Duration
}

// RedisStore keeps the credentials in redis so several front-end processes
// can share one session (kiosk fleets, BFF replicas).
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to redis and verifies the connection before
// returning the store.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.Prefix == "" {
		opts.Prefix = "sessionkit"
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("tokenstore: redis connection failed: %w", err)
	}

	return &RedisStore{client: client, prefix: opts.Prefix}, nil
}

func (s *RedisStore) key(name string) string {
	return s.prefix + ":" + name
}

func (s *RedisStore) get(ctx context.Context, name string) (string, error) {
	val, err := s.client.Get(ctx, s.key(name)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("tokenstore: redis get %s: %w", name, err)
	}
	return val, nil
}

func (s *RedisStore) set(ctx context.Context, name, value string) error {
	if err := s.client.Set(ctx, s.key(name), value, 0).Err(); err != nil {
		return fmt.Errorf("tokenstore: redis set %s: %w", name, err)
	}
	return nil
}

func (s *RedisStore) AccessToken(ctx context.Context) (string, error) {
	return s.get(ctx, KeyAccessToken)
}

func (s *RedisStore) SetAccessToken(ctx context.Context, token string) error {
	return s.set(ctx, KeyAccessToken, token)
}

func (s *RedisStore) RefreshToken(ctx context.Context) (string, error) {
	return s.get(ctx, KeyRefreshToken)
}

func (s *RedisStore) SetRefreshToken(ctx context.Context, token string) error {
	return s.set(ctx, KeyRefreshToken, token)
}

func (s *RedisStore) UserID(ctx context.Context) (string, error) {
	return s.get(ctx, KeyUserID)
}

func (s *RedisStore) SetUserID(ctx context.Context, id string) error {
	return s.set(ctx, KeyUserID, id)
}

// Clear deletes all three keys. DEL on missing keys is a no-op, so Clear
// stays idempotent.
func (s *RedisStore) Clear(ctx context.Context) error {
	keys := []string{s.key(KeyAccessToken), s.key(KeyRefreshToken), s.key(KeyUserID)}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("tokenstore: redis clear: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
