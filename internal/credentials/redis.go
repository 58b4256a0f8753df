package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the token in Redis so it survives console restarts.
// When the token is a JWT with an expiry, the key expires with it.
type RedisStore struct {
	rdb   redis.Cmdable
	key   string
	clock func() time.Time
}

func NewRedisStore(rdb redis.Cmdable, sessionName string) *RedisStore {
	return &RedisStore{rdb: rdb, key: SessionKey(sessionName), clock: time.Now}
}

// SessionKey is the Redis key holding the token of a named console session.
func SessionKey(sessionName string) string {
	return "console:session:" + sessionName + ":token"
}

func (s *RedisStore) Token(ctx context.Context) (string, error) {
	tok, err := s.rdb.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("credentials: read token: %w", err)
	}
	return tok, nil
}

func (s *RedisStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	var ttl time.Duration
	if info, err := Inspect(token); err == nil {
		ttl = info.TTL(s.clock())
		if ttl < 0 {
			// Already expired; storing it would only produce a 401 later.
			return s.Clear(ctx)
		}
	}
	if err := s.rdb.Set(ctx, s.key, token, ttl).Err(); err != nil {
		return fmt.Errorf("credentials: save token: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("credentials: clear token: %w", err)
	}
	return nil
}
