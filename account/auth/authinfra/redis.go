package authinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abraxas-365/aikyuu/account/auth"
	"github.com/go-redis/redis/v8"
)

// RedisTokenStore shares one session between machines. The key expires
// together with the token.
type RedisTokenStore struct {
	client *redis.Client
	key    string
	now    func() time.Time
}

var _ auth.TokenStore = (*RedisTokenStore)(nil)

func NewRedisTokenStore(client *redis.Client, key string) *RedisTokenStore {
	return &RedisTokenStore{client: client, key: key, now: time.Now}
}

func (r *RedisTokenStore) Load(ctx context.Context) (*auth.Session, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", r.key, err)
	}

	var s auth.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", r.key, err)
	}
	return &s, nil
}

func (r *RedisTokenStore) Save(ctx context.Context, s *auth.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	var ttl time.Duration
	if !s.ExpiresAt.IsZero() {
		ttl = s.ExpiresAt.Sub(r.now())
		if ttl <= 0 {
			return r.Clear(ctx)
		}
	}

	if err := r.client.Set(ctx, r.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", r.key, err)
	}
	return nil
}

func (r *RedisTokenStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("clear session %s: %w", r.key, err)
	}
	return nil
}
