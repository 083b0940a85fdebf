// README: Session store backed by Redis string keys with a sliding TTL.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "pathplanner:session:%s"

type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisStore(redis *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: redis, ttl: ttl}
}

func sessionKey(id string) string {
	return fmt.Sprintf(sessionKeyPrefix, id)
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	val, err := s.redis.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(val, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

// Save writes the session and refreshes its TTL.
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.redis.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err()
}
