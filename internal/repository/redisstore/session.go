package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/xela07ax/snortview/internal/domain"
	"github.com/xela07ax/snortview/internal/infra"
)

// SessionStore хранит сессию как JSON пользователя под snortview:session:<jti> с TTL токена
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) Create(ctx context.Context, jti string, user domain.User, ttl time.Duration) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.rdb.Set(ctx, infra.SessionKey(jti), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, jti string) (domain.User, error) {
	data, err := s.rdb.Get(ctx, infra.SessionKey(jti)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.User{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("redis get session: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return domain.User{}, fmt.Errorf("decode session: %w", err)
	}
	return user, nil
}

func (s *SessionStore) Delete(ctx context.Context, jti string) error {
	if err := s.rdb.Del(ctx, infra.SessionKey(jti)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
