package memory

import (
	"context"
	"sync"
	"time"

	"github.com/xela07ax/snortview/internal/domain"
)

type session struct {
	user      domain.User
	expiresAt time.Time
}

// SessionStore держит живые сессии в памяти процесса, ключ — jti токена
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]session), now: time.Now}
}

func (s *SessionStore) Create(_ context.Context, jti string, user domain.User, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[jti] = session{user: user, expiresAt: s.now().Add(ttl)}
	s.evictExpired()
	return nil
}

func (s *SessionStore) Get(_ context.Context, jti string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[jti]
	if !ok {
		return domain.User{}, domain.ErrSessionNotFound
	}
	if !s.now().Before(sess.expiresAt) {
		delete(s.sessions, jti)
		return domain.User{}, domain.ErrSessionNotFound
	}
	return sess.user, nil
}

// Delete идемпотентен: повторный logout не ошибка
func (s *SessionStore) Delete(_ context.Context, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, jti)
	return nil
}

// вызывается под mu
func (s *SessionStore) evictExpired() {
	now := s.now()
	for jti, sess := range s.sessions {
		if !now.Before(sess.expiresAt) {
			delete(s.sessions, jti)
		}
	}
}
