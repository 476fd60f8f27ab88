package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/xela07ax/snortview/internal/domain"
)

// DefaultUsers — стартовый список управляемых пользователей
func DefaultUsers() []domain.User {
	return []domain.User{
		{ID: 1, Username: "admin", Email: "admin@example.com", IsActive: true},
		{ID: 2, Username: "user1", Email: "user1@example.com", IsActive: true},
		{ID: 3, Username: "user2", Email: "user2@example.com", IsActive: false},
		{ID: 4, Username: "analyst", Email: "analyst@example.com", IsActive: true},
		{ID: 5, Username: "security", Email: "security@example.com", IsActive: false},
	}
}

// UserRepo — список пользователей страницы управления. Все операции под одним mutex.
type UserRepo struct {
	mu    sync.Mutex
	users []domain.User
}

func NewUserRepo(seed []domain.User) *UserRepo {
	return &UserRepo{users: slices.Clone(seed)}
}

func (r *UserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.users), nil
}

func (r *UserRepo) SetActive(_ context.Context, id int, active bool) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.User{}, domain.ErrUserNotFound
	}
	r.users[i].IsActive = active
	return r.users[i], nil
}

func (r *UserRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.ErrUserNotFound
	}
	r.users = slices.Delete(r.users, i, i+1)
	return nil
}

// Create присваивает ID = max+1 и добавляет пользователя в конец списка
func (r *UserRepo) Create(_ context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := 1
	for _, existing := range r.users {
		next = max(next, existing.ID+1)
	}
	u.ID = next
	r.users = append(r.users, u)
	return u, nil
}

func (r *UserRepo) indexOf(id int) int {
	return slices.IndexFunc(r.users, func(u domain.User) bool { return u.ID == id })
}
