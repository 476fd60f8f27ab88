package memory

import (
	"context"
	"fmt"

	"github.com/xela07ax/snortview/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Credential — учетная запись в открытом виде, как она задается в конфиге
type Credential struct {
	ID       int
	Username string
	Password string
	Role     domain.Role
}

// DefaultCredentials — фиксированная таблица входа: admin/admin123 и user/password
func DefaultCredentials() []Credential {
	return []Credential{
		{ID: 1, Username: "admin", Password: "admin123", Role: domain.RoleAdmin},
		{ID: 2, Username: "user", Password: "password", Role: domain.RoleUser},
	}
}

// AccountRepo — неизменяемая таблица учетных записей с bcrypt-хэшами
type AccountRepo struct {
	byUsername map[string]domain.Account
}

func NewAccountRepo(creds []Credential, cost int) (*AccountRepo, error) {
	repo := &AccountRepo{byUsername: make(map[string]domain.Account, len(creds))}
	for _, c := range creds {
		if _, dup := repo.byUsername[c.Username]; dup {
			return nil, fmt.Errorf("duplicate credential for %q", c.Username)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %q: %w", c.Username, err)
		}
		repo.byUsername[c.Username] = domain.Account{
			User: domain.User{
				ID:       c.ID,
				Username: c.Username,
				Email:    c.Username + "@example.com",
				IsActive: true,
				Role:     c.Role,
			},
			PasswordHash: string(hash),
		}
	}
	return repo, nil
}

// GetByUsername возвращает nil, nil для неизвестного логина
func (r *AccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	acc, ok := r.byUsername[username]
	if !ok {
		return nil, nil
	}
	return &acc, nil
}
