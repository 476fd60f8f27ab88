package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	minNameLength     = 2
	minPasswordLength = 6
)

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ValidationError — по одному сообщению на каждое невалидное поле формы
type ValidationError struct {
	Fields map[string]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// Validate возвращает nil, если форма валидна
func (r RegisterRequest) Validate() *ValidationError {
	fields := make(map[string]string)

	if utf8.RuneCountInString(strings.TrimSpace(r.Name)) < minNameLength {
		fields["name"] = fmt.Sprintf("name must be at least %d characters", minNameLength)
	}
	if !validEmail(r.Email) {
		fields["email"] = "invalid email"
	}
	if utf8.RuneCountInString(r.Password) < minPasswordLength {
		fields["password"] = fmt.Sprintf("password must be at least %d characters", minPasswordLength)
	}
	if r.Password != r.ConfirmPassword {
		fields["confirmPassword"] = "passwords do not match"
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// validEmail принимает только голый адрес, формат "Name <a@b>" отклоняем
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	_, domainPart, ok := strings.Cut(addr.Address, "@")
	return ok && domainPart != ""
}
