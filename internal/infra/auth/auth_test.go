package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/xela07ax/snortview/internal/domain"
	"go.uber.org/zap"
)

func sign(t *testing.T, key *rsa.PrivateKey, claims *domain.CustomClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func claimsFor(issuer, jti string, ttl time.Duration) *domain.CustomClaims {
	return &domain.CustomClaims{
		UserID:   1,
		Username: "admin",
		Role:     domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestVerifyToken(t *testing.T) {
	key, _, err := LoadKeyPair(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	v := NewBaseValidator(&key.PublicKey, "snortview")

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid with bearer prefix", "Bearer " + sign(t, key, claimsFor("snortview", "j1", time.Hour)), false},
		{"valid bare", sign(t, key, claimsFor("snortview", "j1", time.Hour)), false},
		{"empty", "Bearer ", true},
		{"expired", sign(t, key, claimsFor("snortview", "j1", -time.Hour)), true},
		{"wrong issuer", sign(t, key, claimsFor("other", "j1", time.Hour)), true},
		{"foreign key", sign(t, other, claimsFor("snortview", "j1", time.Hour)), true},
		{"missing jti", sign(t, key, claimsFor("snortview", "", time.Hour)), true},
		{"garbage", "not-a-jwt", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := v.VerifyToken(tt.token)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if claims.Username != "admin" || claims.Role != domain.RoleAdmin || claims.ID != "j1" {
				t.Fatalf("unexpected claims: %+v", claims)
			}
		})
	}
}

func TestVerifyTokenRejectsHMAC(t *testing.T) {
	key, _, err := LoadKeyPair(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	v := NewBaseValidator(&key.PublicKey, "")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claimsFor("", "j1", time.Hour)).SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := v.VerifyToken(token); err == nil {
		t.Fatal("HS256 token accepted")
	}
}

type stubValidator struct {
	claims *domain.CustomClaims
	err    error
}

func (s stubValidator) Authenticate(context.Context, string) (*domain.CustomClaims, error) {
	return s.claims, s.err
}

func TestMiddlewareAndRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ClaimsFromContext(r.Context()) == nil {
			t.Error("claims missing in context")
		}
		w.WriteHeader(http.StatusNoContent)
	})

	admin := &domain.CustomClaims{Username: "admin", Role: domain.RoleAdmin}
	user := &domain.CustomClaims{Username: "user", Role: domain.RoleUser}

	tests := []struct {
		name   string
		header string
		v      stubValidator
		want   int
	}{
		{"no header", "", stubValidator{claims: admin}, http.StatusUnauthorized},
		{"rejected token", "Bearer x", stubValidator{err: errors.New("session not found")}, http.StatusUnauthorized},
		{"admin", "Bearer x", stubValidator{claims: admin}, http.StatusNoContent},
		{"user on admin route", "Bearer x", stubValidator{claims: user}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewMiddleware(tt.v, zap.NewNop())(RequireRole(domain.RoleAdmin)(ok))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRequireRoleWithoutClaims(t *testing.T) {
	h := RequireRole(domain.RoleAdmin)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler reached without claims")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
