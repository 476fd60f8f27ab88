package service

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/xela07ax/snortview/internal/audit"
	"github.com/xela07ax/snortview/internal/domain"
	"github.com/xela07ax/snortview/internal/infra"
	"github.com/xela07ax/snortview/internal/infra/auth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

// AuthProvider — источник учетных записей для логина
type AuthProvider interface {
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
}

// SessionStore — живые сессии по jti. Удаленная сессия делает токен недействительным.
type SessionStore interface {
	Create(ctx context.Context, jti string, user domain.User, ttl time.Duration) error
	Get(ctx context.Context, jti string) (domain.User, error)
	Delete(ctx context.Context, jti string) error
}

type AuthOptions struct {
	Issuer     string
	TokenTTL   time.Duration
	LoginRate  float64 // <= 0 — без ограничения
	LoginBurst int
}

type AuthService struct {
	*auth.BaseValidator
	repo       AuthProvider
	sessions   SessionStore
	privateKey *rsa.PrivateKey
	opts       AuthOptions
	limiter    *rate.Limiter
	auditor    audit.Auditor
	metrics    *infra.Metrics
	logger     *zap.Logger
}

func NewAuthService(
	repo AuthProvider,
	sessions SessionStore,
	privateKey *rsa.PrivateKey,
	opts AuthOptions,
	auditor audit.Auditor,
	metrics *infra.Metrics,
	logger *zap.Logger,
) *AuthService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	limit := rate.Inf
	if opts.LoginRate > 0 {
		limit = rate.Limit(opts.LoginRate)
	}
	burst := max(opts.LoginBurst, 1)

	return &AuthService{
		BaseValidator: auth.NewBaseValidator(&privateKey.PublicKey, opts.Issuer),
		repo:          repo,
		sessions:      sessions,
		privateKey:    privateKey,
		opts:          opts,
		limiter:       rate.NewLimiter(limit, burst),
		auditor:       auditor,
		metrics:       metrics,
		logger:        logger.Named("auth-service"),
	}
}

// GenerateToken проверяет пару логин/пароль, открывает сессию и подписывает токен.
// Неудачный вход не меняет никакого состояния, кроме счетчиков и журнала.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (*domain.TokenResponse, error) {
	if !s.limiter.Allow() {
		s.metrics.LoginAttempts.WithLabelValues("throttled").Inc()
		s.logger.Warn("login throttled", zap.String("username", username))
		return nil, domain.ErrTooManyAttempts
	}

	account, err := s.verify(ctx, username, password)
	if err != nil {
		s.metrics.LoginAttempts.WithLabelValues("failed").Inc()
		if errors.Is(err, domain.ErrInvalidCredentials) {
			record(ctx, s.auditor, audit.Event{Actor: username, Action: audit.ActionLoginFailed, Outcome: audit.OutcomeFailed})
		}
		return nil, err
	}

	now := time.Now()
	expiresAt := now.Add(s.opts.TokenTTL)
	jti := uuid.New().String()

	claims := &domain.CustomClaims{
		UserID:   account.ID,
		Username: account.Username,
		Role:     account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    s.opts.Issuer,
			Subject:   strconv.Itoa(account.ID),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	// Подпись ЗАКРЫТЫМ КЛЮЧОМ (RS256)
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signedToken, err := token.SignedString(s.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.sessions.Create(ctx, jti, account.User, s.opts.TokenTTL); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	s.metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.metrics.Sessions.WithLabelValues("opened").Inc()
	record(ctx, s.auditor, audit.Event{Actor: account.Username, Action: audit.ActionLogin, Outcome: audit.OutcomeSuccess})
	s.logger.Info("user logged in", zap.String("username", account.Username), zap.String("role", string(account.Role)))

	return &domain.TokenResponse{
		AccessToken: signedToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.opts.TokenTTL.Seconds()),
		User:        account.User,
	}, nil
}

// verify не уточняет, что именно неверно (логин или пароль)
func (s *AuthService) verify(ctx context.Context, username, password string) (*domain.Account, error) {
	account, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("account lookup: %w", err)
	}
	if account == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return account, nil
}

// Authenticate реализует auth.TokenValidator: подпись, срок и живая сессия
func (s *AuthService) Authenticate(ctx context.Context, authHeader string) (*domain.CustomClaims, error) {
	claims, err := s.VerifyToken(authHeader)
	if err != nil {
		return nil, err
	}
	if _, err := s.sessions.Get(ctx, claims.ID); err != nil {
		return nil, err
	}
	return claims, nil
}

// Logout закрывает сессию: токен перестает работать сразу, не дожидаясь exp
func (s *AuthService) Logout(ctx context.Context, claims *domain.CustomClaims) error {
	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	s.metrics.Sessions.WithLabelValues("closed").Inc()
	record(ctx, s.auditor, audit.Event{Actor: claims.Username, Action: audit.ActionLogout, Outcome: audit.OutcomeSuccess})
	return nil
}

// CurrentUser — пользователь, сохраненный в сессии при логине
func (s *AuthService) CurrentUser(ctx context.Context, claims *domain.CustomClaims) (domain.User, error) {
	return s.sessions.Get(ctx, claims.ID)
}
