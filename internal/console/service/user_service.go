package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xela07ax/snortview/internal/audit"
	"github.com/xela07ax/snortview/internal/domain"
	"github.com/xela07ax/snortview/internal/infra"
	"go.uber.org/zap"
)

// UserRepository — список управляемых пользователей
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	SetActive(ctx context.Context, id int, active bool) (domain.User, error)
	Delete(ctx context.Context, id int) error
	Create(ctx context.Context, u domain.User) (domain.User, error)
}

type UserDelays struct {
	List     time.Duration
	Mutation time.Duration
	Register time.Duration
}

type UserService struct {
	repo    UserRepository
	auditor audit.Auditor
	delays  UserDelays
	logger  *zap.Logger
}

func NewUserService(repo UserRepository, auditor audit.Auditor, delays UserDelays, logger *zap.Logger) *UserService {
	return &UserService{
		repo:    repo,
		auditor: auditor,
		delays:  delays,
		logger:  logger.Named("user-service"),
	}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	if err := infra.SimulateLatency(ctx, s.delays.List); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// UpdateStatus меняет isActive. Неизвестный id — domain.ErrUserNotFound, список не меняется.
func (s *UserService) UpdateStatus(ctx context.Context, id int, active bool) (domain.User, error) {
	if err := infra.SimulateLatency(ctx, s.delays.Mutation); err != nil {
		return domain.User{}, err
	}

	user, err := s.repo.SetActive(ctx, id, active)
	record(ctx, s.auditor, audit.Event{
		Action:  audit.ActionUserStatus,
		Target:  strconv.Itoa(id),
		Outcome: outcome(err),
		Detail:  "isActive=" + strconv.FormatBool(active),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("update status of user %d: %w", id, err)
	}

	s.logger.Info("user status updated", zap.Int("user_id", id), zap.Bool("is_active", active))
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := infra.SimulateLatency(ctx, s.delays.Mutation); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, id)
	record(ctx, s.auditor, audit.Event{Action: audit.ActionUserDelete, Target: strconv.Itoa(id), Outcome: outcome(err)})
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	s.logger.Info("user deleted", zap.Int("user_id", id))
	return nil
}

// Register валидирует форму и добавляет активного пользователя с ролью user.
// В таблицу учетных записей он не попадает: войти под ним нельзя.
func (s *UserService) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	if verr := req.Validate(); verr != nil {
		return domain.User{}, verr
	}
	if err := infra.SimulateLatency(ctx, s.delays.Register); err != nil {
		return domain.User{}, err
	}

	user, err := s.repo.Create(ctx, domain.User{
		Username: strings.TrimSpace(req.Name),
		Email:    req.Email,
		IsActive: true,
		Role:     domain.RoleUser,
	})
	record(ctx, s.auditor, audit.Event{Action: audit.ActionRegister, Target: req.Email, Outcome: outcome(err)})
	if err != nil {
		return domain.User{}, fmt.Errorf("register user: %w", err)
	}

	s.logger.Info("user registered", zap.Int("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}
