package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xela07ax/snortview/internal/audit"
	"github.com/xela07ax/snortview/internal/connectors"
	"github.com/xela07ax/snortview/internal/domain"
	"github.com/xela07ax/snortview/internal/infra"
	"go.uber.org/zap"
)

// SettingsStore — строковые записи настроек (db_host, db_port, ...)
type SettingsStore interface {
	LoadEntries(ctx context.Context) (map[string]string, error)
	SaveEntries(ctx context.Context, entries map[string]string) error
}

const (
	msgConnectionOK      = "Database connection established successfully."
	msgIncompleteConfig  = "Fill in all required fields (host, database and username)."
	msgConnectionTimeout = "Connection test timed out."
)

type DBConfigService struct {
	store     SettingsStore
	tester    connectors.ConnectionTester
	testDelay time.Duration
	auditor   audit.Auditor
	logger    *zap.Logger
}

func NewDBConfigService(store SettingsStore, tester connectors.ConnectionTester, testDelay time.Duration, auditor audit.Auditor, logger *zap.Logger) *DBConfigService {
	return &DBConfigService{
		store:     store,
		tester:    tester,
		testDelay: testDelay,
		auditor:   auditor,
		logger:    logger.Named("dbconfig-service"),
	}
}

// Load собирает конфиг из записей; отсутствующие записи дают пустые поля и порт 3306
func (s *DBConfigService) Load(ctx context.Context) (domain.DatabaseConfig, error) {
	entries, err := s.store.LoadEntries(ctx)
	if err != nil {
		return domain.DatabaseConfig{}, fmt.Errorf("load database settings: %w", err)
	}
	return domain.DatabaseConfigFromEntries(entries), nil
}

func (s *DBConfigService) Save(ctx context.Context, cfg domain.DatabaseConfig) (domain.DatabaseConfig, error) {
	err := s.store.SaveEntries(ctx, cfg.Entries())
	record(ctx, s.auditor, audit.Event{Action: audit.ActionDBConfigSave, Target: cfg.Host, Outcome: outcome(err)})
	if err != nil {
		return domain.DatabaseConfig{}, fmt.Errorf("save database settings: %w", err)
	}

	s.logger.Info("database settings saved", zap.String("host", cfg.Host), zap.String("database", cfg.Database))
	return s.Load(ctx)
}

// TestConnection никогда не возвращает ошибку проверки: отказ — это success=false с сообщением.
// Ошибка возвращается только при отмене запроса клиентом.
func (s *DBConfigService) TestConnection(ctx context.Context, cfg domain.DatabaseConfig) (domain.ConnectionResult, error) {
	if err := infra.SimulateLatency(ctx, s.testDelay); err != nil {
		return domain.ConnectionResult{}, err
	}

	err := s.tester.Test(ctx, cfg)
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return domain.ConnectionResult{}, ctx.Err()
	}

	result := connectionResult(err)
	record(ctx, s.auditor, audit.Event{
		Action:  audit.ActionDBConfigTest,
		Target:  cfg.Host,
		Outcome: outcome(err),
		Detail:  result.Message,
	})
	if err != nil {
		s.logger.Warn("database connection test failed", zap.String("host", cfg.Host), zap.Error(err))
	}
	return result, nil
}

func connectionResult(err error) domain.ConnectionResult {
	switch {
	case err == nil:
		return domain.ConnectionResult{Success: true, Message: msgConnectionOK}
	case errors.Is(err, connectors.ErrIncompleteConfig):
		return domain.ConnectionResult{Success: false, Message: msgIncompleteConfig}
	case errors.Is(err, context.DeadlineExceeded):
		return domain.ConnectionResult{Success: false, Message: msgConnectionTimeout}
	default:
		return domain.ConnectionResult{Success: false, Message: err.Error()}
	}
}
