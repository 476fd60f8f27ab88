package connectors

import (
	"context"

	"github.com/xela07ax/snortview/internal/domain"
)

// ConnectionTester проверяет, что к БД из настроек можно подключиться. nil — успех.
type ConnectionTester interface {
	Test(ctx context.Context, cfg domain.DatabaseConfig) error
}

// StubTester имитирует проверку: успех, если заполнены обязательные поля
type StubTester struct{}

func (StubTester) Test(ctx context.Context, cfg domain.DatabaseConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cfg.MissingRequired() {
		return ErrIncompleteConfig
	}
	return nil
}
