package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/xela07ax/snortview/internal/connectors"
	"github.com/xela07ax/snortview/internal/domain"
)

// ConnectionTester — живая проверка настроек: открыть соединение и выполнить Ping
type ConnectionTester struct{}

func NewConnectionTester() *ConnectionTester {
	return &ConnectionTester{}
}

func (t *ConnectionTester) Test(ctx context.Context, cfg domain.DatabaseConfig) error {
	if cfg.MissingRequired() {
		return connectors.ErrIncompleteConfig
	}

	connCfg, err := pgx.ParseConfig(DSN(cfg))
	if err != nil {
		return fmt.Errorf("postgres: invalid connection settings: %w", err)
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		return &connectors.ConnectError{Addr: addr, Cause: err}
	}
	defer conn.Close(context.Background())

	if err := conn.Ping(ctx); err != nil {
		return &connectors.ConnectError{Addr: addr, Cause: err}
	}
	return nil
}

// DSN собирает postgres:// URL; ssl=false — sslmode=disable, иначе require
func DSN(cfg domain.DatabaseConfig) string {
	port := cfg.Port
	if port == 0 {
		port = domain.DefaultDatabasePort
	}

	sslmode := "disable"
	if cfg.SSL {
		sslmode = "require"
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		Path:     "/" + cfg.Database,
		RawQuery: url.Values{"sslmode": {sslmode}}.Encode(),
	}
	if cfg.Password != "" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	} else {
		u.User = url.User(cfg.Username)
	}
	return u.String()
}
