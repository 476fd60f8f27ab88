package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/xela07ax/snortview/internal/connectors"
	"github.com/xela07ax/snortview/internal/domain"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.DatabaseConfig
		want string
	}{
		{
			name: "plain",
			cfg:  domain.DatabaseConfig{Host: "db.local", Port: 5432, Database: "snort", Username: "snort", Password: "pw"},
			want: "postgres://snort:pw@db.local:5432/snort?sslmode=disable",
		},
		{
			name: "ssl and default port",
			cfg:  domain.DatabaseConfig{Host: "db.local", Database: "snort", Username: "snort", SSL: true},
			want: "postgres://snort@db.local:3306/snort?sslmode=require",
		},
		{
			name: "escaped password",
			cfg:  domain.DatabaseConfig{Host: "db", Port: 1, Database: "d", Username: "u", Password: "p@ss/word"},
			want: "postgres://u:p%40ss%2Fword@db:1/d?sslmode=disable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DSN(tt.cfg); got != tt.want {
				t.Fatalf("DSN = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDSNParsesBack(t *testing.T) {
	cfg := domain.DatabaseConfig{Host: "db.local", Port: 5433, Database: "snort", Username: "u", Password: "p@ss"}
	parsed, err := pgx.ParseConfig(DSN(cfg))
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Host != "db.local" || parsed.Port != 5433 || parsed.Database != "snort" || parsed.User != "u" || parsed.Password != "p@ss" {
		t.Fatalf("parsed = %s:%d/%s user=%s", parsed.Host, parsed.Port, parsed.Database, parsed.User)
	}
}

func TestConnectionTesterIncomplete(t *testing.T) {
	err := NewConnectionTester().Test(context.Background(), domain.DatabaseConfig{Host: "db"})
	if !errors.Is(err, connectors.ErrIncompleteConfig) {
		t.Fatalf("got %v, want ErrIncompleteConfig", err)
	}
}

func TestConnectionTesterUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// порт 1 на loopback закрыт
	err := NewConnectionTester().Test(ctx, domain.DatabaseConfig{Host: "127.0.0.1", Port: 1, Database: "d", Username: "u"})
	var connErr *connectors.ConnectError
	if !errors.As(err, &connErr) {
		t.Fatalf("got %v, want ConnectError", err)
	}
	if connErr.Addr != "127.0.0.1:1" {
		t.Fatalf("addr = %q", connErr.Addr)
	}
}
