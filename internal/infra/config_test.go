package infra

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "{}\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Driver != StorageMemory {
		t.Errorf("storage.driver = %q, want %q", cfg.Storage.Driver, StorageMemory)
	}
	if cfg.Alerts.Count != 1000 {
		t.Errorf("alerts.count = %d, want 1000", cfg.Alerts.Count)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("auth.token_ttl = %v, want 24h", cfg.Auth.TokenTTL)
	}
	if cfg.Simulation.AlertsDelay != 0 {
		t.Errorf("simulation.alerts_delay = %v, want 0", cfg.Simulation.AlertsDelay)
	}
	if cfg.Database.LiveTest {
		t.Error("database.live_test should default to false")
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
storage:
  driver: redis
simulation:
  alerts_delay: 300ms
  stats_delay: 500ms
auth:
  credentials:
    - id: 7
      username: soc
      password: s3cret
      role: admin
`)
	t.Setenv("SNORTVIEW_ALERTS_COUNT", "50")
	t.Setenv("SNORTVIEW_LOGGER_LEVEL", "debug")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Storage.Driver != StorageRedis {
		t.Errorf("storage.driver = %q", cfg.Storage.Driver)
	}
	if cfg.Simulation.AlertsDelay != 300*time.Millisecond || cfg.Simulation.StatsDelay != 500*time.Millisecond {
		t.Errorf("simulation delays = %v, %v", cfg.Simulation.AlertsDelay, cfg.Simulation.StatsDelay)
	}
	if cfg.Alerts.Count != 50 {
		t.Errorf("alerts.count = %d, want 50 from env", cfg.Alerts.Count)
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("logger.level = %q, want debug from env", cfg.Logger.Level)
	}
	if len(cfg.Auth.Credentials) != 1 || cfg.Auth.Credentials[0].Username != "soc" || cfg.Auth.Credentials[0].ID != 7 {
		t.Errorf("auth.credentials = %+v", cfg.Auth.Credentials)
	}
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown driver", "storage:\n  driver: etcd\n"},
		{"credential without password", "auth:\n  credentials:\n    - username: soc\n"},
		{"negative alert count", "alerts:\n  count: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadConfigKeyFromEnv(t *testing.T) {
	t.Setenv("SNORTVIEW_AUTH_PRIVATE_KEY_DATA", "PEM")
	cfg, err := LoadConfig(writeConfig(t, "{}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if string(cfg.Auth.PrivateKey) != "PEM" {
		t.Errorf("private key = %q, want PEM", cfg.Auth.PrivateKey)
	}
}

func TestStatsKey(t *testing.T) {
	tests := []struct {
		dataset, start, end, want string
	}{
		{"a1", "", "", "snortview:stats:a1:*:*"},
		{"a1", "2025-04-01", "", "snortview:stats:a1:2025-04-01:*"},
		{"a1", "2025-04-01", "2025-04-02", "snortview:stats:a1:2025-04-01:2025-04-02"},
		{"b2", "", "", "snortview:stats:b2:*:*"},
	}
	for _, tt := range tests {
		if got := StatsKey(tt.dataset, tt.start, tt.end); got != tt.want {
			t.Errorf("StatsKey(%q, %q, %q) = %q, want %q", tt.dataset, tt.start, tt.end, got, tt.want)
		}
	}
}
