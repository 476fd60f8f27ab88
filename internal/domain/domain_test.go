package domain

import (
	"testing"
	"time"
)

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "secret", ConfirmPassword: "secret"}

	tests := []struct {
		name   string
		mutate func(r *RegisterRequest)
		fields []string
	}{
		{"valid", func(r *RegisterRequest) {}, nil},
		{"short name", func(r *RegisterRequest) { r.Name = "J" }, []string{"name"}},
		{"blank name", func(r *RegisterRequest) { r.Name = "   " }, []string{"name"}},
		{"two letter unicode name", func(r *RegisterRequest) { r.Name = "Ёж" }, nil},
		{"bad email", func(r *RegisterRequest) { r.Email = "jane" }, []string{"email"}},
		{"display name email", func(r *RegisterRequest) { r.Email = "Jane <jane@example.com>" }, []string{"email"}},
		{"short password", func(r *RegisterRequest) { r.Password, r.ConfirmPassword = "12345", "12345" }, []string{"password"}},
		{"mismatch", func(r *RegisterRequest) { r.ConfirmPassword = "secreT" }, []string{"confirmPassword"}},
		{"everything", func(r *RegisterRequest) { *r = RegisterRequest{} }, []string{"name", "email", "password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			verr := r.Validate()
			if len(tt.fields) == 0 {
				if verr != nil {
					t.Fatalf("unexpected errors: %v", verr.Fields)
				}
				return
			}
			if verr == nil {
				t.Fatal("expected validation error")
			}
			if len(verr.Fields) != len(tt.fields) {
				t.Fatalf("fields = %v, want %v", verr.Fields, tt.fields)
			}
			for _, f := range tt.fields {
				if verr.Fields[f] == "" {
					t.Errorf("missing message for %s", f)
				}
			}
		})
	}
}

func TestDatabaseConfigEntries(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5432, Database: "snort", Username: "u", Password: "p", SSL: true}
	e := cfg.Entries()
	if e[SettingDBPort] != "5432" || e[SettingDBSSL] != "true" || e[SettingDBName] != "snort" {
		t.Fatalf("entries = %v", e)
	}
	if got := DatabaseConfigFromEntries(e); got != cfg {
		t.Fatalf("round trip = %+v", got)
	}

	tests := []struct {
		name    string
		entries map[string]string
		port    int
		ssl     bool
	}{
		{"empty", map[string]string{}, DefaultDatabasePort, false},
		{"bad port", map[string]string{SettingDBPort: "abc"}, DefaultDatabasePort, false},
		{"zero port", map[string]string{SettingDBPort: "0"}, DefaultDatabasePort, false},
		{"ssl only for true", map[string]string{SettingDBSSL: "yes"}, DefaultDatabasePort, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DatabaseConfigFromEntries(tt.entries)
			if got.Port != tt.port || got.SSL != tt.ssl {
				t.Fatalf("got port=%d ssl=%v", got.Port, got.SSL)
			}
		})
	}
}

func TestDateRangeContains(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 4, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name string
		r    DateRange
		t    time.Time
		want bool
	}{
		{"open", DateRange{}, day(1), true},
		{"on start", DateRange{Start: day(2)}, day(2), true},
		{"before start", DateRange{Start: day(2)}, day(1), false},
		{"on end", DateRange{End: day(2)}, day(2), true},
		{"after end", DateRange{End: day(2)}, day(3), false},
		{"inside", DateRange{Start: day(1), End: day(3)}, day(2), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Contains(tt.t); got != tt.want {
				t.Fatalf("Contains = %v, want %v", got, tt.want)
			}
		})
	}
}
