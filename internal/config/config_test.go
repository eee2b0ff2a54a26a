package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/skillsenselab/quizapi/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromYAML(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  port: 9090
  read_timeout: 30s
jwt:
  secret: "`+testSecret+`"
  ttl: 2h
rate_limit:
  requests_per_minute: 50
  auth_requests_per_minute: 5
database:
  dsn: test.db
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Environment != "production" {
		t.Errorf("environment = %q", cfg.Environment)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("read_timeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.JWT.TTL != 2*time.Hour {
		t.Errorf("jwt ttl = %v", cfg.JWT.TTL)
	}
	if cfg.RateLimit.RequestsPerMinute != 50 || cfg.RateLimit.AuthRequestsPerMinute != 5 {
		t.Errorf("rate limit = %+v", cfg.RateLimit)
	}
	if cfg.Database.DSN != "test.db" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}

	// Untouched sections pick up defaults.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host default = %q", cfg.Server.Host)
	}
	if cfg.Logging.Level == "" {
		t.Error("logging level default missing")
	}
	if cfg.RateLimit.CleanupInterval != 5*time.Minute {
		t.Errorf("cleanup interval default = %v", cfg.RateLimit.CleanupInterval)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
jwt:
  secret: "`+testSecret+`"
`)
	t.Setenv("QUIZAPI_SERVER_PORT", "9999")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, want env override 9999", cfg.Server.Port)
	}
}

func TestSecretFromEnvOnly(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
`)
	t.Setenv("QUIZAPI_JWT_SECRET", testSecret)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JWT.Secret != testSecret {
		t.Errorf("secret not read from environment")
	}
}

func TestRejectsShortSecret(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: "too-short"
`)
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for short jwt secret")
	}
}

func TestRejectsMissingFile(t *testing.T) {
	if _, err := config.Load("/nonexistent/config.yml"); err == nil {
		t.Fatal("expected error for explicit missing config file")
	}
}
