package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "3000" {
		t.Errorf("port = %q, want 3000", cfg.Server.Port)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("session ttl = %v, want 24h", cfg.Session.TTL)
	}
	if cfg.IsProduction() {
		t.Error("default environment must not be production")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("SESSION_TTL", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("expected production environment")
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.RateLimit.Requests != 5 {
		t.Errorf("rate limit requests = %d, want 5", cfg.RateLimit.Requests)
	}
	if cfg.Session.TTL != time.Hour {
		t.Errorf("session ttl = %v, want 1h", cfg.Session.TTL)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
server:
  port: "4000"
database:
  url: ${TEST_DB_URL}
session:
  store: memory
  ttl: 2h
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("TEST_DB_URL", "postgres://file/db")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_STORE", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("REDIS_URL", "redis://env:6379/1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "4000" {
		t.Errorf("port = %q, want 4000 from file", cfg.Server.Port)
	}
	if cfg.Database.URL != "postgres://file/db" {
		t.Errorf("database url = %q, want expanded value", cfg.Database.URL)
	}
	if cfg.Session.Store != "memory" || cfg.Session.TTL != 2*time.Hour {
		t.Errorf("session = %+v", cfg.Session)
	}
	if cfg.Redis.URL != "redis://env:6379/1" {
		t.Errorf("redis url = %q, want env override", cfg.Redis.URL)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("CORS_ORIGINS", "https://sewa.example, ,http://localhost:5173")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"https://sewa.example", "http://localhost:5173"}
	if len(cfg.Server.CORSOrigins) != len(want) {
		t.Fatalf("origins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Server.CORSOrigins[i] != want[i] {
			t.Fatalf("origins = %v, want %v", cfg.Server.CORSOrigins, want)
		}
	}
}
