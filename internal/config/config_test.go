package config

import (
	"flag"
	"os"
	"strings"
	"testing"
)

// resetFlagSet создаёт новый FlagSet перед каждым вызовом NewConfig,
// чтобы избежать повторной регистрации одних и тех же флагов между тестами.
func resetFlagSet(t *testing.T) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	// подавляем вывод парсера флагов в тестах
	flag.CommandLine.SetOutput(os.Stderr)
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	for _, k := range []string{
		"DATABASE_URI", "AUTH_SECRET", "BASE_URL", "ENABLE_HTTPS",
		"ADMIN_EMAIL", "ADMIN_PASSWORD", "ADMIN_NAME", "SEED_SAMPLES", "TOKEN_FILE",
	} {
		t.Setenv(k, "")
	}

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.AuthSecret != "dev-secret-key" {
		t.Fatalf("AuthSecret default expected 'dev-secret-key', got %q", cfg.AuthSecret)
	}
	if cfg.DatabaseDSN != "arsenal.db" {
		t.Fatalf("DatabaseDSN default expected 'arsenal.db', got %q", cfg.DatabaseDSN)
	}
	if cfg.AdminEmail != "admin@arsenal.dev" || cfg.AdminPassword != "Arsenal@2024" || cfg.AdminName != "Administrador" {
		t.Fatalf("unexpected admin defaults: %q %q %q", cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName)
	}
	if cfg.SeedSamples {
		t.Fatalf("SeedSamples must be off by default")
	}
	if cfg.BaseURL != "localhost:8081" {
		t.Fatalf("BaseURL default expected 'localhost:8081', got %q", cfg.BaseURL)
	}
	if cfg.ServerURL != "http://localhost:8081" {
		t.Fatalf("ServerURL default expected 'http://localhost:8081', got %q", cfg.ServerURL)
	}
	if cfg.TokenFile == "" {
		t.Fatalf("client defaults must be non-empty: TokenFile=%q", cfg.TokenFile)
	}
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("BASE_URL", "example.com:443")
	t.Setenv("ENABLE_HTTPS", "true")
	t.Setenv("AUTH_SECRET", "top")
	t.Setenv("DATABASE_URI", "postgres://arsenal@db/arsenal")
	t.Setenv("ADMIN_EMAIL", "me@example.com")
	t.Setenv("SEED_SAMPLES", "true")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "example.com:443" {
		t.Fatalf("BaseURL expected 'example.com:443', got %q", cfg.BaseURL)
	}
	if cfg.ServerURL != "https://example.com:443" {
		t.Fatalf("ServerURL expected 'https://example.com:443', got %q", cfg.ServerURL)
	}
	if cfg.AuthSecret != "top" {
		t.Fatalf("AuthSecret expected from env 'top', got %q", cfg.AuthSecret)
	}
	if cfg.DatabaseDSN != "postgres://arsenal@db/arsenal" {
		t.Fatalf("DatabaseDSN expected from env, got %q", cfg.DatabaseDSN)
	}
	if cfg.AdminEmail != "me@example.com" || !cfg.SeedSamples {
		t.Fatalf("seed settings not taken from env: %q %v", cfg.AdminEmail, cfg.SeedSamples)
	}
}

func TestNewConfig_ListenOnAllInterfaces(t *testing.T) {
	t.Setenv("BASE_URL", ":8080")
	t.Setenv("ENABLE_HTTPS", "false")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != ":8080" {
		t.Fatalf("BaseURL expected ':8080', got %q", cfg.BaseURL)
	}
}

func TestNewConfig_InvalidBaseURLFallback(t *testing.T) {
	// Невалидный BASE_URL (со схемой) должен откатиться на localhost:8081
	t.Setenv("BASE_URL", "http://bad:8080")
	t.Setenv("ENABLE_HTTPS", "false")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "localhost:8081" {
		t.Fatalf("invalid BASE_URL must fallback to 'localhost:8081', got %q", cfg.BaseURL)
	}
	if !strings.HasPrefix(cfg.ServerURL, "http://localhost:8081") {
		t.Fatalf("ServerURL must reflect fallback base, got %q", cfg.ServerURL)
	}
}
