package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Run from an empty dir so no stray .env is picked up.
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Addr != "127.0.0.1" || cfg.Port != 8080 {
		t.Errorf("listen = %s, want 127.0.0.1:8080", cfg.ListenAddr())
	}
	if cfg.Store != StoreSQLite {
		t.Errorf("store = %q, want sqlite", cfg.Store)
	}
	if cfg.HistoryKey != "splitbill_pro_history" {
		t.Errorf("history key = %q", cfg.HistoryKey)
	}
	if cfg.DefaultCurrency != "IDR" {
		t.Errorf("default currency = %q, want IDR", cfg.DefaultCurrency)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SPLITBILL_PORT", "9090")
	t.Setenv("SPLITBILL_STORE", "Memory")
	t.Setenv("SPLITBILL_DEFAULT_CURRENCY", "usd")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Port)
	}
	if cfg.Store != StoreMemory {
		t.Errorf("store = %q, want memory", cfg.Store)
	}
	if cfg.DefaultCurrency != "USD" {
		t.Errorf("currency = %q, want USD", cfg.DefaultCurrency)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("level = %v, want debug", cfg.Level())
	}
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("SPLITBILL_HISTORY_KEY=from_file\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	// godotenv does not override variables that are already set.
	t.Setenv("SPLITBILL_HISTORY_KEY", "")
	os.Unsetenv("SPLITBILL_HISTORY_KEY")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HistoryKey != "from_file" {
		t.Errorf("history key = %q, want from_file", cfg.HistoryKey)
	}
}

func TestLoad_MissingEnvFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("expected error for explicit missing env file")
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SPLITBILL_PORT", "not-a-number")

	if _, err := Load(); err == nil {
		t.Error("expected parse error for non-numeric port")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Addr:            "not an ip",
		Port:            70000,
		Store:           "postgres",
		HistoryKey:      "",
		DefaultCurrency: "RUPIAH",
		LogLevel:        "loud",
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"invalid port", "invalid address", "invalid store", "history key", "default currency", "log level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("validation error missing %q: %v", want, err)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}
