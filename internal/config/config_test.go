package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Server.Port != 4241 {
		t.Errorf("expected default port 4241, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("expected default host localhost, got %s", cfg.Server.Host)
	}
	if cfg.API.URL != "http://localhost:8000" {
		t.Errorf("expected default api url http://localhost:8000, got %s", cfg.API.URL)
	}
	if cfg.Storage.Badger.Path != "./data/investx" {
		t.Errorf("expected default badger path ./data/investx, got %s", cfg.Storage.Badger.Path)
	}
	if cfg.Display.Currency != "INR" {
		t.Errorf("expected default currency INR, got %s", cfg.Display.Currency)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
	if issues := cfg.Validate(); len(issues) != 0 {
		t.Errorf("default config should validate, got %v", issues)
	}
}

func TestLoadFromFiles_NoFiles(t *testing.T) {
	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles with no files should not error: %v", err)
	}
	if cfg.Server.Port != 4241 {
		t.Errorf("expected default port 4241, got %d", cfg.Server.Port)
	}
}

func TestLoadFromFiles_ValidTOML(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "test.toml")

	content := `
environment = "dev"

[server]
port = 9090
host = "0.0.0.0"

[api]
url = "https://api.investx.test"
timeout = "5s"

[auth]
session_ttl = "2h"

[cache]
ttl = "1m"
max_entries = 10

[storage.badger]
path = "/tmp/test-db"

[display]
grouping = "western"

[logging]
level = "debug"
outputs = ["console", "file"]
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.API.URL != "https://api.investx.test" {
		t.Errorf("expected api url override, got %s", cfg.API.URL)
	}
	if cfg.APITimeout() != 5*time.Second {
		t.Errorf("expected api timeout 5s, got %s", cfg.APITimeout())
	}
	if cfg.SessionTTL() != 2*time.Hour {
		t.Errorf("expected session ttl 2h, got %s", cfg.SessionTTL())
	}
	if cfg.CacheTTL() != time.Minute || cfg.Cache.MaxEntries != 10 {
		t.Errorf("expected cache 1m/10, got %s/%d", cfg.CacheTTL(), cfg.Cache.MaxEntries)
	}
	if cfg.Storage.Badger.Path != "/tmp/test-db" {
		t.Errorf("expected badger path /tmp/test-db, got %s", cfg.Storage.Badger.Path)
	}
	if cfg.Display.Grouping != "western" {
		t.Errorf("expected grouping western, got %s", cfg.Display.Grouping)
	}
	if cfg.Display.Currency != "INR" {
		t.Errorf("expected currency to keep default INR, got %s", cfg.Display.Currency)
	}
	if len(cfg.Logging.Outputs) != 2 {
		t.Errorf("expected 2 log outputs, got %v", cfg.Logging.Outputs)
	}
	if !cfg.IsDevMode() {
		t.Error("expected dev mode")
	}
}

func TestLoadFromFiles_LaterFileWins(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.toml")
	second := filepath.Join(dir, "b.toml")
	os.WriteFile(first, []byte("[server]\nport = 1111\nhost = \"first\"\n"), 0644)
	os.WriteFile(second, []byte("[server]\nport = 2222\n"), 0644)

	cfg, err := LoadFromFiles(first, second)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if cfg.Server.Port != 2222 {
		t.Errorf("expected port 2222, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "first" {
		t.Errorf("expected host from first file, got %s", cfg.Server.Host)
	}
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/investx.toml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromFiles_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	os.WriteFile(path, []byte("[server\nport = "), 0644)

	_, err := LoadFromFiles(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("INVESTX_SERVER_PORT", "7000")
	t.Setenv("INVESTX_API_URL", "http://api.internal:9000")
	t.Setenv("INVESTX_JWT_SECRET", "s3cret")
	t.Setenv("INVESTX_LOG_OUTPUTS", "console, file")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("expected port 7000, got %d", cfg.Server.Port)
	}
	if cfg.API.URL != "http://api.internal:9000" {
		t.Errorf("expected api url from env, got %s", cfg.API.URL)
	}
	if cfg.Auth.JWTSecret != "s3cret" {
		t.Errorf("expected jwt secret from env, got %s", cfg.Auth.JWTSecret)
	}
	if len(cfg.Logging.Outputs) != 2 || cfg.Logging.Outputs[1] != "file" {
		t.Errorf("expected outputs [console file], got %v", cfg.Logging.Outputs)
	}
}

func TestEnvOverrides_InvalidPortIgnored(t *testing.T) {
	t.Setenv("INVESTX_SERVER_PORT", "not-a-port")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if cfg.Server.Port != 4241 {
		t.Errorf("expected default port to survive invalid env, got %d", cfg.Server.Port)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	os.WriteFile(envPath, []byte("INVESTX_TEST_DOTENV=loaded\n"), 0644)
	t.Cleanup(func() { os.Unsetenv("INVESTX_TEST_DOTENV") })

	LoadDotEnv(envPath, filepath.Join(dir, "missing.env"))

	if got := os.Getenv("INVESTX_TEST_DOTENV"); got != "loaded" {
		t.Errorf("expected INVESTX_TEST_DOTENV=loaded, got %q", got)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()
	ApplyFlagOverrides(cfg, 8080, "0.0.0.0")
	if cfg.Server.Port != 8080 || cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected 0.0.0.0:8080, got %s:%d", cfg.Server.Host, cfg.Server.Port)
	}

	ApplyFlagOverrides(cfg, 0, "")
	if cfg.Server.Port != 8080 || cfg.Server.Host != "0.0.0.0" {
		t.Error("zero-value flags should not override config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing api url", func(c *Config) { c.API.URL = "" }, "api.url is required"},
		{"bad scheme", func(c *Config) { c.API.URL = "ftp://x" }, "api.url must start with"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"missing badger path", func(c *Config) { c.Storage.Badger.Path = " " }, "storage.badger.path"},
		{"bad duration", func(c *Config) { c.Cache.TTL = "soon" }, "cache.ttl is not a valid duration"},
		{"bad grouping", func(c *Config) { c.Display.Grouping = "roman" }, "display.grouping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			issues := cfg.Validate()
			if len(issues) != 1 {
				t.Fatalf("expected 1 issue, got %v", issues)
			}
			if !strings.Contains(issues[0], tt.want) {
				t.Errorf("expected issue containing %q, got %q", tt.want, issues[0])
			}
		})
	}
}

func TestDurationFallbacks(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.API.Timeout = ""
	cfg.Auth.SessionTTL = "-5m"
	cfg.Cache.TTL = "garbage"

	if cfg.APITimeout() != 10*time.Second {
		t.Errorf("expected 10s fallback, got %s", cfg.APITimeout())
	}
	if cfg.SessionTTL() != 24*time.Hour {
		t.Errorf("expected 24h fallback, got %s", cfg.SessionTTL())
	}
	if cfg.CacheTTL() != 30*time.Second {
		t.Errorf("expected 30s fallback, got %s", cfg.CacheTTL())
	}
}
