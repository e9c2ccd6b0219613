package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	API         APIConfig     `toml:"api"`
	Auth        AuthConfig    `toml:"auth"`
	Cache       CacheConfig   `toml:"cache"`
	Storage     StorageConfig `toml:"storage"`
	Display     DisplayConfig `toml:"display"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// APIConfig points the portal at the InvestX API server.
type APIConfig struct {
	URL     string `toml:"url"`
	Timeout string `toml:"timeout"`
}

// AuthConfig contains session settings.
type AuthConfig struct {
	// JWTSecret verifies API tokens when set. Empty means tokens are
	// parsed for expiry only.
	JWTSecret    string `toml:"jwt_secret"`
	SessionTTL   string `toml:"session_ttl"`
	CookieSecure bool   `toml:"cookie_secure"`
}

// CacheConfig contains product listing cache settings.
type CacheConfig struct {
	TTL        string `toml:"ttl"`
	MaxEntries int    `toml:"max_entries"`
}

// StorageConfig contains storage layer settings.
type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig contains BadgerDB-specific settings.
type BadgerConfig struct {
	Path string `toml:"path"`
}

// DisplayConfig controls currency formatting.
type DisplayConfig struct {
	Currency string `toml:"currency"`
	Grouping string `toml:"grouping"` // "indian" or "western"
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given .env files (default ".env")
// into the process environment. Variables already set are not overwritten.
// Missing files are ignored.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		_ = godotenv.Load(p)
	}
}

// applyEnvOverrides applies INVESTX_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("INVESTX_ENV"); env != "" {
		config.Environment = env
	}
	if port := os.Getenv("INVESTX_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("INVESTX_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if apiURL := os.Getenv("INVESTX_API_URL"); apiURL != "" {
		config.API.URL = apiURL
	}
	if secret := os.Getenv("INVESTX_JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}
	if ttl := os.Getenv("INVESTX_SESSION_TTL"); ttl != "" {
		config.Auth.SessionTTL = ttl
	}
	if badgerPath := os.Getenv("INVESTX_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if level := os.Getenv("INVESTX_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if outputs := os.Getenv("INVESTX_LOG_OUTPUTS"); outputs != "" {
		config.Logging.Outputs = splitList(outputs)
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate returns a list of human-readable problems with mandatory settings.
func (c *Config) Validate() []string {
	var issues []string
	if strings.TrimSpace(c.API.URL) == "" {
		issues = append(issues, "api.url is required (INVESTX_API_URL)")
	} else if !strings.HasPrefix(c.API.URL, "http://") && !strings.HasPrefix(c.API.URL, "https://") {
		issues = append(issues, fmt.Sprintf("api.url must start with http:// or https:// (got %q)", c.API.URL))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}
	if strings.TrimSpace(c.Storage.Badger.Path) == "" {
		issues = append(issues, "storage.badger.path is required (INVESTX_BADGER_PATH)")
	}
	for _, field := range []struct{ name, value string }{
		{"api.timeout", c.API.Timeout},
		{"auth.session_ttl", c.Auth.SessionTTL},
		{"cache.ttl", c.Cache.TTL},
	} {
		if field.value == "" {
			continue
		}
		if _, err := time.ParseDuration(field.value); err != nil {
			issues = append(issues, fmt.Sprintf("%s is not a valid duration (got %q)", field.name, field.value))
		}
	}
	switch strings.ToLower(c.Display.Grouping) {
	case "", "indian", "western":
	default:
		issues = append(issues, fmt.Sprintf("display.grouping must be indian or western (got %q)", c.Display.Grouping))
	}
	return issues
}

// IsDevMode reports whether the portal runs with environment "dev".
func (c *Config) IsDevMode() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "dev")
}

// BaseURL returns the portal's own base URL.
func (c *Config) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.Server.Host, c.Server.Port)
}

// APITimeout returns the outbound request timeout.
func (c *Config) APITimeout() time.Duration {
	return parseDurationOr(c.API.Timeout, 10*time.Second)
}

// SessionTTL returns the fallback session lifetime for tokens without exp.
func (c *Config) SessionTTL() time.Duration {
	return parseDurationOr(c.Auth.SessionTTL, 24*time.Hour)
}

// CacheTTL returns the product listing cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	return parseDurationOr(c.Cache.TTL, 30*time.Second)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
