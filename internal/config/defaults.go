package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "prod",
		Server: ServerConfig{
			Port: 4241,
			Host: "localhost",
		},
		API: APIConfig{
			URL:     "http://localhost:8000",
			Timeout: "10s",
		},
		Auth: AuthConfig{
			SessionTTL: "24h",
		},
		Cache: CacheConfig{
			TTL:        "30s",
			MaxEntries: 256,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/investx",
			},
		},
		Display: DisplayConfig{
			Currency: "INR",
			Grouping: "indian",
		},
		Logging: LoggingConfig{
			Level:   "info",
			Outputs: []string{"console"},
		},
	}
}
