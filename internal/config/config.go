package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override, e.g. ETL_CONSOLE_SERVER__ADDR
	EnvPrefix = "ETL_CONSOLE_"
	// EnvAPIURL is the short alias for api.base_url
	EnvAPIURL = "ETL_API_URL"

	envDelimiter = "__"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	API     APIConfig     `koanf:"api"`
	Log     LogConfig     `koanf:"log"`
	Notices NoticesConfig `koanf:"notices"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Addr           string        `koanf:"addr"`
	ReadTimeout    time.Duration `koanf:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
	BasePath       string        `koanf:"base_path"` // Optional base path for reverse proxy (e.g., "/console")
	AllowedOrigins []string      `koanf:"allowed_origins"`
}

// APIConfig points at the ETL backend
type APIConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
	TLS     *TLSConfig    `koanf:"tls"`
}

// TLSConfig represents TLS configuration for https backends. All fields are optional.
type TLSConfig struct {
	CA   string `koanf:"ca"`
	Cert string `koanf:"cert"`
	Key  string `koanf:"key"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug | info | warn | error
	Format string `koanf:"format"` // json | text
}

// NoticesConfig controls how long action notices stay visible
type NoticesConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

// Default returns the configuration used when nothing overrides it
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			AllowedOrigins: []string{"*"},
		},
		API: APIConfig{
			BaseURL: "http://localhost:8000/api/v1",
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Notices: NoticesConfig{
			TTL: 10 * time.Second,
		},
	}
}

// Load loads configuration from the specified file and the environment.
// A missing file is not an error; an empty path skips the file entirely.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Load YAML config
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	// Environment overrides
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	if baseURL := os.Getenv(EnvAPIURL); baseURL != "" {
		if err := k.Set("api.base_url", baseURL); err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", EnvAPIURL, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// envKey maps ETL_CONSOLE_SERVER__READ_TIMEOUT to server.read_timeout
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, strings.ToLower(envDelimiter), ".")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		return fmt.Errorf("server.base_path must start with /")
	}

	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api.base_url scheme must be http or https")
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}

	if c.API.TLS != nil && (c.API.TLS.Cert == "") != (c.API.TLS.Key == "") {
		return fmt.Errorf("api.tls.cert and api.tls.key must be set together")
	}

	if c.Notices.TTL <= 0 {
		return fmt.Errorf("notices.ttl must be positive")
	}

	return nil
}
