// Package config loads the application configuration from environment variables.
//
// Variables carry the FITQUEST_ prefix and use "." for nesting, so
// FITQUEST_SERVER.PORT lands in Config.Server.Port. A `.env` file in the
// working directory is loaded first when present.
//
// Responsibilities:
//   - Map env vars into structured Go types with koanf.
//   - Validate required values so the process fails fast on bad config.
//   - Fill defaults for optional blocks (observability, locale, rate limit).
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	// Loads `.env` into the process environment before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is stripped from every variable before mapping.
	EnvPrefix = "FITQUEST_"

	// ServiceName tags logs, traces and metrics.
	ServiceName = "fitquest"
)

// Config is the root configuration object.
//
// Observability is optional; defaults are injected when it is missing.
type Config struct {
	// Primary holds the environment name and response locale.
	Primary Primary `koanf:"primary" validate:"required"`

	// Server configures the HTTP listener, CORS and rate limiting.
	Server ServerConfig `koanf:"server" validate:"required"`

	// Database is the PostgreSQL connection used by the pool and migrations.
	Database DatabaseConfig `koanf:"database" validate:"required"`

	// Redis is required: asynq cannot start without it.
	Redis RedisConfig `koanf:"redis" validate:"required"`

	// Auth is off by default so the public API works without Clerk.
	Auth AuthConfig `koanf:"auth"`

	// Integration holds optional third-party credentials (Resend).
	Integration IntegrationConfig `koanf:"integration"`

	// Observability configures logging, New Relic and health checks.
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds runtime-wide settings.
//
// Locale selects the language of the generic 500 message sent to clients.
type Primary struct {
	Env    string `koanf:"env" validate:"required"`
	Locale string `koanf:"locale" validate:"omitempty,oneof=en ko"`
}

// ServerConfig groups HTTP server settings. Timeouts are in seconds.
type ServerConfig struct {
	// Port is the listen port, without a host.
	Port         string `koanf:"port" validate:"required"`
	ReadTimeout  int    `koanf:"read_timeout" validate:"required"`
	WriteTimeout int    `koanf:"write_timeout" validate:"required"`
	IdleTimeout  int    `koanf:"idle_timeout" validate:"required"`

	// ShutdownTimeout bounds graceful shutdown. Zero falls back to 30.
	ShutdownTimeout int `koanf:"shutdown_timeout"`

	// CORSAllowedOrigins is read from a comma separated env value.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`

	// RateLimit is the sustained requests per second allowed per client IP.
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"gte=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host     string `koanf:"host" validate:"required"`
	Port     int    `koanf:"port" validate:"required"`
	User     string `koanf:"user" validate:"required"`
	Password string `koanf:"password" validate:"required"`
	Name     string `koanf:"name" validate:"required"`

	// SSLMode is passed through as the sslmode query parameter.
	SSLMode string `koanf:"ssl_mode" validate:"required"`

	// Pool tuning. MaxOpenConns and MaxIdleConns map to the pgxpool max
	// and min connections; lifetimes are in seconds.
	MaxOpenConns    int `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig is the Redis address ("host:port") shared by the client and asynq.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig controls Clerk bearer authentication on article write routes.
type AuthConfig struct {
	Enabled   bool   `koanf:"enabled"`
	SecretKey string `koanf:"secret_key" validate:"required_if=Enabled true"`
}

// IntegrationConfig holds third-party credentials.
//
// When ResendAPIKey or NotifyEmail is empty, article notifications are
// not sent.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	NotifyEmail  string `koanf:"notify_email" validate:"omitempty,email"`
	FromEmail    string `koanf:"from_email" validate:"omitempty,email"`
}

// NotificationsEnabled reports whether article notification e-mails can be sent.
func (c IntegrationConfig) NotificationsEnabled() bool {
	return c.ResendAPIKey != "" && c.NotifyEmail != ""
}

// DSN builds a postgres:// URL from the database settings.
func (c DatabaseConfig) DSN() string {
	return buildDSN(c)
}

// LoadConfig reads FITQUEST_* variables, validates them and applies defaults.
//
// Behavior:
//   - Load env vars with the prefix stripped and keys lowercased
//   - Split list values (CORS origins, health checks) on commas
//   - Unmarshal into Config
//   - Fill defaults: locale "en", 30s shutdown, observability block
//   - Run struct validation, then the observability checks
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", parseEnv), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	mainConfig.applyDefaults()

	// Observability is a non-nil pointer by now, so the validator dives into it.
	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// listKeys are the config paths whose env value is a comma separated list.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":        true,
	"observability.health_checks.checks": true,
}

// parseEnv maps FITQUEST_SERVER.PORT to server.port. Values of list keys
// are split on commas, with blanks dropped.
func parseEnv(key, value string) (string, interface{}) {
	path := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if !listKeys[path] {
		return path, value
	}

	items := make([]string, 0, strings.Count(value, ",")+1)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return path, items
}

func (c *Config) applyDefaults() {
	if c.Primary.Locale == "" {
		c.Primary.Locale = "en"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30
	}
	if c.Integration.FromEmail == "" {
		c.Integration.FromEmail = "onboarding@resend.dev"
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	} else {
		c.Observability.fillZeroValues()
	}

	// Service name and environment always follow the primary config.
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env
}

// buildDSN joins host and port (IPv6-safe) and escapes the password so
// characters like '@' or ':' cannot break the URL.
func buildDSN(c DatabaseConfig) string {
	hostPort := net.JoinHostPort(c.Host, strconv.Itoa(c.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		c.User,
		url.QueryEscape(c.Password),
		hostPort,
		c.Name,
		c.SSLMode,
	)
}
