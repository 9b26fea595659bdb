package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"FITQUEST_PRIMARY.ENV":                         "local",
		"FITQUEST_SERVER.PORT":                         "8097",
		"FITQUEST_SERVER.READ_TIMEOUT":                 "30",
		"FITQUEST_SERVER.WRITE_TIMEOUT":                "30",
		"FITQUEST_SERVER.IDLE_TIMEOUT":                 "60",
		"FITQUEST_SERVER.CORS_ALLOWED_ORIGINS":         "http://localhost:5173,http://localhost:3000",
		"FITQUEST_DATABASE.HOST":                       "localhost",
		"FITQUEST_DATABASE.PORT":                       "5432",
		"FITQUEST_DATABASE.USER":                       "fitquest",
		"FITQUEST_DATABASE.PASSWORD":                   "p@ss:word",
		"FITQUEST_DATABASE.NAME":                       "fitquest",
		"FITQUEST_DATABASE.SSL_MODE":                   "disable",
		"FITQUEST_DATABASE.MAX_OPEN_CONNS":             "10",
		"FITQUEST_DATABASE.MAX_IDLE_CONNS":             "5",
		"FITQUEST_DATABASE.CONN_MAX_LIFETIME":          "300",
		"FITQUEST_DATABASE.CONN_MAX_IDLE_TIME":         "60",
		"FITQUEST_REDIS.ADDRESS":                       "localhost:6379",
		"FITQUEST_OBSERVABILITY.LOGGING.LEVEL":         "debug",
		"FITQUEST_OBSERVABILITY.LOGGING.FORMAT":        "console",
		"FITQUEST_OBSERVABILITY.HEALTH_CHECKS.TIMEOUT": "2s",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, "en", cfg.Primary.Locale)
	assert.Equal(t, "8097", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 30, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, 2*time.Second, cfg.Observability.HealthChecks.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Observability.HealthChecks.Interval)
	assert.Equal(t, 100*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FITQUEST_DATABASE.HOST", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigAuthRequiresSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FITQUEST_AUTH.ENABLED", "true")

	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("FITQUEST_AUTH.SECRET_KEY", "sk_test_123")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Auth.Enabled)
}

func TestLoadConfigRejectsUnknownLocale(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FITQUEST_PRIMARY.LOCALE", "fr")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestDatabaseDSNEscapesPassword(t *testing.T) {
	c := DatabaseConfig{
		Host:     "::1",
		Port:     5432,
		User:     "fitquest",
		Password: "p@ss:word",
		Name:     "fitquest",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://fitquest:p%40ss%3Aword@[::1]:5432/fitquest?sslmode=disable", c.DSN())
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestGetLogLevelDefaultsByEnvironment(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())
}

func TestHealthChecksHas(t *testing.T) {
	hc := DefaultObservabilityConfig().HealthChecks
	assert.True(t, hc.Has("database"))
	assert.False(t, hc.Has("kafka"))
}

func TestLoadConfigSplitsLists(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FITQUEST_SERVER.CORS_ALLOWED_ORIGINS", " https://app.fitquest.io , ,https://admin.fitquest.io")
	t.Setenv("FITQUEST_OBSERVABILITY.HEALTH_CHECKS.CHECKS", "redis, database")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://app.fitquest.io", "https://admin.fitquest.io"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, []string{"redis", "database"}, cfg.Observability.HealthChecks.Checks)
}

func TestLoadConfigRejectsBlankOrigins(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FITQUEST_SERVER.CORS_ALLOWED_ORIGINS", " , ")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestParseEnvKeepsScalarCommas(t *testing.T) {
	key, value := parseEnv("FITQUEST_DATABASE.PASSWORD", "a,b")
	assert.Equal(t, "database.password", key)
	assert.Equal(t, "a,b", value)
}
