package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigContent = `
[development]
host = "localhost"
port = 8080
environment = "development"
log_level = "trace"
log_to_stdout = true
redis_host = "localhost"
redis_port = "6379"
prometheus_metrics_host = "localhost"
prometheus_metrics_port = "2112"
api_rate_limit_allowed_per_min = 120
portfolio_file_path = "./portfolio.json"

[production]
host = "localhost"
port = 9000
environment = "production"
log_level = "debug"
logs_path = "/var/log/lifemaxx/service.log"
sentry_enabled = true
redis_host = "localhost"
redis_port = "6379"
prometheus_metrics_host = "localhost"
prometheus_metrics_port = "2112"
api_rate_limit_allowed_per_min = 60
portfolio_file_path = "/data/lifemaxx/portfolio.json"
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigContent), 0o600))
	return path
}

func TestLoad_development(t *testing.T) {
	cfg, err := Load("development", writeTestConfig(t))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.True(t, cfg.LogToStdout)
	assert.False(t, cfg.SentryEnabled)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.Equal(t, 120, cfg.APIRateLimitAllowedPerMin)
	assert.Equal(t, "./portfolio.json", cfg.PortfolioFilePath)
}

func TestLoad_production(t *testing.T) {
	cfg, err := Load("prod", writeTestConfig(t))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9000, cfg.Port)
	assert.True(t, cfg.SentryEnabled)
	assert.Equal(t, "/var/log/lifemaxx/service.log", cfg.LogsPath)
	assert.Equal(t, 60, cfg.APIRateLimitAllowedPerMin)
}

func TestLoad_unknownEnv(t *testing.T) {
	cfg, err := Load("staging", writeTestConfig(t))
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "unknown env")
}

func TestLoad_missingFile(t *testing.T) {
	cfg, err := Load("development", "/no/such/config.toml")
	require.Error(t, err)
	assert.Nil(t, cfg)
}
