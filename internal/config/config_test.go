package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("NOMIS_API_URL", "http://nomis.local")
	t.Setenv("NOMIS_API_TIMEOUT_SEC", "invalid")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "incident-reporting.domain-events", cfg.Redis.Channel)
	assert.Equal(t, "http://nomis.local", cfg.Nomis.BaseURL)
	assert.Equal(t, 10, cfg.Nomis.TimeoutSec)
	assert.Equal(t, "X-Auth-Username", cfg.AuthHeader)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "UTC", cfg.Database.TimeZone)
	assert.Equal(t, "incidentapi", cfg.Database.ApplicationName)
}

func TestLoad_DatabaseSessionFollowsAppTimezone(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Europe/London")
	t.Setenv("DB_APPLICATION_NAME", "incidentapi-sync")

	cfg := Load()

	assert.Equal(t, "Europe/London", cfg.Database.TimeZone)
	assert.Equal(t, "incidentapi-sync", cfg.Database.ApplicationName)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	t.Setenv(key, "value")

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	t.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	t.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	t.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	t.Setenv(key, "")
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	t.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	t.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	t.Setenv(key, "")
	assert.Equal(t, 10, getEnvInt(key, 10))
}
