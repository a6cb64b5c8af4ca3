package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_DefaultsAndFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9999"
jwt:
  secret: file-secret
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)

	// Untouched fields keep their defaults.
	assert.Equal(t, "jwt", cfg.Server.AuthMode)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL())
	assert.Equal(t, 5*time.Second, cfg.ServiceCallTimeout())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9999"
jwt:
  secret: file-secret
`)
	t.Setenv("SERVER_PORT", "7777")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("CACHE_ENABLED", "false")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7777", cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoadConfig_MissingSecretFails(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9999"
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_RejectsBadValues(t *testing.T) {
	_, err := LoadConfig(writeConfigFile(t, `
jwt:
  secret: s
  access_token_expiration: not-a-duration
`))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfigFile(t, `
jwt:
  secret: s
cache:
  backend: memcached
`))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfigFile(t, `
jwt:
  secret: s
server:
  auth_mode: none
`))
	assert.Error(t, err)
}

func TestCacheNegativeTTL(t *testing.T) {
	cfg := &Config{}

	cfg.Cache.NegativeTTL = ""
	assert.Equal(t, time.Duration(0), cfg.CacheNegativeTTL())

	cfg.Cache.NegativeTTL = "off"
	assert.Negative(t, cfg.CacheNegativeTTL())

	cfg.Cache.NegativeTTL = "5s"
	assert.Equal(t, 5*time.Second, cfg.CacheNegativeTTL())
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "db"
	cfg.Database.Port = "5432"
	cfg.Database.DBName = "campusgrid"

	assert.Equal(t,
		"postgres://app:pw@db:5432/campusgrid?sslmode=disable",
		cfg.GetPostgresConnectionString())
}
