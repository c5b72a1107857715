package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Creates a temporary YAML config file in a temporary directory.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	err := os.WriteFile(configPath, []byte(content), 0o600)
	require.NoError(t, err, "Failed to write temporary config file")

	return configPath
}

const validYAML = `
env: "test"
http_server:
  address: ":8081"
database:
  PG_HOST: "dbhost"
  PG_PORT: "5433"
  PG_USER: "testuser"
  PG_PASSWORD: "testpassword"
  PG_DBNAME: "testdb"
  PG_SSLMODE: "disable"
  MAX_OPEN_CONNS: 10
  MAX_IDLE_CONNS: 5
  CONN_MAX_LIFETIME: "10m"
  CONN_MAX_IDLE_TIME: "2m"
redis:
  REDIS_HOST: "cachehost"
  REDIS_PORT: "6380"
  REDIS_USER: "cacheuser"
  REDIS_PASSWORD: "cachepass"
security:
  JWT_KEY: "test-key"
  JWT_EXPIRY_HOURS: 8
store:
  name: "Test Store"
  currency: "INR"
  tax_rate: 0.18
cart:
  snapshot_ttl: "48h"
`

func TestLoadConfigFromPath(t *testing.T) {
	t.Run("Success - All Sections Parsed", func(t *testing.T) {
		// Arrange
		configPath := createTempConfigFile(t, validYAML)

		// Act
		cfg, err := LoadConfigFromPath(configPath)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "test", cfg.Env)
		assert.Equal(t, ":8081", cfg.Addr)
		assert.Equal(t, "dbhost", cfg.Database.Host)
		assert.Equal(t, 10, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10*time.Minute, cfg.Database.ConnMaxLifetime)
		assert.Equal(t, "cachehost", cfg.RedisConnect.Host)
		assert.Equal(t, "test-key", cfg.Security.JWTKey)
		assert.Equal(t, 8, cfg.Security.JWTExpiryHours)
		assert.Equal(t, "Test Store", cfg.Store.Name)
		assert.Equal(t, 0.18, cfg.Store.TaxRate)
		assert.Equal(t, 48*time.Hour, cfg.Cart.SnapshotTTL)
	})

	t.Run("Success - Store Defaults Applied", func(t *testing.T) {
		minimalYAML := `
env: "test"
database:
  PG_USER: "u"
  PG_PASSWORD: "p"
  PG_DBNAME: "d"
security:
  JWT_KEY: "k"
`
		configPath := createTempConfigFile(t, minimalYAML)

		cfg, err := LoadConfigFromPath(configPath)

		require.NoError(t, err)
		assert.Equal(t, "Qpos Store", cfg.Store.Name)
		assert.Equal(t, 0.18, cfg.Store.TaxRate)
		assert.Equal(t, 72*time.Hour, cfg.Cart.SnapshotTTL)
		assert.Equal(t, 24, cfg.Security.JWTExpiryHours)
	})

	t.Run("Failure - Missing File", func(t *testing.T) {
		cfg, err := LoadConfigFromPath(filepath.Join(t.TempDir(), "nope.yaml"))

		assert.Nil(t, cfg)
		assert.Error(t, err)
	})
}

func TestDSNBuilders(t *testing.T) {
	db := Database{
		Host: "dbhost", Port: "5433", User: "u", Password: "p",
		Name: "d", SSLMode: "disable",
	}
	assert.Equal(t, "postgresql://u:p@dbhost:5433/d?sslmode=disable", db.GetDSN())

	r := RedisConnect{Host: "cachehost", Port: "6380", Username: "cu", Password: "cp"}
	assert.Equal(t, "redis://cu:cp@cachehost:6380", r.GetDSN())
}
