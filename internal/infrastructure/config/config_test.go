package config

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"STOREFRONT_APP_NAME":          os.Getenv("STOREFRONT_APP_NAME"),
		"STOREFRONT_APP_ENV":           os.Getenv("STOREFRONT_APP_ENV"),
		"STOREFRONT_APP_PORT":          os.Getenv("STOREFRONT_APP_PORT"),
		"STOREFRONT_DATABASE_HOST":     os.Getenv("STOREFRONT_DATABASE_HOST"),
		"STOREFRONT_DATABASE_PORT":     os.Getenv("STOREFRONT_DATABASE_PORT"),
		"STOREFRONT_DATABASE_USER":     os.Getenv("STOREFRONT_DATABASE_USER"),
		"STOREFRONT_DATABASE_PASSWORD": os.Getenv("STOREFRONT_DATABASE_PASSWORD"),
		"STOREFRONT_DATABASE_DBNAME":   os.Getenv("STOREFRONT_DATABASE_DBNAME"),
		"STOREFRONT_DATABASE_SSLMODE":  os.Getenv("STOREFRONT_DATABASE_SSLMODE"),
		"STOREFRONT_JWT_SECRET":        os.Getenv("STOREFRONT_JWT_SECRET"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "storefront-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "storefront", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.True(t, cfg.Checkout.IdempotencyTTL > 0)
	})

	t.Run("loads values from environment variables with STOREFRONT prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREFRONT_APP_NAME", "test-app")
		os.Setenv("STOREFRONT_APP_PORT", "9000")
		os.Setenv("STOREFRONT_DATABASE_HOST", "testdb.local")
		os.Setenv("STOREFRONT_DATABASE_PORT", "5433")
		os.Setenv("STOREFRONT_DATABASE_USER", "testuser")
		os.Setenv("STOREFRONT_DATABASE_PASSWORD", "testpass")
		os.Setenv("STOREFRONT_DATABASE_DBNAME", "testdb")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
	})

	t.Run("rejects production without jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREFRONT_APP_ENV", "production")
		os.Setenv("STOREFRONT_DATABASE_PASSWORD", "secret")
		os.Setenv("STOREFRONT_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("rejects production with sslmode disable", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREFRONT_APP_ENV", "production")
		os.Setenv("STOREFRONT_JWT_SECRET", strings.Repeat("s", 32))
		os.Setenv("STOREFRONT_DATABASE_PASSWORD", "secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.local",
		Port:     5432,
		User:     "store",
		Password: "p@ss/word",
		DBName:   "storefront",
		SSLMode:  "require",
	}

	dsn := d.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.local:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
