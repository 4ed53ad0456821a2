package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.env")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
PORT=8080
ENVIRONMENT=development
VERSION=1.0.0
TRUSTED_ORIGINS="http://localhost:3000,http://localhost:3001"
POSTGRES_HOST=localhost
POSTGRES_USER=testuser
POSTGRES_PASSWORD=testpassword
POSTGRES_DB=testdb
SECRET=supersecret
TOKEN_TTL=1h
MAIL_HOST=smtp.example.com
MAIL_PORT=587
MAIL_USER=testuser@example.com
MAIL_PASSWORD=testpassword
MAIL_SENDER=sender@example.com
MAIL_RECIPIENT=moderator@example.com
RABBITMQ_HOST=rabbitmq.example.com
RABBITMQ_USER=testuser
RABBITMQ_PASSWORD=testpassword
RATE_LIMIT_ENABLED=false
`)

	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "1.0.0", config.Version)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, config.TrustedOrigins)
	assert.Equal(t, "localhost", config.DBHost)
	assert.Equal(t, "5432", config.DBPort)
	assert.Equal(t, "testuser", config.DBUser)
	assert.Equal(t, "testpassword", config.DBPassword)
	assert.Equal(t, "testdb", config.DBName)
	assert.Equal(t, "file://migrations", config.MigrationsPath)
	assert.Equal(t, "supersecret", config.Secret)
	assert.Equal(t, time.Hour, config.TokenTTL)
	assert.Equal(t, "smtp.example.com", config.MailHost)
	assert.Equal(t, 587, config.MailPort)
	assert.Equal(t, "testuser@example.com", config.MailUser)
	assert.Equal(t, "testpassword", config.MailPassword)
	assert.Equal(t, "sender@example.com", config.MailSender)
	assert.Equal(t, "moderator@example.com", config.MailRecipient)
	assert.Equal(t, "rabbitmq.example.com", config.MQHost)
	assert.Equal(t, "5672", config.MQPort)
	assert.Equal(t, "testuser", config.MQUser)
	assert.Equal(t, "testpassword", config.MQPassword)
	assert.Equal(t, float64(2), config.RateLimitRPS)
	assert.Equal(t, 4, config.RateLimitBurst)
	assert.False(t, config.RateLimitEnabled)
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	path := writeConfigFile(t, "SECRET=fromfile\nPORT=8080\n")

	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL", "15m")

	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", config.Port)
	assert.Equal(t, "fromfile", config.Secret)
	assert.Equal(t, 15*time.Minute, config.TokenTTL)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	t.Setenv("SECRET", "fromenv")

	config, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "fromenv", config.Secret)
	assert.Equal(t, "3003", config.Port)
	assert.Equal(t, 24*time.Hour, config.TokenTTL)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	path := writeConfigFile(t, "PORT=8080\n")
	t.Setenv("SECRET", "")

	_, err := loadConfig(path)
	assert.ErrorIs(t, err, ErrMissingSecret)
}
