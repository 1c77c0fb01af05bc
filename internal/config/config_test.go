package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("gmail_email", "")
	t.Setenv("gmail_password", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "smtp", cfg.Mail.Transport)
	assert.Equal(t, "gmail", cfg.Mail.Service)
	assert.Equal(t, "BintaM", cfg.Mail.FromName)
	assert.Equal(t, 10, cfg.Mail.Timeout)
	assert.Equal(t, "orders", cfg.Orders.TableName)
	assert.Equal(t, "orderId", cfg.Orders.KeyName)
	assert.Equal(t, "DDBStreamCustomEventBus", cfg.EventBus.Name)
	assert.Equal(t, "orders.stream", cfg.EventBus.Source)
	assert.Equal(t, "OrderChanged", cfg.EventBus.DetailType)
	assert.Empty(t, cfg.Mail.Recipient())
}

func TestLoad_GmailCredentialsFromEnv(t *testing.T) {
	t.Setenv("gmail_email", "ops@example.com")
	t.Setenv("gmail_password", "app-password")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "ops@example.com", cfg.Mail.Username)
	assert.Equal(t, "app-password", cfg.Mail.Password)
	assert.Equal(t, "ops@example.com", cfg.Mail.Recipient())
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
log:
  level: debug
mail:
  transport: ses
  username: file@example.com
orders:
  table_name: orders-staging
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("gmail_email", "env@example.com")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "ses", cfg.Mail.Transport)
	assert.Equal(t, "env@example.com", cfg.Mail.Username)
	assert.Equal(t, "orders-staging", cfg.Orders.TableName)
	assert.Equal(t, "gmail", cfg.Mail.Service)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unterminated"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
