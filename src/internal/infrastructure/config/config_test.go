package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackyeh168/crm_dashboard/src/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
server:
  port: 8080
data:
  customers_path: /tmp/customers.md
notification:
  horizon_days: 3
editing:
  debounce: 500ms
`)

	// Act
	cfg, err := config.Load(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "/tmp/customers.md", cfg.Data.CustomersPath)
	assert.Equal(t, 3, cfg.Notification.HorizonDays)
	assert.Equal(t, 500*time.Millisecond, cfg.Editing.Debounce)
	assert.Equal(t, "営業通知Bot", cfg.Notification.Username)
	assert.Equal(t, "ゲーム開発所RYURYU", cfg.Messaging.CompanyName)
	assert.Equal(t, 10*time.Second, cfg.Notification.Timeout)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	// Arrange
	path := writeConfig(t, "server:\n  port: 8080\n")
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/1/abc")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CUSTOMERS_PATH", "/srv/customers.md")

	// Act
	cfg, err := config.Load(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://discord.com/api/webhooks/1/abc", cfg.Notification.WebhookURL)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/srv/customers.md", cfg.Data.CustomersPath)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"log level", "log:\n  level: loud\n"},
		{"webhook url", "notification:\n  webhook_url: not a url\n"},
		{"debounce", "editing:\n  debounce: 0s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.content))

			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
}
