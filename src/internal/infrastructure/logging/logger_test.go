package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jackyeh168/crm_dashboard/src/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesRotatedFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "crm.log")

	// Act
	logger, err := New(config.LogConfig{Level: "info", Format: "json", FilePath: path, MaxSize: 1})
	require.NoError(t, err)
	logger.Info("saved", zap.Int("records", 3))
	logger.Debug("hidden")
	_ = logger.Sync()

	// Assert
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"saved"`)
	assert.Contains(t, string(data), `"records":3`)
	assert.NotContains(t, string(data), "hidden")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zap.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zap.InfoLevel, parseLevel(""))
}
