package common

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoggerToFile(t *testing.T) {
	cfg := DefaultLogConfig()
	cfg.Level = "debug"
	cfg.File = filepath.Join(t.TempDir(), "navpath.log")

	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	logger.Debug("hello", zap.Int("answer", 42))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(cfg.File)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, 42.0, entry["answer"])
}

func TestNewLoggerLevel(t *testing.T) {
	cfg := DefaultLogConfig()
	cfg.Level = "warn"
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.ErrorLevel))

	cfg.Level = "loud"
	_, err = NewLogger(cfg)
	assert.Error(t, err)
}
