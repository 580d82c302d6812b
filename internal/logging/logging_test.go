package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seagrayinc/vendapin/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, config.LoggingConfig{Level: "info", Format: "json"}))

	logger.Debug("hidden")
	logger.Info("dispensed", slog.String("status", "READY"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "dispensed", line["msg"])
	assert.Equal(t, "READY", line["status"])
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vendapin.log")
	logger, closer := New(config.LoggingConfig{
		Level: "debug",
		File:  config.LogFileConfig{Filename: path, MaxSizeMB: 1},
	})

	logger.Debug("sending packet", slog.String("bytes", "02-01-81-00-03-81"))
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "02-01-81-00-03-81")
}
