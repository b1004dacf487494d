package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for name, expected := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		level, err := ParseLevel(name)
		require.NoError(t, err)
		assert.Equal(t, expected, level)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buffer bytes.Buffer
	logger, closeLog, err := New(Config{Level: "warn"}, &buffer)
	require.NoError(t, err)
	defer closeLog()

	logger.Info("hidden")
	logger.Warn("shown", "turn", 3)

	assert.NotContains(t, buffer.String(), "hidden")
	assert.Contains(t, buffer.String(), "msg=shown")
	assert.Contains(t, buffer.String(), "turn=3")
}

func TestNew_FansOutToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bf.log")
	var buffer bytes.Buffer

	logger, closeLog, err := New(Config{Level: "debug", File: path}, &buffer)
	require.NoError(t, err)
	logger.Debug("turn finished", "steps", 12)
	require.NoError(t, closeLog())

	assert.Contains(t, buffer.String(), "steps=12")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &record))
	assert.Equal(t, "turn finished", record["msg"])
	assert.Equal(t, float64(12), record["steps"])
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(Config{Level: "chatty"}, &bytes.Buffer{})
	assert.Error(t, err)
}
