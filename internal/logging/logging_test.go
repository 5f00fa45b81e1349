package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesConsoleAndAppendsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installer.log")

	for i := 0; i < 2; i++ {
		var console bytes.Buffer
		logger, closer, err := New(&console, path, false)
		require.NoError(t, err)
		logger.Info("Directory created", zap.String(KeyPath, "/tmp/x"))
		logger.Error("Failed to create directory", zap.String(KeyPath, "/tmp/y"))
		logger.Debug("hidden on console")
		require.NoError(t, closer())

		out := console.String()
		assert.Contains(t, out, "✅")
		assert.Contains(t, out, "Directory created")
		assert.Contains(t, out, "❌")
		assert.NotContains(t, out, "hidden on console")
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 6, "file sink must append across runs and keep debug records")

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "Directory created", record["msg"])
	assert.Equal(t, "/tmp/x", record[KeyPath])
}

func TestAnnouncementsUseNeutralMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installer.log")
	var console bytes.Buffer
	logger, closer, err := New(&console, path, false)
	require.NoError(t, err)
	logger.With(zap.String(KeyStep, "inject")).Info("Injecting into", Announce(), zap.String(KeyPath, "/tmp/app"))
	logger.Info("Injection successful")
	require.NoError(t, closer())

	lines := strings.Split(strings.TrimSpace(console.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "→"), lines[0])
	assert.Contains(t, lines[0], "/tmp/app")
	assert.Contains(t, lines[0], "inject")
	assert.NotContains(t, lines[0], "✅")
	assert.NotContains(t, lines[0], KeyAnnounce)
	assert.True(t, strings.HasPrefix(lines[1], "✅"), lines[1])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.SplitN(string(data), "\n", 2)[0]), &record))
	assert.Equal(t, "Injecting into", record["msg"])
	assert.Equal(t, true, record[KeyAnnounce])
}

func TestNewVerboseShowsDebug(t *testing.T) {
	var console bytes.Buffer
	logger, closer, err := New(&console, "", true)
	require.NoError(t, err)
	logger.Debug("detail")
	require.NoError(t, closer())
	assert.Contains(t, console.String(), "detail")
}

func TestNewFailsOnBadPath(t *testing.T) {
	_, _, err := New(&bytes.Buffer{}, filepath.Join(t.TempDir(), "missing", "x.log"), false)
	assert.Error(t, err)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	logger := zap.NewExample()
	assert.Same(t, logger, OrNop(logger))
}
