package infrastructure

import (
	"bufio"
	"bytes"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forecast.app/internal/ports"
	"forecast.app/pkg/errors"
	"forecast.app/pkg/logger"
)

func readLogLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		lines = append(lines, entry)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestNewFileLoggerAdapter(t *testing.T) {
	_, err := NewFileLoggerAdapter("", "info")
	assert.True(t, errors.IsConfigurationError(err))

	path := filepath.Join(t.TempDir(), "nested", "dir", "app.log")
	l, err := NewFileLoggerAdapter(path, "debug")
	require.NoError(t, err)

	l.Info("created")
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileLoggerAdapter_StructuredEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := NewFileLoggerAdapter(path, "debug")
	require.NoError(t, err)

	l.Debug("Forward lookup abandoned", ports.F("place", "London"))
	l.Error("Weather API request failed",
		ports.F("provider", "openweathermap"),
		ports.F("error", stderrors.New("connection refused")),
		ports.F("duration_ms", int64(12)))

	lines := readLogLines(t, path)
	require.Len(t, lines, 2)

	assert.Equal(t, "DEBUG", lines[0]["level"])
	assert.Equal(t, "London", lines[0]["place"])

	assert.Equal(t, "ERROR", lines[1]["level"])
	assert.Equal(t, "Weather API request failed", lines[1]["message"])
	assert.Equal(t, "connection refused", lines[1]["error"])
	assert.Equal(t, float64(12), lines[1]["duration_ms"])
	assert.NotEmpty(t, lines[1]["timestamp"])
}

func TestFileLoggerAdapter_MinLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := NewFileLoggerAdapter(path, "warn")
	require.NoError(t, err)

	l.Debug("dropped")
	l.Info("dropped")
	l.Warn("kept")
	l.Error("kept")

	lines := readLogLines(t, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "WARN", lines[0]["level"])
	assert.Equal(t, "ERROR", lines[1]["level"])
}

func TestFileLoggerAdapter_AppendsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	first, err := NewFileLoggerAdapter(path, "info")
	require.NoError(t, err)
	first.Info("one")

	second, err := NewFileLoggerAdapter(path, "info")
	require.NoError(t, err)
	second.Info("two")

	lines := readLogLines(t, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "one", lines[0]["message"])
	assert.Equal(t, "two", lines[1]["message"])
}

func TestFileLoggerAdapter_ConcurrentWritesStayWhole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := NewFileLoggerAdapter(path, "info")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				l.Info("refresh", ports.F("worker", g), ports.F("i", i))
			}
		}(g)
	}
	wg.Wait()

	assert.Len(t, readLogLines(t, path), 200)
}

func TestSlogLoggerAdapter_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLoggerAdapter(logger.NewWithOptions(&buf, slog.LevelInfo, "json"))

	l.Debug("hidden")
	l.Warn("Failed to cache geocode result", ports.F("place", "Oslo"), ports.F("error", stderrors.New("redis down")))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "Failed to cache geocode result", entry["msg"])
	assert.Equal(t, "Oslo", entry["place"])
	assert.Equal(t, "redis down", entry["error"])
}
