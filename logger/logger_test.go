package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Writer: &buf, Format: "json", Level: slog.LevelInfo})

	logger.Info("outfit worn", "kind", "monochrome")

	assert.Contains(t, buf.String(), `"msg":"outfit worn"`)
	assert.Contains(t, buf.String(), `"kind":"monochrome"`)
	assert.Contains(t, buf.String(), `"level":"INFO"`)
}

func TestNewTextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Writer: &buf, Format: "text", Level: slog.LevelWarn})

	logger.Info("hidden")
	logger.Warn("weather lookup failed", "attempt", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "weather lookup failed")
	assert.Contains(t, buf.String(), "attempt=2")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"loud":    slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "wardrobe.log")

	logger, closer, err := OpenFile(path, "debug", "text")
	require.NoError(t, err)
	logger.Debug("wardrobe loaded", "garments", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "wardrobe loaded")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("json"))
	assert.NoError(t, Validate("TEXT"))
	assert.Error(t, Validate("pretty"))
}
