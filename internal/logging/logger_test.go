package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger(buf *bytes.Buffer, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	SetLoggerForTest(zerolog.New(buf).With().Timestamp().Logger().Level(lvl))
}

func TestStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "debug")

	Info("essay generated", "words", 1500, "style", "academic")

	out := buf.String()
	assert.Contains(t, out, "essay generated")
	assert.Contains(t, out, `"words":1500`)
	assert.Contains(t, out, `"style":"academic"`)
	assert.Contains(t, out, `"level":"info"`)
}

func TestErrorValues(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "info")

	Error("generation failed", "error", errors.New("quota exceeded"))

	assert.Contains(t, buf.String(), `"error":"quota exceeded"`)
}

func TestDanglingKey(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "info")

	Warn("odd", "k", "v", "dangling")

	assert.Contains(t, buf.String(), `"k":"v"`)
	assert.Contains(t, buf.String(), `"extra":"dangling"`)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "warn")

	Info("hidden")
	assert.Empty(t, buf.String())

	SetLogLevel("info")
	Info("visible")
	assert.Contains(t, buf.String(), "visible")

	buf.Reset()
	SetLogLevel("not-a-level")
	Debug("still hidden")
	Info("info after fallback")
	assert.NotContains(t, buf.String(), "still hidden")
	assert.Contains(t, buf.String(), "info after fallback")
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "quill.log")

	require.NoError(t, Init(Options{File: path, Level: "info", MaxSizeMB: 1}))
	Info("hello file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")

	require.NoError(t, Init(Options{}))
}
