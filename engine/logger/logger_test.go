package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("warn", &buf, FileConfig{})

	l.Info("hidden")
	l.Warn("surface lost", zap.Int("frame", 7))
	require.NoError(t, l.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "surface lost")
	assert.Contains(t, out, "frame")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxy-view.log")
	cfg := DefaultFileConfig(path)
	cfg.Compress = false

	l := New("debug", nil, cfg)
	l.Named("loader").Debug("decoded", zap.String("path", "cube.obj"))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DEBUG")
	assert.Contains(t, string(data), "loader")
	assert.Contains(t, string(data), "cube.obj")
}

func TestInstallReplacesGlobal(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Install(prev) })

	var buf bytes.Buffer
	Install(New("info", &buf, FileConfig{}))
	Info("frame skipped")
	Named("profiler").Info("fps")
	Sync()

	assert.Contains(t, buf.String(), "frame skipped")
	assert.Contains(t, buf.String(), "profiler")

	Install(nil)
	assert.NotPanics(t, func() { Warn("discarded") })
}
