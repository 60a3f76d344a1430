package common

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_Level(t *testing.T) {
	log := SetupLogger(&LoggingOpts{})
	assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))

	log = SetupLogger(&LoggingOpts{Debug: true, JSON: true})
	assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))
}

func TestSetupLogger_File(t *testing.T) {
	dir := t.TempDir()
	log := SetupLogger(&LoggingOpts{
		JSON:    true,
		Service: "biosdk-test",
		Version: "v0",
		File:    filepath.Join(dir, "biosdk.%Y%m%d.log"),
	})
	log.Info("hello", "k", "v")

	files, err := filepath.Glob(filepath.Join(dir, "biosdk.*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	content, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"hello"`)
	assert.Contains(t, string(content), `"service":"biosdk-test"`)
	assert.Contains(t, string(content), `"version":"v0"`)
}
