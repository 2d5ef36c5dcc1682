package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/trailfx/parameter"
)

func debugOptions(dir string) Options {
	return Options{Debug: true, Dir: dir, File: parameter.LogFileName, MaxSize: parameter.MaxLogSize}
}

func TestSetupDisabledByDefault(t *testing.T) {
	h, err := Setup(Options{Dir: t.TempDir()})
	require.NoError(t, err)
	defer h.Close()

	assert.Empty(t, h.Path())
	assert.Equal(t, io.Discard, log.Writer(), "standard logger output is discarded")
	h.Logger.Info("dropped")
}

func TestSetupEnabledWithDebug(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	h, err := Setup(debugOptions(dir))
	require.NoError(t, err)

	logPath := filepath.Join(dir, parameter.LogFileName)
	assert.Equal(t, logPath, h.Path())

	h.Logger.Info("test log message")
	log.Println("standard logger message")

	output := log.Writer()
	assert.NotEqual(t, os.Stdout, output)
	assert.NotEqual(t, os.Stderr, output)

	require.NoError(t, h.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "test log message")
	assert.Contains(t, string(data), "standard logger message")
}

func TestSetupRotation(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, parameter.LogFileName)
	require.NoError(t, os.WriteFile(logPath, make([]byte, 1025), 0644))

	opts := debugOptions(dir)
	opts.MaxSize = 1024
	h, err := Setup(opts)
	require.NoError(t, err)
	defer h.Close()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != parameter.LogFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
		}
	}
	assert.True(t, rotatedFound, "expected a rotated log file")

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(1024))
}

func TestCloseIsRepeatable(t *testing.T) {
	h, err := Setup(debugOptions(t.TempDir()))
	require.NoError(t, err)
	require.NoError(t, h.Close())
	assert.NoError(t, h.Close())
}
