package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/trailfx/config"
	"github.com/lixenwraith/trailfx/view"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestViewsCommand(t *testing.T) {
	out, err := execute(t, "views")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(view.Pages()))
	assert.True(t, strings.HasPrefix(lines[0], "1  home"))
	assert.Contains(t, lines[5], "traffic-predictor")
}

func TestInitConfigWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trailfx.yaml")
	out, err := execute(t, "init-config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().FPS, cfg.FPS)
	assert.Equal(t, view.Home, cfg.View)
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trailfx.yaml")
	base := config.DefaultConfig()
	base.View = "resume-screener"
	base.FPS = 30
	require.NoError(t, base.Save(path))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--fps", "120", "--feed", ":9000"}))

	f := &flags{}
	f.configPath, _ = cmd.Flags().GetString("config")
	f.fps, _ = cmd.Flags().GetInt("fps")
	f.feed, _ = cmd.Flags().GetString("feed")

	cfg, err := loadConfig(cmd, f)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.FPS)
	assert.Equal(t, ":9000", cfg.Feed.Addr)
	assert.Equal(t, "resume-screener", cfg.View, "unset flags keep the file value")
}

func TestLoadConfigRejectsBadFPS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--fps", "1000"}))

	_, err := loadConfig(cmd, &flags{configPath: path, fps: 1000})
	assert.ErrorIs(t, err, config.ErrInvalid)
}
