package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, LevelFor(0))
	assert.Equal(t, slog.LevelDebug, LevelFor(1))
	assert.Equal(t, LevelTrace, LevelFor(2))
	assert.Equal(t, LevelTrace, LevelFor(5))
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, IconTypeASCII, cfg.IconType)
	assert.True(t, cfg.DefaultToTui)
	assert.Equal(t, filepath.Join(cfg.CacheDir, "mpv.sock"), cfg.MpvSocket())

	cfg.SocketPath = "/tmp/custom.sock"
	assert.Equal(t, "/tmp/custom.sock", cfg.MpvSocket())
}

func TestSetupLoggingToFile(t *testing.T) {
	cfg := Default()
	cfg.Verbosity = 2
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "vidstrip.log")
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg.SetupLogging()
	assert.True(t, cfg.Enabled(LevelTrace))

	cfg.Logger.Log(t.Context(), LevelTrace, "hello")
	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "level=TRACE")
	assert.Contains(t, string(data), "msg=hello")
}

func TestSavePersistsNoCache(t *testing.T) {
	t.Cleanup(viper.Reset)
	cfg := Default()
	cfg.ConfigPath = filepath.Join(t.TempDir(), ".vidstrip.yaml")
	cfg.NoCache = true
	cfg.Theme = "dark"
	require.NoError(t, cfg.Save())

	v := viper.New()
	v.SetConfigFile(cfg.ConfigPath)
	require.NoError(t, v.ReadInConfig())
	assert.True(t, v.IsSet("no_cache"))
	assert.True(t, v.GetBool("no_cache"))
	assert.Equal(t, "dark", v.GetString("theme"))
}
