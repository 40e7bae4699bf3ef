package config

import (
	"log/slog"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GESTORPRO_DATA_DIR", dir)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.Equal(t, "Administrator", cfg.AdminUser)
	assert.Empty(t, cfg.AdminPass)
	assert.True(t, cfg.AllowRegistration)
	assert.Equal(t, 5, cfg.LowStockThreshold)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("GESTORPRO_DATA_DIR", t.TempDir())
	t.Setenv("GESTORPRO_ADDR", "127.0.0.1:9999")
	t.Setenv("GESTORPRO_ADMIN_PASS", "s3cret")
	t.Setenv("GESTORPRO_ALLOW_REGISTRATION", "false")
	t.Setenv("GESTORPRO_LOW_STOCK_THRESHOLD", "2")
	t.Setenv("GESTORPRO_LOG_LEVEL", "debug")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.Addr)
	assert.Equal(t, "s3cret", cfg.AdminPass)
	assert.False(t, cfg.AllowRegistration)
	assert.Equal(t, 2, cfg.LowStockThreshold)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoadFlagsWinOverEnvironment(t *testing.T) {
	t.Setenv("GESTORPRO_ADDR", "127.0.0.1:9999")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("data-dir", "", "")
	flags.String("addr", "", "")
	flags.String("log-level", "", "")
	dir := t.TempDir()
	require.NoError(t, flags.Parse([]string{"--data-dir", dir, "--addr", ":7000"}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel, "unset flags do not shadow defaults")
}

func TestLoadRejectsNegativeThreshold(t *testing.T) {
	t.Setenv("GESTORPRO_DATA_DIR", t.TempDir())
	t.Setenv("GESTORPRO_LOW_STOCK_THRESHOLD", "-1")

	_, err := Load(nil)
	assert.Error(t, err)
}

func TestLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "loud"}).Level())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "warn"}).Level())
}
