package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceID(t *testing.T) {
	id := deviceID("00:1a:2b:3c:4d:5e")
	assert.Regexp(t, `^GP-[0-9A-F]{8}$`, id)
	assert.Equal(t, id, deviceID("00:1a:2b:3c:4d:5e"))
	assert.NotEqual(t, id, deviceID("00:1a:2b:3c:4d:5f"))
	assert.Equal(t, UnknownDevice, deviceID(""))
}

func TestGetDeviceIDIsStable(t *testing.T) {
	assert.Equal(t, GetDeviceID(), GetDeviceID())
}

func TestOpenCommand(t *testing.T) {
	tests := map[string]string{
		"windows": "explorer",
		"darwin":  "open",
		"linux":   "xdg-open",
		"freebsd": "xdg-open",
	}
	for goos, tool := range tests {
		cmd := OpenCommand(goos, "/data")
		require.NotEmpty(t, cmd.Args)
		assert.Equal(t, tool, cmd.Args[0], goos)
		assert.Equal(t, "/data", cmd.Args[len(cmd.Args)-1])
	}
}

func TestDefaultDataDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("HOME", "/tmp/home")
	t.Setenv("AppData", "/tmp/appdata")

	dir, err := DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, AppName, filepath.Base(dir))
}
