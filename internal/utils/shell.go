package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// AppName names the per-user data folder.
const AppName = "GestorPro"

// DefaultDataDir is the per-user configuration folder for the application,
// e.g. %AppData%\GestorPro on Windows.
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// OpenCommand returns the command that shows dir in the desktop file manager.
func OpenCommand(goos, dir string) *exec.Cmd {
	switch goos {
	case "windows":
		return exec.Command("explorer", dir)
	case "darwin":
		return exec.Command("open", dir)
	default:
		return exec.Command("xdg-open", dir)
	}
}

// OpenFolder shows dir in the desktop file manager without waiting for it.
func OpenFolder(dir string) error {
	cmd := OpenCommand(runtime.GOOS, dir)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", dir, err)
	}
	go cmd.Wait() //nolint:errcheck // explorer exits non-zero even on success
	return nil
}
