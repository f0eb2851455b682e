package netstatus

import (
	"fmt"
	"os/exec"
	"runtime"
)

// settingsCommand returns the launcher for the system network settings on
// goos.
func settingsCommand(goos string) (name string, args []string, ok bool) {
	switch goos {
	case "darwin":
		return "open", []string{"x-apple.systempreferences:com.apple.preference.network"}, true
	case "linux":
		return "nm-connection-editor", nil, true
	case "windows":
		return "cmd", []string{"/c", "start", "ms-settings:network"}, true
	default:
		return "", nil, false
	}
}

// OpenSettings starts the platform network settings application and returns
// without waiting for it.
func OpenSettings() error {
	name, args, ok := settingsCommand(runtime.GOOS)
	if !ok {
		return fmt.Errorf("network settings are not supported on %s", runtime.GOOS)
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open network settings: %w", err)
	}
	return cmd.Process.Release()
}
