// internal/power/power.go

// Package power invokes the host's power-off command.
package power

import (
	"fmt"
	"os/exec"
	"runtime"
)

// SystemShutdown powers off the host with the platform command.
// Execute is not expected to return under normal operation.
type SystemShutdown struct{}

// Execute runs the platform power-off command and waits for it.
func (SystemShutdown) Execute() error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command(`C:\Windows\System32\shutdown.exe`, "/s", "/f", "/t", "0")
	default:
		cmd = exec.Command("/bin/sudo", "/sbin/halt")
	}

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("power: %s: %w (%s)", cmd.Path, err, out)
	}
	return nil
}
