//go:build windows

package child

import "os/exec"

// setProcessGroup is a no-op on Windows: process groups in the POSIX sense
// don't exist, and exec.Cmd has no portable equivalent worth reaching for.
func setProcessGroup(cmd *exec.Cmd) {}

// killProcessGroup falls back to killing just the direct child process,
// mirroring the platform fallback the rest of this codebase's ancestry
// uses when SIGKILL-style signaling isn't available.
func killProcessGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Kill()
}
