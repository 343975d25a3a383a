//go:build !windows

package child

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// setProcessGroup places the child in its own process group so a later
// kill can take down any descendants it spawns.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcessGroup signals the whole process group. It escalates straight
// to SIGKILL: a fuzzing harness has no use for a target that catches
// SIGTERM and lingers.
func killProcessGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	pgid := cmd.Process.Pid
	_ = unix.Kill(-pgid, unix.SIGKILL)
	_ = cmd.Process.Kill()
}
