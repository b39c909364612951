//go:build unix

package webapi

import (
	"os/exec"
	"syscall"
)

// killProcessGroup runs the script in its own process group so that
// cancellation also kills anything the script spawned.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
