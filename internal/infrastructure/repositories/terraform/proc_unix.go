//go:build unix

package terraform

import (
	"os/exec"
	"syscall"
)

// isolate starts the tool in its own process group and kills the whole group
// on cancellation, so provider plugins do not outlive the step.
func isolate(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
