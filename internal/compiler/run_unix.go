//go:build unix

package compiler

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// configureCommand starts the compiler in its own process group so that
// cancelling kills the driver and every stage it spawned.
func configureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
}
