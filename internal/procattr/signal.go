package procattr

import (
	"os"
	"syscall"
)

// Signal delivers sig to the whole process group of p. The negative PID
// addresses the group, so the CLI's grandchildren receive it as well.
// A nil process is a no-op.
func Signal(p *os.Process, sig syscall.Signal) error {
	if p == nil {
		return nil
	}
	return syscall.Kill(-p.Pid, sig)
}

// Kill sends SIGKILL to the whole process group of p.
func Kill(p *os.Process) error {
	return Signal(p, syscall.SIGKILL)
}
