//go:build linux

// Package procattr configures agent CLI subprocesses so that no orphan
// survives the SDK: children run in their own process group and, on
// Linux, die with the parent.
package procattr

import (
	"os/exec"
	"syscall"
)

// Apply puts the subprocess in its own process group and arranges for it
// to receive SIGTERM if this process dies first (Pdeathsig). The group is
// what lets Signal and Kill reach the CLI's own children too.
func Apply(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: syscall.SIGTERM,
	}
}
