//go:build !linux

// Package procattr configures agent CLI subprocesses so that no orphan
// survives the SDK: children run in their own process group and, on
// Linux, die with the parent.
package procattr

import (
	"os/exec"
	"syscall"
)

// Apply puts the subprocess in its own process group. Pdeathsig is not
// available outside Linux; group signaling still lets the parent clean up.
func Apply(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}
