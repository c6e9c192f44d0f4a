//go:build !windows

package toolexec

import "os/exec"

func hideConsole(cmd *exec.Cmd) {}
