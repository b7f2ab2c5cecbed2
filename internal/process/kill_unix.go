//go:build !windows

package process

import "golang.org/x/sys/unix"

// KillTree sends SIGKILL to the process group led by pid. The browser
// launcher starts Chrome in its own group, so helpers die with it.
func KillTree(pid int) {
	_ = unix.Kill(-pid, unix.SIGKILL)
}
