//go:build unix

package executor

import (
	"os"
	"syscall"
)

// exitCodeFromState maps death by signal to 128+signal, as shells do.
func exitCodeFromState(ps *os.ProcessState) int {
	ws, ok := ps.Sys().(syscall.WaitStatus)
	if !ok {
		return normalizeExitCode(ps.ExitCode())
	}
	if ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return ws.ExitStatus()
}

// interruptSignals returns the signals forwarded to the child on Unix.
func interruptSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM}
}
