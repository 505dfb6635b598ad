//go:build !unix

package executor

import "os"

func exitCodeFromState(ps *os.ProcessState) int {
	return normalizeExitCode(ps.ExitCode())
}

// interruptSignals returns the signals forwarded to the child on non-Unix
// platforms.
func interruptSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
