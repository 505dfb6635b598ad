// clarity runs a command and prints a short summary of its output.
//
// Usage:
//
//	clarity [flags] <command> [args...]
//	clarity npm install
//	clarity --details docker build .
//	clarity --full -- logs
//
// Flags must come before the wrapped command; everything after it is passed
// through untouched. The wrapped command's exit code becomes clarity's exit
// code. Usage and configuration errors exit with 2.
//
// Subcommands:
//
//	logs       list stored logs, or replay one with `logs show`
//	history    list recent runs
//	plugins    list summarizer plugins in dispatch order
package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/dkoosis/clarity/internal/version"
)

// exitUsage is returned for usage and infrastructure failures.
const exitUsage = 2

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := fang.Execute(ctx, root, fang.WithVersion(version.String())); err != nil {
		return exitUsage
	}
	return a.code
}
