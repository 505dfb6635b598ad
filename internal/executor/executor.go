// Package executor runs one external command without a shell and captures
// both of its output streams.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// ExitCommandNotFound is reported when the command could not be started.
const ExitCommandNotFound = 127

// Invocation names the command to run. It is not modified once execution
// starts.
type Invocation struct {
	Command string
	Args    []string
}

// String renders the invocation for log lines.
func (inv Invocation) String() string {
	return strings.TrimSpace(inv.Command + " " + strings.Join(inv.Args, " "))
}

// Result is the captured outcome of one run. Each stream holds every chunk
// the child wrote, in arrival order, with invalid UTF-8 replaced by U+FFFD.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Started  time.Time
	Duration time.Duration
}

// Executor spawns commands. A nil Env inherits the parent environment, as
// with os/exec; New snapshots it explicitly.
type Executor struct {
	// Env is passed to the child verbatim.
	Env []string

	Stdin io.Reader

	// Stdout and Stderr receive live output in raw mode only.
	Stdout io.Writer
	Stderr io.Writer

	Logger *log.Logger
}

// New returns an executor wired to the process's standard streams and a
// snapshot of its environment.
func New(logger *log.Logger) *Executor {
	return &Executor{
		Env:    os.Environ(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// Execute runs inv and waits for it to exit. When raw is set each chunk is
// also written to the live writers as it arrives. Execute never returns an
// error: start failures become exit code 127 with a message appended to
// Stderr.
func (e *Executor) Execute(ctx context.Context, inv Invocation, raw bool) Result {
	stdout := &capture{}
	stderr := &capture{}
	if raw {
		stdout.live = e.Stdout
		stderr.live = e.Stderr
	}

	started := time.Now()
	code, err := e.run(ctx, inv, stdout, stderr)
	if err != nil {
		e.debug("start failed", "command", inv.Command, "err", err)
		msg := startFailureMessage(inv.Command, err)
		_, _ = stderr.Write([]byte(msg + "\n"))
		code = ExitCommandNotFound
	}

	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: code,
		Started:  started,
		Duration: time.Since(started),
	}
	e.debug("command finished", "command", inv.String(), "exit", res.ExitCode, "duration", res.Duration)
	return res
}

// run returns a non-nil error only when the command could not be started.
func (e *Executor) run(ctx context.Context, inv Invocation, stdout, stderr io.Writer) (code int, err error) {
	defer func() {
		if r := recover(); r != nil {
			code, err = ExitCommandNotFound, fmt.Errorf("start %s: %v", inv.Command, r)
		}
	}()

	if inv.Command == "" {
		return ExitCommandNotFound, exec.ErrNotFound
	}

	cmd := exec.CommandContext(ctx, inv.Command, inv.Args...)
	cmd.Env = e.Env
	cmd.Stdin = e.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, interruptSignals()...)
	defer signal.Stop(sigCh)

	if err := cmd.Start(); err != nil {
		return ExitCommandNotFound, err
	}
	e.debug("command started", "command", inv.String(), "pid", cmd.Process.Pid)

	done := make(chan struct{})
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		for {
			select {
			case sig := <-sigCh:
				e.debug("forwarding signal", "signal", sig, "pid", cmd.Process.Pid)
				if err := cmd.Process.Signal(sig); err != nil {
					e.debug("signal forward failed", "err", err)
				}
			case <-done:
				return
			}
		}
	}()

	waitErr := cmd.Wait()
	close(done)
	<-forwarded

	if cmd.ProcessState != nil {
		return exitCodeFromState(cmd.ProcessState), nil
	}
	// Wait failed before the process state was recorded.
	if waitErr != nil {
		e.debug("wait failed", "err", waitErr)
	}
	return 1, nil
}

func (e *Executor) debug(msg string, keyvals ...any) {
	if e.Logger != nil {
		e.Logger.Debug(msg, keyvals...)
	}
}

func startFailureMessage(command string, err error) string {
	if isCommandNotFound(err) {
		return "Command not found: " + command
	}
	return err.Error()
}

// isCommandNotFound checks exec.ErrNotFound and fs.ErrNotExist, falling back
// to the message text for wrapped platform errors.
func isCommandNotFound(err error) bool {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return true
	}
	return strings.Contains(err.Error(), "executable file not found")
}

// capture buffers one stream and optionally mirrors it to a live writer.
// os/exec copies each stream from its own goroutine, so writes are locked.
type capture struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	live io.Writer
}

func (c *capture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.Write(p)
	if c.live != nil {
		// A failing live writer must not stop the capture.
		_, _ = c.live.Write(p)
	}
	return len(p), nil
}

func (c *capture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.ToValidUTF8(c.buf.String(), "�")
}

// normalizeExitCode maps the -1 reported for an unknown status to 1.
func normalizeExitCode(code int) int {
	if code < 0 {
		return 1
	}
	return code
}
