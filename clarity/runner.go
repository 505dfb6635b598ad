// Package clarity runs one external command, captures its output, and
// prints a short summary in its place.
//
// The Runner resolves a display mode, executes the command, persists the
// captured log, asks the plugin registry for a summary, applies the profile
// overlay, guarantees a rendered block, and prints it. It always returns the
// wrapped command's exit code.
package clarity

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dkoosis/clarity/internal/cmdline"
	"github.com/dkoosis/clarity/internal/executor"
	"github.com/dkoosis/clarity/internal/history"
	"github.com/dkoosis/clarity/internal/logging"
	"github.com/dkoosis/clarity/internal/logstore"
	"github.com/dkoosis/clarity/pkg/plugin"
	"github.com/dkoosis/clarity/pkg/profile"
)

// Hint placements for the muted-output hint.
const (
	HintBlock  = "block"  // an item inside blocks clarity builds
	HintAlways = "always" // facets plus a hint line after the summary
	HintOff    = "off"
)

// Executor runs a command to completion.
type Executor interface {
	Execute(ctx context.Context, inv executor.Invocation, raw bool) executor.Result
}

// LogWriter persists the captured output of a run and returns its path.
type LogWriter interface {
	WriteLog(ctx context.Context, rec logstore.Record) (string, error)
}

// HistoryRecorder stores one row per run.
type HistoryRecorder interface {
	Record(ctx context.Context, e history.Entry) error
}

// Config wires a Runner. Nil collaborators are skipped; nil writers and a
// nil Registry fall back to the process streams and plugin.Default.
type Config struct {
	Out io.Writer
	Err io.Writer

	Executor Executor
	Registry *plugin.Registry
	Logs     LogWriter
	History  HistoryRecorder
	Logger   *log.Logger

	Hint         string
	PreviewLines int

	// Color enables styling of summary lines.
	Color bool
	// Spinner shows an indicator on Err while the command runs.
	Spinner bool
	// Width clamps preview lines; 0 disables clamping.
	Width int
}

// Runner executes the summarizing pipeline.
type Runner struct {
	out          io.Writer
	err          io.Writer
	exec         Executor
	registry     *plugin.Registry
	logs         LogWriter
	history      HistoryRecorder
	logger       *log.Logger
	hint         string
	previewLines int
	spinner      bool
	width        int
	theme        *theme
}

// NewRunner builds a Runner from cfg.
func NewRunner(cfg Config) *Runner {
	r := &Runner{
		out:          cfg.Out,
		err:          cfg.Err,
		exec:         cfg.Executor,
		registry:     cfg.Registry,
		logs:         cfg.Logs,
		history:      cfg.History,
		logger:       cfg.Logger,
		hint:         cfg.Hint,
		previewLines: cfg.PreviewLines,
		spinner:      cfg.Spinner,
		width:        cfg.Width,
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.err == nil {
		r.err = os.Stderr
	}
	if r.logger == nil {
		r.logger = logging.Discard()
	}
	if r.exec == nil {
		e := executor.New(r.logger)
		e.Stdout, e.Stderr = r.out, r.err
		r.exec = e
	}
	if r.registry == nil {
		r.registry = plugin.Default()
	}
	switch r.hint {
	case HintBlock, HintAlways, HintOff:
	default:
		r.hint = HintBlock
	}
	if r.previewLines <= 0 {
		r.previewLines = DefaultPreviewLines
	}
	r.theme = newTheme(r.out, cfg.Color)
	return r
}

// Run executes inv, prints according to the resolved mode, and returns the
// command's exit code.
func (r *Runner) Run(ctx context.Context, inv executor.Invocation, opts Options) int {
	prof := newProfiler(r.logger)
	defer prof.write()

	mode := ResolveMode(opts)
	profileName := opts.Profile
	if profileName == "" {
		profileName = profile.Default
	}
	r.logger.Debug("mode resolved", "mode", mode, "profile", profileName, "command", inv.String())

	start := time.Now()
	stop := r.startSpinner(mode, inv)
	res := r.exec.Execute(ctx, inv, mode == ModeRaw)
	stop()
	prof.endStage("execute", start)

	start = time.Now()
	logPath := r.writeLog(ctx, inv, res)
	prof.endStage("log", start)

	pctx := &plugin.Context{
		Command:  inv.Command,
		Args:     inv.Args,
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
		ExitCode: res.ExitCode,
		Profile:  profileName,
		LogPath:  logPath,
	}
	p := r.registry.Lookup(pctx)
	pluginName := ""
	if p != nil {
		pluginName = p.Name()
	}
	r.logger.Debug("plugin selected", "plugin", pluginName)

	r.recordHistory(ctx, inv, res, mode, profileName, pluginName, logPath)

	switch mode {
	case ModeRaw:
		return res.ExitCode
	case ModeFull:
		_, _ = io.WriteString(r.out, res.Stdout)
		_, _ = io.WriteString(r.err, res.Stderr)
		return res.ExitCode
	}

	start = time.Now()
	summary := r.summarize(p, pctx)
	if !profile.Known(profileName) {
		r.logger.Debug("unknown profile, summary left unchanged", "profile", profileName)
	}
	summary = profile.Apply(pctx, summary)
	pluginBlock := summary.Block != ""
	summary = EnsureBlock(summary, pctx, r.hint == HintBlock)
	prof.endStage("summarize", start)

	r.printSummary(r.out, summary, showExtras(profileName, pluginBlock, r.hint))
	if mode == ModeDetails {
		r.printPreview(r.out, res.Stdout, res.Stderr)
	}
	if mode == ModeCalm && r.hint == HintAlways {
		if hint := MutedHint(pctx); hint != "" {
			r.println(r.out, hint)
		}
	}
	return res.ExitCode
}

// summarize asks p for a summary. A missing plugin, a nil summary, or a
// panicking plugin all yield an empty summary.
func (r *Runner) summarize(p plugin.Plugin, pctx *plugin.Context) (s *plugin.Summary) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("plugin panicked", "plugin", p.Name(), "panic", rec)
			s = &plugin.Summary{}
		}
	}()
	if p != nil {
		s = p.Summarize(pctx)
	}
	if s == nil {
		s = &plugin.Summary{}
	}
	return s
}

func (r *Runner) startSpinner(mode Mode, inv executor.Invocation) func() {
	if !r.spinner || mode == ModeRaw || !IsTerminal(r.err) {
		return func() {}
	}
	return startSpinner(r.err, "Running "+inv.String())
}

// writeLog persists the run. Failures are logged and yield an empty path.
func (r *Runner) writeLog(ctx context.Context, inv executor.Invocation, res executor.Result) string {
	if r.logs == nil {
		return ""
	}
	path, err := r.logs.WriteLog(ctx, logstore.Record{
		Command:     inv.Command,
		Args:        inv.Args,
		CommandLine: cmdline.Join(inv.Command, inv.Args...),
		ExitCode:    res.ExitCode,
		StartedAt:   res.Started,
		DurationMS:  res.Duration.Milliseconds(),
		Stdout:      res.Stdout,
		Stderr:      res.Stderr,
	})
	if err != nil {
		r.logger.Warn("could not write log", "err", err)
		if path == "" {
			return ""
		}
	}
	r.logger.Debug("log written", "path", path)
	return path
}

func (r *Runner) recordHistory(ctx context.Context, inv executor.Invocation, res executor.Result, mode Mode, profileName, pluginName, logPath string) {
	if r.history == nil {
		return
	}
	err := r.history.Record(ctx, history.Entry{
		Timestamp:   res.Started,
		Command:     inv.Command,
		CommandLine: cmdline.Join(inv.Command, inv.Args...),
		Mode:        string(mode),
		Profile:     profileName,
		Plugin:      pluginName,
		ExitCode:    res.ExitCode,
		Duration:    res.Duration,
		LogPath:     logPath,
	})
	if err != nil {
		r.logger.Warn("could not record history", "err", err)
	}
}
