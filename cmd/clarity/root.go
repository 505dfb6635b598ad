package main

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dkoosis/clarity/clarity"
	"github.com/dkoosis/clarity/internal/config"
	"github.com/dkoosis/clarity/internal/executor"
	"github.com/dkoosis/clarity/internal/history"
	"github.com/dkoosis/clarity/internal/logging"
	"github.com/dkoosis/clarity/internal/logstore"
	"github.com/dkoosis/clarity/pkg/plugin"
	"github.com/dkoosis/clarity/pkg/profile"
)

var errNoCommand = errors.New("no command given (usage: clarity [flags] <command> [args...])")

// app holds the streams, global flags, and the exit code of the wrapped
// command for one CLI invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	raw        bool
	full       bool
	details    bool
	profile    string
	debug      bool
	noColor    bool
	configPath string

	code int
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "clarity [flags] <command> [args...]",
		Short: "Run a command and summarize its output",
		Long: `clarity runs one command, captures its output, and prints a short summary
in its place. Recognized tools (npm, pnpm, yarn, bun, git, docker) get a
tailored summary; anything else gets a generic one.

Every run is saved to the log directory. Use --details for a preview of the
captured output, --full to print all of it, or --raw to stream it live.

Flags must come before the command. Anything after the command name belongs
to the command: "clarity npm install --details" passes --details to npm,
while "clarity --details npm install" asks clarity for the preview. Use -- to
wrap a command that has the same name as a clarity subcommand.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runWrapped,
	}
	root.Flags().SetInterspersed(false)

	root.Flags().BoolVar(&a.raw, "raw", false, "stream the command's output live and skip the summary")
	root.Flags().BoolVar(&a.full, "full", false, "print the captured output in full instead of a summary")
	root.Flags().BoolVar(&a.details, "details", false, "print the summary followed by a truncated preview")
	root.Flags().StringVar(&a.profile, "profile", "", "summary profile: "+strings.Join(profile.Names(), ", "))

	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "log pipeline diagnostics to stderr")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable styled output")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: nearest .clarity.yaml, then the user config dir)")

	root.AddCommand(newLogsCmd(a))
	root.AddCommand(newHistoryCmd(a))
	root.AddCommand(newPluginsCmd(a))
	return root
}

func (a *app) runWrapped(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		_ = cmd.Usage()
		return errNoCommand
	}

	cfg, logger, err := a.setup(cmd)
	if err != nil {
		return err
	}

	hist := a.openHistory(cfg, logger)
	defer func() { _ = hist.Close() }()

	runner := clarity.NewRunner(clarity.Config{
		Out:          a.stdout,
		Err:          a.stderr,
		Registry:     plugin.Default().Without(cfg.DisabledPlugins...),
		Logs:         logstore.New(cfg.LogDir, cfg.LogRetention),
		History:      hist,
		Logger:       logger,
		Hint:         cfg.Hint,
		PreviewLines: cfg.PreviewLines,
		Color:        !cfg.NoColor && clarity.IsTerminal(a.stdout),
		Spinner:      !cfg.Debug,
		Width:        clarity.TerminalWidth(a.stdout),
	})

	a.code = runner.Run(cmd.Context(), executor.Invocation{Command: args[0], Args: args[1:]}, clarity.Options{
		Raw:     a.raw,
		Full:    a.full,
		Details: a.details,
		Profile: cfg.Profile,
	})
	return nil
}

// setup resolves the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	cfg, err := config.Resolve(config.Flags{
		Profile:    a.profile,
		Debug:      a.debug,
		NoColor:    a.noColor,
		ConfigPath: a.configPath,
		ProfileSet: flagChanged(cmd, "profile"),
		DebugSet:   flagChanged(cmd, "debug"),
		NoColorSet: flagChanged(cmd, "no-color"),
	})
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New(a.stderr, cfg.Debug)
	logger.Debug("configuration resolved", "config", cfg.String())
	return cfg, logger, nil
}

// openHistory opens the history database. Failures are logged and yield a
// disabled store; history never stops a run.
func (a *app) openHistory(cfg *config.Config, logger *log.Logger) *history.Store {
	path := ""
	if cfg.History {
		path = cfg.HistoryPath
	}
	store, err := history.Open(path)
	if err != nil {
		logger.Warn("history disabled", "err", err)
		store, _ = history.Open("")
	}
	return store
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}
