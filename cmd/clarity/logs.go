package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/dkoosis/clarity/internal/logstore"
)

func newLogsCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "List stored run logs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := a.setup(cmd)
			if err != nil {
				return err
			}
			store := logstore.New(cfg.LogDir, cfg.LogRetention)
			entries, err := store.List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintf(a.stdout, "No logs in %s.\n", store.Dir())
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.Name, humanize.Bytes(uint64(max(e.Size, 0))), humanize.Time(e.ModTime)})
			}
			_, _ = fmt.Fprintln(a.stdout, renderTable(
				[]string{"Log", "Size", "Written"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			_, _ = fmt.Fprintf(a.stdout, "Logs are stored in %s.\n", store.Dir())
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of logs to list (0 lists all)")
	cmd.AddCommand(newLogsShowCmd(a))
	cmd.AddCommand(newLogsPruneCmd(a))
	return cmd
}

func newLogsShowCmd(a *app) *cobra.Command {
	var last bool
	cmd := &cobra.Command{
		Use:   "show [--last | <log>]",
		Short: "Replay the captured output of a stored log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if last && len(args) > 0 {
				return errors.New("pass either --last or a log name, not both")
			}
			cfg, _, err := a.setup(cmd)
			if err != nil {
				return err
			}
			store := logstore.New(cfg.LogDir, cfg.LogRetention)

			var path string
			if len(args) == 0 {
				latest, err := store.Latest()
				if err != nil {
					return err
				}
				path = latest.Path
			} else {
				path = resolveLogPath(store.Dir(), args[0])
			}

			rec, err := logstore.Read(path)
			if err != nil {
				return err
			}
			a.replay(rec)
			return nil
		},
	}
	cmd.Flags().BoolVar(&last, "last", false, "show the most recent log (the default when no log is named)")
	return cmd
}

func newLogsPruneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove logs beyond the configured retention",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := a.setup(cmd)
			if err != nil {
				return err
			}
			store := logstore.New(cfg.LogDir, cfg.LogRetention)
			removed, err := store.Prune()
			if err != nil {
				return err
			}
			if cfg.LogRetention <= 0 {
				_, _ = fmt.Fprintln(a.stdout, "Log retention is unlimited; nothing to prune.")
				return nil
			}
			_, _ = fmt.Fprintf(a.stdout, "Removed %s from %s (keeping the newest %d).\n",
				english.Plural(removed, "log", "logs"), store.Dir(), cfg.LogRetention)
			return nil
		},
	}
}

// resolveLogPath accepts a path or a file name inside the log directory.
func resolveLogPath(dir, name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return filepath.Join(dir, name)
}

// replay prints a stored run the way --full would have.
func (a *app) replay(rec *logstore.Record) {
	_, _ = fmt.Fprintf(a.stdout, "$ %s\n", rec.CommandLine)
	_, _ = fmt.Fprint(a.stdout, rec.Stdout)
	_, _ = fmt.Fprint(a.stderr, rec.Stderr)

	duration := time.Duration(rec.DurationMS) * time.Millisecond
	_, _ = fmt.Fprintf(a.stdout, "[exit %d after %s, %s]\n", rec.ExitCode, duration, humanize.Time(rec.StartedAt))
}
