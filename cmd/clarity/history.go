package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit   int
		command string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent runs recorded by clarity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := a.setup(cmd)
			if err != nil {
				return err
			}
			if !cfg.History {
				_, _ = fmt.Fprintln(a.stdout, "History is disabled (history: false in the config file).")
				return nil
			}
			store := a.openHistory(cfg, logger)
			defer func() { _ = store.Close() }()
			ctx := cmd.Context()

			if command != "" {
				rate, total, err := store.FailureRate(ctx, command)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(a.stdout, "%s: %s runs, %.0f%% failed\n", command, humanize.Comma(int64(total)), rate*100)
				return nil
			}

			entries, err := store.Recent(ctx, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(a.stdout, "No runs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				plugin := e.Plugin
				if plugin == "" {
					plugin = "-"
				}
				rows = append(rows, []string{
					humanize.Time(e.Timestamp),
					e.CommandLine,
					strconv.Itoa(e.ExitCode),
					e.Mode,
					plugin,
					e.Duration.Round(time.Millisecond).String(),
				})
			}
			_, _ = fmt.Fprintln(a.stdout, renderTable(
				[]string{"When", "Command", "Exit", "Mode", "Plugin", "Duration"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to list")
	cmd.Flags().StringVar(&command, "command", "", "print the failure rate of one command instead of the list")
	return cmd
}
