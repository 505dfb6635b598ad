package main

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/clarity/pkg/plugin"
)

func newPluginsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List summarizer plugins in dispatch order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := a.setup(cmd)
			if err != nil {
				return err
			}

			title := cases.Title(language.English)
			var rows [][]string
			for i, p := range plugin.Default().Plugins() {
				status := "enabled"
				if slices.Contains(cfg.DisabledPlugins, p.Name()) {
					status = "disabled"
				}
				rows = append(rows, []string{strconv.Itoa(i + 1), title.String(p.Name()), p.Name(), status})
			}
			_, _ = fmt.Fprintln(a.stdout, renderTable(
				[]string{"#", "Plugin", "Command", "Status"},
				rows,
				[]columnAlignment{alignRight},
			))
			return nil
		},
	}
}
