package clarity

import (
	"fmt"
	"io"
	"strings"

	"github.com/dkoosis/clarity/pkg/plugin"
	"github.com/dkoosis/clarity/pkg/profile"
)

// printSummary writes the block and, when extras is set, the individual
// facets below it.
func (r *Runner) printSummary(w io.Writer, s *plugin.Summary, extras bool) {
	if s.Block != "" {
		r.printBlock(w, s.Block)
	}
	if !extras {
		return
	}

	if s.Result != "" {
		r.println(w, "✔ Result: "+s.Result)
	}
	if len(s.Warnings) > 0 {
		r.println(w, "⚠ Warnings:")
		for _, warn := range s.Warnings {
			r.println(w, "- "+warn)
		}
	}
	if s.Error != "" {
		r.println(w, "❌ Error: "+s.Error)
	}
	if len(s.NextSteps) > 0 {
		r.println(w, "→ Next steps:")
		for _, step := range s.NextSteps {
			r.println(w, "- "+step)
		}
	}
}

// showExtras reports whether facets are printed under the block: always
// outside the calm profile or in the always-hint layout, and otherwise only
// when the plugin did not render a block of its own.
func showExtras(profileName string, pluginBlock bool, hint string) bool {
	if profileName == "" {
		profileName = profile.Default
	}
	return profileName != profile.Calm || !pluginBlock || hint == HintAlways
}

func (r *Runner) printBlock(w io.Writer, text string) {
	for _, line := range strings.Split(text, "\n") {
		r.println(w, line)
	}
}

func (r *Runner) println(w io.Writer, line string) {
	_, _ = fmt.Fprintln(w, r.theme.line(line))
}
