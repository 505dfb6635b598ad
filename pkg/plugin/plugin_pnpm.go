package plugin

import (
	"regexp"
	"strconv"

	"github.com/dkoosis/clarity/pkg/block"
)

var pnpmPackagesRe = regexp.MustCompile(`(?i)Packages:\s*\+(\d+)`)

var pnpmFailures = []Rule{
	{
		Match:    all(failed, outputHas("ERR_PNPM_PEER_DEP_ISSUES", "ERESOLVE", "conflict")),
		Text:     "pnpm encountered conflicts while resolving dependencies.",
		NextStep: "Run again with --full to see which packages conflict.",
	},
	{
		Match:    all(failed, outputHas("ERR_PNPM_OUTDATED_LOCKFILE", "frozen-lockfile")),
		Text:     "The pnpm lockfile is out of date with package.json.",
		NextStep: "Run pnpm install without --frozen-lockfile and commit the updated lockfile.",
	},
	{
		Match:    all(failed, outputHas("ERR_PNPM_FETCH", "ECONNREFUSED", "ETIMEDOUT", "ENOTFOUND")),
		Text:     "Network failure while downloading packages.",
		NextStep: "Check your internet connection and registry settings, then try again.",
	},
	{
		Match:    failed,
		Text:     "pnpm command failed.",
		NextStep: "Run again with --full to review the full log.",
	},
}

// PNPM summarizes pnpm runs.
type PNPM struct {
	command
}

// NewPNPM creates the pnpm plugin.
func NewPNPM() *PNPM {
	return &PNPM{command{name: "pnpm"}}
}

// Summarize implements Plugin.
func (p *PNPM) Summarize(ctx *Context) *Summary {
	s := &Summary{}
	if classify(s, pnpmFailures, ctx) {
		return s
	}

	if m := pnpmPackagesRe.FindStringSubmatch(ctx.Stdout); m != nil {
		n, _ := strconv.Atoi(m[1])
		s.Block = block.Create(block.Spec{
			Headline: "✔ Install complete",
			Items:    []string{pluralize(n, "package added", "packages added")},
		})
	}
	s.Result = "pnpm command completed successfully."
	return s
}
