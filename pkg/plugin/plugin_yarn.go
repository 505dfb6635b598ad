package plugin

import (
	"regexp"
	"strings"
)

var yarnDoneRe = regexp.MustCompile(`(?m)^\s*(?:✨\s*)?Done in ([0-9.]+m?s)`)

var yarnFailures = []Rule{
	{
		Match:    all(failed, outputHas("YN0028", "lockfile would have been modified", "frozen-lockfile")),
		Text:     "The yarn lockfile needs to be updated.",
		NextStep: "Run yarn install locally and commit the updated yarn.lock.",
	},
	{
		Match:    all(failed, outputHas("ESOCKETTIMEDOUT", "ECONNREFUSED", "ENOTFOUND", "network connection")),
		Text:     "Network failure while downloading packages.",
		NextStep: "Check your internet connection and try again.",
	},
	{
		Match:    all(failed, outputHas("Command \"", "command not found")),
		Text:     "yarn could not find the requested script or binary.",
		NextStep: "Check the scripts section of package.json.",
	},
	{
		Match:    failed,
		Text:     "yarn command failed.",
		NextStep: "Run again with --full to review the full log.",
	},
}

// Yarn summarizes yarn runs. Many yarn scripts succeed without printing
// anything useful, so success is always reported.
type Yarn struct {
	command
}

// NewYarn creates the yarn plugin.
func NewYarn() *Yarn {
	return &Yarn{command{name: "yarn"}}
}

// Summarize implements Plugin.
func (p *Yarn) Summarize(ctx *Context) *Summary {
	s := &Summary{}
	if classify(s, yarnFailures, ctx) {
		return s
	}

	s.Result = "yarn command completed successfully."
	if m := yarnDoneRe.FindStringSubmatch(ctx.Stdout); m != nil {
		s.Result = "yarn command completed successfully in " + strings.TrimSpace(m[1]) + "."
	}
	if n := strings.Count(strings.ToLower(ctx.Stdout+ctx.Stderr), "warning "); n > 0 {
		s.Warnings = append(s.Warnings, pluralize(n, "warning", "warnings")+" reported by yarn.")
	}
	return s
}
