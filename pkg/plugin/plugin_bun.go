package plugin

import (
	"regexp"
	"strconv"
)

var bunInstalledRe = regexp.MustCompile(`(\d+)\s+packages?\s+installed`)

var bunFailures = []Rule{
	{
		Match:    all(failed, outputHas("lockfile had changes", "frozen lockfile")),
		Text:     "bun lockfile is out of date.",
		NextStep: "Run bun install locally and commit the updated lockfile.",
	},
	{
		Match:    failed,
		Text:     "bun command encountered an error.",
		NextStep: "Run again with --full to review the full log.",
	},
}

// Bun summarizes bun runs.
type Bun struct {
	command
}

// NewBun creates the bun plugin.
func NewBun() *Bun {
	return &Bun{command{name: "bun"}}
}

// Summarize implements Plugin.
func (p *Bun) Summarize(ctx *Context) *Summary {
	s := &Summary{}
	if classify(s, bunFailures, ctx) {
		return s
	}

	if m := bunInstalledRe.FindStringSubmatch(ctx.Stdout); m != nil {
		n, _ := strconv.Atoi(m[1])
		s.Result = pluralize(n, "package", "packages") + " installed."
		return s
	}
	s.Result = "bun command completed successfully."
	return s
}
