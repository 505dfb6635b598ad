package plugin

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dkoosis/clarity/pkg/block"
)

var (
	npmInstalledRe  = regexp.MustCompile(`(?i)added|up to date`)
	npmUpToDateRe   = regexp.MustCompile(`(?i)up to date`)
	npmAuditRe      = regexp.MustCompile(`(?i)audited[^\n.]*`)
	npmVulnRe       = regexp.MustCompile(`(?i)found\s+([^\n.]*vulnerabilit(?:y|ies)[^\n.]*)`)
	npmFundingRe    = regexp.MustCompile(`(?i)(\d+)\s+packages?\s+(?:are|is)\s+looking\s+for\s+funding`)
	npmDeprecatedRe = regexp.MustCompile(`(?i)deprecated`)
	npmLeadingAndRe = regexp.MustCompile(`(?i)^and\s+`)
)

var npmFailures = []Rule{
	{
		Match:    stderrHas("ERR! code ERESOLVE"),
		Text:     "Dependency conflict while installing packages (ERESOLVE).",
		NextStep: "Adjust dependency versions in package.json to resolve the conflict.",
	},
	{
		Match:    stderrHas("ERR! network"),
		Text:     "Network failure while downloading packages.",
		NextStep: "Check your internet connection and try again.",
	},
	{
		Match:    failed,
		Text:     "npm command failed.",
		NextStep: "Run again with --full to review the full log.",
	},
}

// NPM summarizes npm installs and failures.
type NPM struct {
	command
}

// NewNPM creates the npm plugin.
func NewNPM() *NPM {
	return &NPM{command{name: "npm"}}
}

// Summarize implements Plugin.
func (p *NPM) Summarize(ctx *Context) *Summary {
	s := &Summary{}
	deprecated := len(npmDeprecatedRe.FindAllStringIndex(ctx.Stdout+"\n"+ctx.Stderr, -1))

	if succeeded(ctx) && npmInstalledRe.MatchString(ctx.Stdout) {
		s.Block = npmInstallBlock(ctx.Stdout, deprecated)
		s.Result = "Dependencies installed or updated successfully."
	}
	if deprecated > 0 {
		s.Warnings = append(s.Warnings, strconv.Itoa(deprecated)+" packages are deprecated but still functional.")
	}

	classify(s, npmFailures, ctx)
	return s
}

func npmInstallBlock(stdout string, deprecated int) string {
	headline := "✔ Install complete"
	if npmUpToDateRe.MatchString(stdout) {
		headline = "✔ Already up to date"
	}

	items := []string{
		npmAudit(stdout),
		npmVulnerabilities(stdout),
		npmFunding(stdout),
	}
	if deprecated > 0 {
		items = append(items, pluralize(deprecated, "deprecated package", "deprecated packages"))
	}

	return block.Create(block.Spec{Headline: headline, Items: block.Bullets(items, block.DefaultMarker)})
}

func npmAudit(stdout string) string {
	m := npmAuditRe.FindString(stdout)
	m = npmLeadingAndRe.ReplaceAllString(m, "")
	m = strings.TrimPrefix(m, ",")
	return strings.TrimSpace(m)
}

func npmVulnerabilities(stdout string) string {
	m := npmVulnRe.FindStringSubmatch(stdout)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimSuffix(m[1], "."))
}

func npmFunding(stdout string) string {
	m := npmFundingRe.FindStringSubmatch(stdout)
	if m == nil {
		return ""
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return ""
	}
	return pluralize(n, "package", "packages") + " looking for funding"
}
