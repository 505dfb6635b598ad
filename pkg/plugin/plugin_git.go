package plugin

import (
	"regexp"
	"strings"
)

var (
	gitConflictRe = regexp.MustCompile(`(?m)^CONFLICT \([^)]*\): .*?in (\S+)`)
	gitPushedRe   = regexp.MustCompile(`(?m)^\s*([0-9a-f]+\.\.[0-9a-f]+)\s+(\S+)\s+->\s+(\S+)`)
)

var gitFailures = []Rule{
	{
		Match:    all(failed, stderrHas("[rejected]", "non-fast-forward", "fetch first")),
		Text:     "Push rejected because the remote branch has commits you do not have locally.",
		NextStep: "Run git pull --rebase (or git fetch and merge), then push again.",
	},
	{
		Match:    all(failed, stderrHas("Authentication failed", "Permission denied (publickey)", "could not read Username")),
		Text:     "Authentication with the remote failed.",
		NextStep: "Check your credentials or SSH key and try again.",
	},
	{
		Match:    all(failed, stderrHas("not a git repository")),
		Text:     "The current directory is not a git repository.",
		NextStep: "Change into a repository or run git init.",
	},
	{
		Match:    all(failed, outputHas("Automatic merge failed", "CONFLICT (")),
		Text:     "Merge stopped because of conflicts.",
		Message:  gitConflictMessage,
		NextStep: "Resolve the conflicts, stage the files, and commit.",
	},
	{
		Match:    failed,
		Text:     "git command failed.",
		NextStep: "Run again with --full to review the full log.",
	},
}

// Git summarizes git runs, with attention to push and merge failures.
type Git struct {
	command
}

// NewGit creates the git plugin.
func NewGit() *Git {
	return &Git{command{name: "git"}}
}

// Summarize implements Plugin.
func (p *Git) Summarize(ctx *Context) *Summary {
	s := &Summary{}
	if classify(s, gitFailures, ctx) {
		return s
	}

	if ctx.Subcommand() == "push" {
		if m := gitPushedRe.FindStringSubmatch(ctx.Stdout + "\n" + ctx.Stderr); m != nil {
			s.Result = "Pushed " + m[2] + " to " + m[3] + " (" + m[1] + ")."
			return s
		}
		if containsFold(ctx.Stderr, "Everything up-to-date") {
			s.Result = "Everything up-to-date."
			return s
		}
	}
	return s
}

func gitConflictMessage(ctx *Context) string {
	matches := gitConflictRe.FindAllStringSubmatch(ctx.Stdout+"\n"+ctx.Stderr, -1)
	if len(matches) == 0 {
		return ""
	}
	files := make([]string, 0, len(matches))
	for _, m := range matches {
		files = append(files, m[1])
	}
	return "Merge stopped because of conflicts in " + strings.Join(files, ", ") + "."
}
