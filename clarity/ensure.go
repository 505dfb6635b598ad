package clarity

import (
	"fmt"
	"strings"

	"github.com/dkoosis/clarity/pkg/block"
	"github.com/dkoosis/clarity/pkg/plugin"
)

const (
	fallbackSuccess = "✔ Command completed successfully"
	fallbackFailure = "❌ Command failed"
	footerSuccess   = "Use --full for detailed logs."
	footerFailure   = "Use --full to inspect the full log."
)

// EnsureBlock returns s with a rendered Block. A summary that already has one
// is returned as is; otherwise a block is built from its facets with a
// headline derived from the error, the result, or the exit code. When
// withHint is set the muted-output hint is added as the last item.
func EnsureBlock(s *plugin.Summary, ctx *plugin.Context, withHint bool) *plugin.Summary {
	if s == nil {
		s = &plugin.Summary{}
	}
	if s.Block != "" {
		return s
	}

	var items []string
	items = append(items, block.Bullets(s.Warnings, "•")...)
	items = append(items, block.Bullets(s.NextSteps, "→")...)
	if withHint {
		if hint := MutedHint(ctx); hint != "" {
			items = append(items, hint)
		}
	}

	headline := fallbackSuccess
	footer := footerSuccess
	if ctx.ExitCode != 0 {
		headline = fallbackFailure
		footer = footerFailure
	}
	switch {
	case s.Error != "":
		headline = "❌ " + s.Error
	case s.Result != "":
		headline = "✔ " + s.Result
	}

	s.Block = block.Create(block.Spec{Headline: headline, Items: items, Footer: block.Footer(footer)})
	return s
}

// MutedHint describes the output clarity hid, or returns "" when nothing
// was captured.
func MutedHint(ctx *plugin.Context) string {
	stdoutLines := lineCount(ctx.Stdout)
	stderrLines := lineCount(ctx.Stderr)
	if stdoutLines == 0 && stderrLines == 0 {
		return ""
	}

	parts := []string{fmt.Sprintf("Muted output: %s / %s captured.",
		pluralize("stdout line", stdoutLines), pluralize("stderr line", stderrLines))}
	if flags := extractFlags(ctx.Args); len(flags) > 0 {
		parts = append(parts, "Flags captured: "+strings.Join(flags, " ")+".")
	}
	parts = append(parts, "Use --details for a quick preview.")
	return strings.Join(parts, " ")
}

// splitLines normalizes CRLF and drops trailing newlines before splitting.
func splitLines(output string) []string {
	normalized := strings.TrimRight(strings.ReplaceAll(output, "\r\n", "\n"), "\n")
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, "\n")
}

func lineCount(output string) int {
	return len(splitLines(output))
}

func pluralize(label string, n int) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, label)
	}
	return fmt.Sprintf("%d %ss", n, label)
}

func extractFlags(args []string) []string {
	var flags []string
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			flags = append(flags, a)
		}
	}
	return flags
}
