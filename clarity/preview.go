package clarity

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultPreviewLines is the number of head and tail lines shown per stream.
const DefaultPreviewLines = 6

// FormatPreview returns lines joined when there are at most 2*limit of
// them, and otherwise the first and last limit lines around a "..." line.
func FormatPreview(lines []string, limit int) string {
	if limit <= 0 {
		limit = DefaultPreviewLines
	}
	if len(lines) <= limit*2 {
		return strings.Join(lines, "\n")
	}
	out := make([]string, 0, limit*2+1)
	out = append(out, lines[:limit]...)
	out = append(out, "...")
	out = append(out, lines[len(lines)-limit:]...)
	return strings.Join(out, "\n")
}

// printPreview writes the details-mode preview of both streams.
func (r *Runner) printPreview(w io.Writer, stdout, stderr string) {
	stdoutLines := r.clamp(splitLines(stdout))
	stderrLines := r.clamp(splitLines(stderr))

	if len(stdoutLines) == 0 && len(stderrLines) == 0 {
		r.println(w, "")
		r.println(w, "No additional output was captured to preview.")
		r.println(w, "Use --full to inspect every line or --raw to stream it live next time.")
		return
	}

	r.println(w, "")
	r.println(w, "Captured output preview (truncated):")
	if len(stdoutLines) > 0 {
		r.println(w, "")
		r.println(w, "--- stdout ---")
		r.printBlock(w, FormatPreview(stdoutLines, r.previewLines))
	}
	if len(stderrLines) > 0 {
		r.println(w, "")
		r.println(w, "--- stderr ---")
		r.printBlock(w, FormatPreview(stderrLines, r.previewLines))
	}
	r.println(w, "")
	r.println(w, "Use --full for the entire log or --raw to stream the next run live.")
}

// clamp truncates lines wider than the terminal. A zero width disables it.
func (r *Runner) clamp(lines []string) []string {
	if r.width <= 0 {
		return lines
	}
	for i, l := range lines {
		if runewidth.StringWidth(l) > r.width {
			lines[i] = runewidth.Truncate(l, r.width, "…")
		}
	}
	return lines
}
