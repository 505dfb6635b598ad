// Package block renders a structured summary (headline, items, footer) as a
// plain multi-line text block.
//
// Every summary that needs visual structure is built here so marker usage and
// spacing stay consistent across plugins and the runner.
package block

import "strings"

const (
	// DefaultMarker prefixes items that do not already carry a marker glyph.
	DefaultMarker = "→"

	// DefaultHeadline is used when a block is created without a headline.
	DefaultHeadline = "✔ Command completed successfully."

	// DefaultFooter is used when Spec.Footer is nil.
	DefaultFooter = "Use --full for detailed logs."
)

// markerGlyphs are the leading glyphs that mark an item as already normalized.
var markerGlyphs = []string{"✔", "❌", "→", "•", "-"}

// Spec describes a block before rendering.
type Spec struct {
	Headline string
	Items    []string

	// Footer is printed after a blank line. Nil selects DefaultFooter;
	// a pointer to "" omits the footer entirely.
	Footer *string
}

// Footer returns a footer value for Spec.Footer.
func Footer(text string) *string {
	return &text
}

// NormalizeItem trims text and prefixes it with marker unless it already
// starts with a recognized marker glyph. Blank input reports false.
func NormalizeItem(text, marker string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}
	if hasMarker(trimmed) || marker == "" {
		return trimmed, true
	}
	return marker + " " + trimmed, true
}

// Bullets normalizes every value with marker and drops blank ones.
func Bullets(values []string, marker string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if item, ok := NormalizeItem(v, marker); ok {
			out = append(out, item)
		}
	}
	return out
}

// Create renders spec: headline, one line per item, then a blank line and
// the footer when one is set. The result has no trailing newline.
func Create(spec Spec) string {
	headline := strings.TrimSpace(spec.Headline)
	if headline == "" {
		headline = DefaultHeadline
	}

	lines := []string{headline}
	lines = append(lines, Bullets(spec.Items, DefaultMarker)...)

	footer := DefaultFooter
	if spec.Footer != nil {
		footer = *spec.Footer
	}
	if footer != "" {
		lines = append(lines, "", footer)
	}
	return strings.Join(lines, "\n")
}

// Headline returns the first line of a rendered block.
func Headline(rendered string) string {
	first, _, _ := strings.Cut(rendered, "\n")
	return first
}

func hasMarker(s string) bool {
	for _, g := range markerGlyphs {
		if strings.HasPrefix(s, g) {
			return true
		}
	}
	return false
}
