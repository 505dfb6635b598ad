// Package plugin turns the captured output of a wrapped command into a
// structured Summary.
//
// A Plugin is selected by command identity: the Registry walks its plugins in
// registration order and the first whose Supports reports true summarizes the
// run. Plugins are total functions over arbitrary text; a heuristic that does
// not match simply leaves its facet empty.
package plugin

// Context is the read-only view of one finished run handed to plugins and
// profile overlays.
type Context struct {
	Command  string
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Profile  string
	LogPath  string
}

// Succeeded reports whether the wrapped command exited with status 0.
func (c *Context) Succeeded() bool {
	return c.ExitCode == 0
}

// Subcommand returns the first argument, which for most tools names the
// action being run ("install", "push", "build").
func (c *Context) Subcommand() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// Summary describes the outcome of a run. Every field is optional; an empty
// value means there is nothing to report for that facet. A non-empty Block is
// pre-rendered and takes precedence over the other fields for display.
type Summary struct {
	Block     string
	Result    string
	Warnings  []string
	Error     string
	NextSteps []string
}

// IsEmpty reports whether the summary carries no facet at all.
func (s *Summary) IsEmpty() bool {
	return s == nil || (s.Block == "" && s.Result == "" && s.Error == "" &&
		len(s.Warnings) == 0 && len(s.NextSteps) == 0)
}

// Plugin summarizes the output of one command.
type Plugin interface {
	// Name identifies the plugin in logs and listings. It plays no part in
	// dispatch.
	Name() string

	// Supports must be a pure function of the context.
	Supports(ctx *Context) bool

	// Summarize must not panic; missing patterns leave facets empty.
	Summarize(ctx *Context) *Summary
}

// command implements Name and Supports for plugins keyed on an exact,
// case-sensitive command name.
type command struct {
	name string
}

func (c command) Name() string {
	return c.name
}

func (c command) Supports(ctx *Context) bool {
	return ctx != nil && ctx.Command == c.name
}
