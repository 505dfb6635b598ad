package plugin

import (
	"regexp"
	"strconv"
	"strings"
)

// Rule classifies one failure (or success) shape of a command. Rules are
// evaluated in order and the first whose Match reports true wins.
type Rule struct {
	Match func(ctx *Context) bool

	// Text is the message reported when Match succeeds. Message, when set,
	// overrides Text for messages that depend on the captured output.
	Text    string
	Message func(ctx *Context) string

	// NextStep is an optional suggestion attached to failure rules.
	NextStep string
}

func (r Rule) text(ctx *Context) string {
	if r.Message != nil {
		if msg := r.Message(ctx); msg != "" {
			return msg
		}
	}
	return r.Text
}

// firstMatch returns the first rule in rules that matches ctx.
func firstMatch(rules []Rule, ctx *Context) (Rule, bool) {
	for _, r := range rules {
		if r.Match != nil && r.Match(ctx) {
			return r, true
		}
	}
	return Rule{}, false
}

// classify applies the failure rules to s. It reports whether one matched.
func classify(s *Summary, rules []Rule, ctx *Context) bool {
	r, ok := firstMatch(rules, ctx)
	if !ok {
		return false
	}
	s.Error = r.text(ctx)
	if r.NextStep != "" {
		s.NextSteps = append(s.NextSteps, r.NextStep)
	}
	return true
}

// Matchers shared by the built-in plugins.

func failed(ctx *Context) bool {
	return !ctx.Succeeded()
}

func succeeded(ctx *Context) bool {
	return ctx.Succeeded()
}

func containsFold(text, fragment string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(fragment))
}

// stderrHas matches when stderr contains any fragment, ignoring case.
func stderrHas(fragments ...string) func(*Context) bool {
	return func(ctx *Context) bool {
		for _, f := range fragments {
			if containsFold(ctx.Stderr, f) {
				return true
			}
		}
		return false
	}
}

// outputHas matches when either stream contains any fragment, ignoring case.
func outputHas(fragments ...string) func(*Context) bool {
	return func(ctx *Context) bool {
		for _, f := range fragments {
			if containsFold(ctx.Stdout, f) || containsFold(ctx.Stderr, f) {
				return true
			}
		}
		return false
	}
}

// outputMatches matches when either stream matches re.
func outputMatches(re *regexp.Regexp) func(*Context) bool {
	return func(ctx *Context) bool {
		return re.MatchString(ctx.Stdout) || re.MatchString(ctx.Stderr)
	}
}

func all(matchers ...func(*Context) bool) func(*Context) bool {
	return func(ctx *Context) bool {
		for _, m := range matchers {
			if !m(ctx) {
				return false
			}
		}
		return true
	}
}

// pluralize renders "1 package" or "3 packages".
func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}
