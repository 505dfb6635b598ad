// Package profile adjusts a plugin summary to a named verbosity tier before
// it is displayed.
package profile

import (
	"slices"
	"sort"

	"github.com/dkoosis/clarity/pkg/block"
	"github.com/dkoosis/clarity/pkg/plugin"
)

// Built-in profile names.
const (
	Calm    = "calm"
	Verbose = "verbose"
	Minimal = "minimal"
)

// Default is the profile used when none is configured.
const Default = Calm

// Overlay rewrites a summary for one profile. It may mutate and return s.
type Overlay func(ctx *plugin.Context, s *plugin.Summary) *plugin.Summary

var overlays = map[string]Overlay{
	Calm:    identity,
	Verbose: identity,
	Minimal: minimal,
}

// Apply runs the overlay named by ctx.Profile. An empty name selects Default;
// an unknown name returns s unchanged. Callers must use the returned value.
func Apply(ctx *plugin.Context, s *plugin.Summary) *plugin.Summary {
	if s == nil {
		return nil
	}
	name := Default
	if ctx != nil && ctx.Profile != "" {
		name = ctx.Profile
	}
	overlay, ok := overlays[name]
	if !ok {
		return s
	}
	return overlay(ctx, s)
}

// Known reports whether name is a built-in profile.
func Known(name string) bool {
	_, ok := overlays[name]
	return ok
}

// Names lists the built-in profiles in sorted order.
func Names() []string {
	names := make([]string, 0, len(overlays))
	for name := range overlays {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func identity(_ *plugin.Context, s *plugin.Summary) *plugin.Summary {
	return s
}

// minimal keeps the headline of a rendered block, drops warnings, and keeps
// next steps only alongside an error.
func minimal(_ *plugin.Context, s *plugin.Summary) *plugin.Summary {
	out := *s
	if out.Block != "" {
		out.Block = block.Headline(out.Block)
	}
	out.Warnings = nil
	if out.Error == "" {
		out.NextSteps = nil
	} else {
		out.NextSteps = slices.Clone(s.NextSteps)
	}
	return &out
}
