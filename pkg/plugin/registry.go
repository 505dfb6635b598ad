package plugin

import "slices"

// Registry holds plugins in dispatch order. The zero value contains no
// plugins; use Default for the built-in set.
type Registry struct {
	plugins []Plugin
}

// NewRegistry creates a registry holding plugins in the given order.
func NewRegistry(plugins ...Plugin) *Registry {
	r := &Registry{}
	for _, p := range plugins {
		r.Register(p)
	}
	return r
}

// Default returns a registry with the built-in plugins.
func Default() *Registry {
	return NewRegistry(
		NewNPM(),
		NewPNPM(),
		NewYarn(),
		NewBun(),
		NewGit(),
		NewDocker(),
	)
}

// Register appends p. Plugins registered earlier win over later ones.
func (r *Registry) Register(p Plugin) {
	if p == nil {
		return
	}
	r.plugins = append(r.plugins, p)
}

// Plugins returns the registered plugins in dispatch order.
func (r *Registry) Plugins() []Plugin {
	if r == nil {
		return nil
	}
	return slices.Clone(r.plugins)
}

// Lookup returns the first plugin that supports ctx, or nil.
func (r *Registry) Lookup(ctx *Context) Plugin {
	if r == nil || ctx == nil {
		return nil
	}
	for _, p := range r.plugins {
		if p.Supports(ctx) {
			return p
		}
	}
	return nil
}

// Summarize asks the first supporting plugin for a summary. It returns nil
// when no plugin matches, which is not an error.
func (r *Registry) Summarize(ctx *Context) *Summary {
	p := r.Lookup(ctx)
	if p == nil {
		return nil
	}
	return p.Summarize(ctx)
}

// Without returns a copy of the registry minus the named plugins.
func (r *Registry) Without(names ...string) *Registry {
	out := &Registry{}
	if r == nil {
		return out
	}
	for _, p := range r.plugins {
		if !slices.Contains(names, p.Name()) {
			out.plugins = append(out.plugins, p)
		}
	}
	return out
}
