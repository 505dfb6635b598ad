package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlugin struct {
	command
	summary *Summary
}

func (p *stubPlugin) Summarize(*Context) *Summary {
	return p.summary
}

func TestRegistry_FirstMatchWins(t *testing.T) {
	t.Parallel()

	first := &stubPlugin{command: command{name: "npm"}, summary: &Summary{Result: "first"}}
	second := &stubPlugin{command: command{name: "npm"}, summary: &Summary{Result: "second"}}
	r := NewRegistry(first, second)

	got := r.Summarize(&Context{Command: "npm"})
	require.NotNil(t, got)
	assert.Equal(t, "first", got.Result)
	assert.Same(t, first, r.Lookup(&Context{Command: "npm"}))
}

func TestRegistry_NoMatchReturnsNil(t *testing.T) {
	t.Parallel()

	r := Default()
	assert.Nil(t, r.Lookup(&Context{Command: "foo", Args: []string{"bar"}}))
	assert.Nil(t, r.Summarize(&Context{Command: "foo"}))
	assert.Nil(t, r.Summarize(nil))

	var empty *Registry
	assert.Nil(t, empty.Summarize(&Context{Command: "npm"}))
}

func TestRegistry_CommandMatchIsExact(t *testing.T) {
	t.Parallel()

	r := Default()
	for _, cmd := range []string{"NPM", "npm ", "npx", "/usr/bin/npm"} {
		assert.Nil(t, r.Lookup(&Context{Command: cmd}), cmd)
	}
}

func TestDefault_Order(t *testing.T) {
	t.Parallel()

	var names []string
	for _, p := range Default().Plugins() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"npm", "pnpm", "yarn", "bun", "git", "docker"}, names)
}

func TestRegistry_Without(t *testing.T) {
	t.Parallel()

	base := Default()
	r := base.Without("git", "docker", "unknown")

	assert.Len(t, r.Plugins(), 4)
	assert.Nil(t, r.Lookup(&Context{Command: "git"}))
	assert.NotNil(t, r.Lookup(&Context{Command: "npm"}))
	assert.Len(t, base.Plugins(), 6, "original registry is untouched")
}

func TestRegistry_RegisterIgnoresNil(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(nil)
	assert.Empty(t, r.Plugins())
}

func TestContext_SucceededDrivesMatchers(t *testing.T) {
	t.Parallel()

	ok := &Context{Command: "git"}
	bad := &Context{Command: "git", ExitCode: 1}

	assert.True(t, ok.Succeeded())
	assert.False(t, bad.Succeeded())
	assert.True(t, succeeded(ok))
	assert.False(t, failed(ok))
	assert.True(t, failed(bad))
}
