package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_LevelFollowsDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	quiet := New(&buf, false)
	quiet.Debug("hidden detail")
	quiet.Warn("log write failed", "err", "disk full")

	out := buf.String()
	assert.NotContains(t, out, "hidden detail")
	assert.Contains(t, out, "log write failed")
	assert.Contains(t, out, "clarity")

	buf.Reset()
	loud := New(&buf, true)
	loud.Debug("mode resolved", "mode", "calm")
	assert.Contains(t, buf.String(), "mode resolved")
	assert.Contains(t, buf.String(), "mode=calm")
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { Discard().Error("dropped") })
}
