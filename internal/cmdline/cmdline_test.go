package cmdline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		command string
		args    []string
		want    string
	}{
		{name: "bare", command: "npm", args: []string{"install"}, want: "npm install"},
		{name: "no args", command: "ls", want: "ls"},
		{name: "space", command: "git", args: []string{"commit", "-m", "fix bug"}, want: "git commit -m 'fix bug'"},
		{name: "empty arg", command: "echo", args: []string{""}, want: "echo ''"},
		{name: "dollar", command: "echo", args: []string{"$HOME"}, want: "echo '$HOME'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Join(tt.command, tt.args...))
		})
	}
}

func TestQuote_Unrepresentable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"a\x00b"`, Quote("a\x00b"))
}
