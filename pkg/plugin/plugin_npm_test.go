package plugin

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const npmInstallOutput = `npm WARN deprecated inflight@1.0.6: This module is not supported
added 2 packages, and audited 3 packages in 1s

1 package is looking for funding
  run ` + "`npm fund`" + ` for details

found 0 vulnerabilities
`

func TestNPM_InstallSuccess(t *testing.T) {
	t.Parallel()

	ctx := &Context{Command: "npm", Args: []string{"install"}, Stdout: npmInstallOutput}
	got := NewNPM().Summarize(ctx)
	require.NotNil(t, got)

	want := strings.Join([]string{
		"✔ Install complete",
		"→ audited 3 packages in 1s",
		"→ 0 vulnerabilities",
		"→ 1 package looking for funding",
		"→ 1 deprecated package",
		"",
		"Use --full for detailed logs.",
	}, "\n")
	if diff := cmp.Diff(want, got.Block); diff != "" {
		t.Errorf("block mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Dependencies installed or updated successfully.", got.Result)
	assert.Equal(t, []string{"1 packages are deprecated but still functional."}, got.Warnings)
	assert.Empty(t, got.Error)
	assert.Empty(t, got.NextSteps)
}

func TestNPM_UpToDate(t *testing.T) {
	t.Parallel()

	ctx := &Context{Command: "npm", Stdout: "\nUp to date, audited 120 packages in 800ms\n"}
	got := NewNPM().Summarize(ctx)

	assert.Equal(t, "✔ Already up to date\n→ audited 120 packages in 800ms\n\nUse --full for detailed logs.", got.Block)
	assert.Empty(t, got.Warnings)
}

func TestNPM_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ctx      Context
		wantErr  string
		wantNext string
	}{
		{
			name:     "eresolve",
			ctx:      Context{ExitCode: 1, Stderr: "npm ERR! code ERESOLVE\nnpm ERR! ERESOLVE unable to resolve dependency tree"},
			wantErr:  "Dependency conflict while installing packages (ERESOLVE).",
			wantNext: "Adjust dependency versions in package.json to resolve the conflict.",
		},
		{
			name:     "network",
			ctx:      Context{ExitCode: 1, Stderr: "npm ERR! network request to https://registry.npmjs.org failed"},
			wantErr:  "Network failure while downloading packages.",
			wantNext: "Check your internet connection and try again.",
		},
		{
			name:     "eresolve wins over network",
			ctx:      Context{ExitCode: 1, Stderr: "npm ERR! network flaky\nnpm ERR! code ERESOLVE"},
			wantErr:  "Dependency conflict while installing packages (ERESOLVE).",
			wantNext: "Adjust dependency versions in package.json to resolve the conflict.",
		},
		{
			name:     "generic non-zero exit",
			ctx:      Context{ExitCode: 2, Stderr: "something odd"},
			wantErr:  "npm command failed.",
			wantNext: "Run again with --full to review the full log.",
		},
		{
			name:     "added text with failing exit is not success",
			ctx:      Context{ExitCode: 1, Stdout: "added 1 package"},
			wantErr:  "npm command failed.",
			wantNext: "Run again with --full to review the full log.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := tt.ctx
			ctx.Command = "npm"
			got := NewNPM().Summarize(&ctx)

			assert.Empty(t, got.Block)
			assert.Empty(t, got.Result)
			assert.Equal(t, tt.wantErr, got.Error)
			assert.Equal(t, []string{tt.wantNext}, got.NextSteps)
		})
	}
}

func TestNPM_UnrecognizedSuccessIsEmpty(t *testing.T) {
	t.Parallel()

	got := NewNPM().Summarize(&Context{Command: "npm", Args: []string{"run", "lint"}, Stdout: "> lint\n> eslint ."})
	assert.True(t, got.IsEmpty())
}
