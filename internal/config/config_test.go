package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/clarity/clarity"
)

// isolate points HOME and XDG_CONFIG_HOME at fresh directories and clears
// the clarity environment variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, key := range []string{"CLARITY_PROFILE", "CLARITY_DEBUG", "CLARITY_LOG_DIR", "CLARITY_CONFIG", "NO_COLOR"} {
		t.Setenv(key, "")
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolve_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := ResolveIn(t.TempDir(), Flags{})
	require.NoError(t, err)

	assert.Equal(t, "calm", cfg.Profile)
	assert.Equal(t, "default", cfg.ProfileSource)
	assert.Equal(t, clarity.HintBlock, cfg.Hint)
	assert.Equal(t, 6, cfg.PreviewLines)
	assert.Equal(t, filepath.Join(home, ".clarity", "logs"), cfg.LogDir)
	assert.Equal(t, 50, cfg.LogRetention)
	assert.True(t, cfg.History)
	assert.Equal(t, filepath.Join(home, ".clarity", "history.db"), cfg.HistoryPath)
	assert.False(t, cfg.NoColor)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.Path)
}

func TestResolve_YAMLFileInParentDirectory(t *testing.T) {
	home := isolate(t)

	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".clarity.yaml"), `
profile: verbose
hint: always
preview_lines: 3
log_dir: ~/custom-logs
log_retention: 0
history: false
disabled_plugins: [docker]
`)
	nested := filepath.Join(project, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := ResolveIn(nested, Flags{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(project, ".clarity.yaml"), cfg.Path)
	assert.Equal(t, "verbose", cfg.Profile)
	assert.Equal(t, "file", cfg.ProfileSource)
	assert.Equal(t, clarity.HintAlways, cfg.Hint)
	assert.Equal(t, 3, cfg.PreviewLines)
	assert.Equal(t, filepath.Join(home, "custom-logs"), cfg.LogDir)
	assert.Equal(t, 0, cfg.LogRetention, "explicit zero disables pruning")
	assert.False(t, cfg.History)
	assert.Equal(t, []string{"docker"}, cfg.DisabledPlugins)
}

func TestResolve_TOMLFile(t *testing.T) {
	isolate(t)

	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".clarity.toml"), `
profile = "minimal"
preview_lines = 10
no_color = true
disabled_plugins = ["git", "bun"]
`)

	cfg, err := ResolveIn(project, Flags{})
	require.NoError(t, err)
	assert.Equal(t, "minimal", cfg.Profile)
	assert.Equal(t, 10, cfg.PreviewLines)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, []string{"git", "bun"}, cfg.DisabledPlugins)
}

func TestResolve_UserConfigFallback(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".config", "clarity", "config.yaml"), "profile: verbose\n")

	cfg, err := ResolveIn(t.TempDir(), Flags{})
	require.NoError(t, err)
	assert.Equal(t, "verbose", cfg.Profile)
	assert.Equal(t, filepath.Join(home, ".config", "clarity", "config.yaml"), cfg.Path)
}

func TestResolve_PriorityOrder(t *testing.T) {
	tests := []struct {
		name       string
		flags      Flags
		env        map[string]string
		wantProf   string
		wantSource string
		wantDebug  bool
		wantColor  bool
	}{
		{name: "file", wantProf: "verbose", wantSource: "file", wantDebug: true},
		{
			name:       "env over file",
			env:        map[string]string{"CLARITY_PROFILE": "minimal", "CLARITY_DEBUG": "false", "NO_COLOR": "1"},
			wantProf:   "minimal",
			wantSource: "env",
			wantColor:  true,
		},
		{
			name:       "cli over env",
			flags:      Flags{Profile: "calm", ProfileSet: true, Debug: true, DebugSet: true, NoColor: false, NoColorSet: true},
			env:        map[string]string{"CLARITY_PROFILE": "minimal", "CLARITY_DEBUG": "false", "NO_COLOR": "1"},
			wantProf:   "calm",
			wantSource: "cli",
			wantDebug:  true,
		},
		{
			name:       "unparseable env bool ignored",
			env:        map[string]string{"CLARITY_DEBUG": "maybe"},
			wantProf:   "verbose",
			wantSource: "file",
			wantDebug:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			project := t.TempDir()
			writeFile(t, filepath.Join(project, ".clarity.yml"), "profile: verbose\ndebug: true\n")

			cfg, err := ResolveIn(project, tt.flags)
			require.NoError(t, err)
			assert.Equal(t, tt.wantProf, cfg.Profile)
			assert.Equal(t, tt.wantSource, cfg.ProfileSource)
			assert.Equal(t, tt.wantDebug, cfg.Debug)
			assert.Equal(t, tt.wantColor, cfg.NoColor)
		})
	}
}

func TestResolve_ExplicitConfigPathAndLogDirEnv(t *testing.T) {
	isolate(t)

	explicit := filepath.Join(t.TempDir(), "elsewhere.yaml")
	writeFile(t, explicit, "log_dir: /from/file\n")
	t.Setenv("CLARITY_LOG_DIR", "/from/env")

	cfg, err := ResolveIn(t.TempDir(), Flags{ConfigPath: explicit})
	require.NoError(t, err)
	assert.Equal(t, explicit, cfg.Path)
	assert.Equal(t, "/from/env", cfg.LogDir)
	assert.Equal(t, "env", cfg.LogDirSource)

	t.Setenv("CLARITY_CONFIG", explicit)
	t.Setenv("CLARITY_LOG_DIR", "")
	cfg, err = ResolveIn(t.TempDir(), Flags{})
	require.NoError(t, err)
	assert.Equal(t, "/from/file", cfg.LogDir)
	assert.Equal(t, "file", cfg.LogDirSource)
}

func TestResolve_InvalidValuesFallBackToDefaults(t *testing.T) {
	isolate(t)

	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".clarity.yaml"), "profile: '  '\nhint: loud\npreview_lines: -2\nlog_retention: -1\n")

	cfg, err := ResolveIn(project, Flags{})
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile, cfg.Profile)
	assert.Equal(t, DefaultHint, cfg.Hint)
	assert.Equal(t, DefaultPreviewLines, cfg.PreviewLines)
	assert.Equal(t, DefaultLogRetention, cfg.LogRetention)
}

func TestResolve_MalformedFile(t *testing.T) {
	isolate(t)

	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".clarity.yaml"), "profile: [unterminated\n")

	_, err := ResolveIn(project, Flags{})
	assert.ErrorContains(t, err, "parse config")

	_, err = ResolveIn(project, Flags{ConfigPath: filepath.Join(project, "missing.yaml")})
	assert.ErrorContains(t, err, "read config")
}

func TestExpandHome(t *testing.T) {
	home := isolate(t)

	assert.Equal(t, home, expandHome("~"))
	assert.Equal(t, filepath.Join(home, "x", "y"), expandHome("~/x/y"))
	assert.Equal(t, "/abs", expandHome("/abs"))
	assert.Equal(t, "~user/x", expandHome("~user/x"))
}
