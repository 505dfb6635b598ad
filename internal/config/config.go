package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/clarity/clarity"
)

// Defaults.
const (
	DefaultProfile      = "calm"
	DefaultHint         = clarity.HintBlock
	DefaultPreviewLines = 6
	DefaultLogRetention = 50
)

// configNames are searched for in the working directory and its parents.
var configNames = []string{".clarity.yaml", ".clarity.yml", ".clarity.toml"}

// Config is the resolved configuration.
type Config struct {
	Profile         string
	Hint            string
	PreviewLines    int
	LogDir          string
	LogRetention    int
	History         bool
	HistoryPath     string
	DisabledPlugins []string
	NoColor         bool
	Debug           bool

	// Path is the config file that was loaded, or "" when none was found.
	Path string

	// Resolution metadata (for debugging)
	ProfileSource string // "cli", "env", "file", "default"
	LogDirSource  string // "env", "file", "default"
}

// fileConfig mirrors the on-disk format. Pointer fields distinguish an
// explicit zero from an absent key.
type fileConfig struct {
	Profile         *string  `yaml:"profile" toml:"profile"`
	Hint            *string  `yaml:"hint" toml:"hint"`
	PreviewLines    *int     `yaml:"preview_lines" toml:"preview_lines"`
	LogDir          *string  `yaml:"log_dir" toml:"log_dir"`
	LogRetention    *int     `yaml:"log_retention" toml:"log_retention"`
	History         *bool    `yaml:"history" toml:"history"`
	HistoryPath     *string  `yaml:"history_path" toml:"history_path"`
	DisabledPlugins []string `yaml:"disabled_plugins" toml:"disabled_plugins"`
	NoColor         *bool    `yaml:"no_color" toml:"no_color"`
	Debug           *bool    `yaml:"debug" toml:"debug"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	home := homeDir()
	return &Config{
		Profile:       DefaultProfile,
		Hint:          DefaultHint,
		PreviewLines:  DefaultPreviewLines,
		LogDir:        filepath.Join(home, ".clarity", "logs"),
		LogRetention:  DefaultLogRetention,
		History:       true,
		HistoryPath:   filepath.Join(home, ".clarity", "history.db"),
		ProfileSource: "default",
		LogDirSource:  "default",
	}
}

// Discover returns the config file for dir: the nearest project file in dir
// or a parent, else the user config file, else "".
func Discover(dir string) string {
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	path := filepath.Join(configHome, "clarity", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// loadFile decodes path by extension. TOML is used for .toml, YAML otherwise.
func loadFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path) // #nosec G304 - config file path is controlled
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.NewDecoder(bytes.NewReader(data)).Decode(&fc); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		return &fc, nil
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &fc, nil
}

func (fc *fileConfig) applyTo(cfg *Config) {
	if fc.Profile != nil {
		cfg.Profile = *fc.Profile
		cfg.ProfileSource = "file"
	}
	if fc.Hint != nil {
		cfg.Hint = *fc.Hint
	}
	if fc.PreviewLines != nil {
		cfg.PreviewLines = *fc.PreviewLines
	}
	if fc.LogDir != nil {
		cfg.LogDir = expandHome(*fc.LogDir)
		cfg.LogDirSource = "file"
	}
	if fc.LogRetention != nil {
		cfg.LogRetention = *fc.LogRetention
	}
	if fc.History != nil {
		cfg.History = *fc.History
	}
	if fc.HistoryPath != nil {
		cfg.HistoryPath = expandHome(*fc.HistoryPath)
	}
	if fc.DisabledPlugins != nil {
		cfg.DisabledPlugins = fc.DisabledPlugins
	}
	if fc.NoColor != nil {
		cfg.NoColor = *fc.NoColor
	}
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return os.TempDir()
	}
	return home
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if path == "~" {
		return homeDir()
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(homeDir(), rest)
	}
	return path
}
