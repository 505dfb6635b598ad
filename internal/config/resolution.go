package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dkoosis/clarity/clarity"
)

// Flags holds the values of command-line flags.
type Flags struct {
	Profile    string
	Debug      bool
	NoColor    bool
	ConfigPath string

	// Flags to track if they were explicitly set by the user
	ProfileSet bool
	DebugSet   bool
	NoColorSet bool
}

// Resolve loads the configuration for the current working directory and
// applies environment variables and flags on top of it.
func Resolve(flags Flags) (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return ResolveIn(wd, flags)
}

// ResolveIn is Resolve with an explicit starting directory for discovery.
// It returns an error only when a config file exists but cannot be parsed.
func ResolveIn(dir string, flags Flags) (*Config, error) {
	cfg := Default()

	path := flags.ConfigPath
	if path == "" {
		path = os.Getenv("CLARITY_CONFIG")
	}
	if path == "" {
		path = Discover(dir)
	}
	if path != "" {
		fc, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		fc.applyTo(cfg)
		cfg.Path = path
	}

	// Resolve Profile with priority: CLI > ENV > file > default
	if flags.ProfileSet {
		cfg.Profile = flags.Profile
		cfg.ProfileSource = "cli"
	} else if env := strings.TrimSpace(os.Getenv("CLARITY_PROFILE")); env != "" {
		cfg.Profile = env
		cfg.ProfileSource = "env"
	}

	// Resolve Debug with priority: CLI > ENV > file > default
	if flags.DebugSet {
		cfg.Debug = flags.Debug
	} else if env := getEnvBool("CLARITY_DEBUG"); env != nil {
		cfg.Debug = *env
	}

	// Resolve NoColor with priority: CLI > ENV > file > default
	if flags.NoColorSet {
		cfg.NoColor = flags.NoColor
	} else if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}

	if env := strings.TrimSpace(os.Getenv("CLARITY_LOG_DIR")); env != "" {
		cfg.LogDir = expandHome(env)
		cfg.LogDirSource = "env"
	}

	normalize(cfg)
	return cfg, nil
}

// normalize resets invalid values to their defaults.
func normalize(cfg *Config) {
	cfg.Profile = strings.ToLower(strings.TrimSpace(cfg.Profile))
	if cfg.Profile == "" {
		cfg.Profile = DefaultProfile
	}
	switch cfg.Hint {
	case clarity.HintBlock, clarity.HintAlways, clarity.HintOff:
	default:
		cfg.Hint = DefaultHint
	}
	if cfg.PreviewLines <= 0 {
		cfg.PreviewLines = DefaultPreviewLines
	}
	if cfg.LogRetention < 0 {
		cfg.LogRetention = DefaultLogRetention
	}
}

// getEnvBool reads a boolean from environment variables, trying multiple keys.
// Returns nil if none are set, or a pointer to the boolean value.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}

// String renders the resolved configuration for debug logging.
func (c *Config) String() string {
	return fmt.Sprintf("profile=%s(%s) hint=%s preview=%d log_dir=%s(%s) retention=%d history=%t file=%q",
		c.Profile, c.ProfileSource, c.Hint, c.PreviewLines, c.LogDir, c.LogDirSource, c.LogRetention, c.History, c.Path)
}
