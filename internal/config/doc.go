// Package config handles configuration loading and merging for clarity.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--profile, --debug, --no-color, --config)
//  2. Environment variables (CLARITY_PROFILE, CLARITY_DEBUG, CLARITY_LOG_DIR, NO_COLOR)
//  3. Config file (.clarity.yaml, .clarity.yml or .clarity.toml in the working
//     directory or any parent, else $XDG_CONFIG_HOME/clarity/config.yaml)
//  4. Hardcoded defaults
//
// # Environment Variables
//
//   - CLARITY_PROFILE: profile name (calm, verbose, minimal)
//   - CLARITY_DEBUG: "true" or "1" enables debug logging
//   - CLARITY_LOG_DIR: directory for captured run logs
//   - CLARITY_CONFIG: explicit config file path
//   - NO_COLOR: any non-empty value disables styling
package config
