// Package config provides configuration management for the figlens CLI.
//
// This package extends the shared API and viewer settings from
// internal/config with CLI-specific fields: the UI server, the snapshot
// store and output preferences.
package config

import sharedcfg "github.com/leapstack-labs/figlens/internal/config"

// APIConfig is an alias for the shared API configuration.
type APIConfig = sharedcfg.APIConfig

// ViewerConfig is an alias for the shared viewer configuration.
type ViewerConfig = sharedcfg.ViewerConfig

// UIConfig holds configuration for the UI server.
type UIConfig struct {
	Port          int    `koanf:"port" yaml:"port"`
	AutoOpen      bool   `koanf:"auto_open" yaml:"auto_open"`
	Watch         bool   `koanf:"watch" yaml:"watch"`
	SessionSecret string `koanf:"session_secret" yaml:"session_secret,omitempty"`
}

// Config holds all CLI configuration options.
type Config struct {
	API          APIConfig    `koanf:"api" yaml:"api"`
	Viewer       ViewerConfig `koanf:"viewer" yaml:"viewer"`
	UI           UIConfig     `koanf:"ui" yaml:"ui"`
	StatePath    string       `koanf:"state_path" yaml:"state_path"`
	Verbose      bool         `koanf:"verbose" yaml:"verbose,omitempty"`
	OutputFormat string       `koanf:"output" yaml:"output"`
}

// Default configuration values.
const (
	DefaultStateFile = ".figlens/state.db"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultPort      = 8765
	EnvPrefix        = "FIGLENS_"
)

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:    sharedcfg.DefaultBaseURL,
			AuthHeader: sharedcfg.DefaultAuthHeader,
			Timeout:    sharedcfg.DefaultTimeout,
		},
		Viewer: ViewerConfig{
			EnablePanAndZoom: true,
			ImageFormat:      sharedcfg.DefaultImageFormat,
		},
		UI: UIConfig{
			Port:     DefaultPort,
			AutoOpen: true,
			Watch:    true,
		},
		StatePath:    DefaultStateFile,
		OutputFormat: DefaultOutput,
	}
}
