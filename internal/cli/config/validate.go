package config

import (
	"fmt"
	"slices"

	"github.com/leapstack-labs/figlens/internal/cli/output"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return err
	}
	if err := c.Viewer.Validate(); err != nil {
		return err
	}
	if c.UI.Port < 0 || c.UI.Port > 65535 {
		return fmt.Errorf("ui.port out of range: %d", c.UI.Port)
	}
	if c.OutputFormat != "" && !slices.Contains(output.Modes(), c.OutputFormat) {
		return fmt.Errorf("output must be one of auto, text, markdown, json, got %q", c.OutputFormat)
	}
	return nil
}

// RequireToken checks that remote sources can authenticate.
func (c *Config) RequireToken() error {
	if c.API.Token == "" {
		return fmt.Errorf("api.token is required for design URLs\nHint: set FIGLENS_API__TOKEN or add api.token to figlens.yaml")
	}
	return nil
}
