// Package config provides the shared configuration types for figlens: how
// to reach the design-file API and how viewers behave. It is decoupled from
// CLI concerns so the UI server and the terminal browser can use it too.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/leapstack-labs/figlens/internal/figmaapi"
	"github.com/leapstack-labs/figlens/internal/viewer"
)

// APIConfig holds design-file API settings.
type APIConfig struct {
	BaseURL    string        `koanf:"base_url" yaml:"base_url"`
	Token      string        `koanf:"token" yaml:"token"`
	AuthHeader string        `koanf:"auth_header" yaml:"auth_header"` // token or bearer
	Timeout    time.Duration `koanf:"timeout" yaml:"timeout"`
}

// Client builds an API client from the settings.
func (c APIConfig) Client() figmaapi.Config {
	header := figmaapi.AuthHeaderToken
	if strings.EqualFold(c.AuthHeader, "bearer") {
		header = figmaapi.AuthHeaderBearer
	}
	return figmaapi.Config{
		BaseURL:    c.BaseURL,
		Token:      c.Token,
		AuthHeader: header,
		Timeout:    c.Timeout,
	}
}

// ViewerConfig holds viewer behavior settings.
type ViewerConfig struct {
	EnablePanAndZoom bool    `koanf:"enable_pan_and_zoom" yaml:"enable_pan_and_zoom"`
	ImageFormat      string  `koanf:"image_format" yaml:"image_format"`
	ContainerWidth   float64 `koanf:"container_width" yaml:"container_width"`
	ShowInsets       bool    `koanf:"show_insets" yaml:"show_insets"`
}

// Apply copies the settings onto a viewer configuration.
func (c ViewerConfig) Apply(vc viewer.Config) viewer.Config {
	vc.EnablePanAndZoom = c.EnablePanAndZoom
	vc.ContainerWidth = c.ContainerWidth
	vc.ShowInsets = c.ShowInsets
	return vc
}

// Validate checks the API settings.
func (c *APIConfig) Validate() error {
	switch strings.ToLower(c.AuthHeader) {
	case "", "token", "bearer":
	default:
		return fmt.Errorf("api.auth_header must be token or bearer, got %q", c.AuthHeader)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	return nil
}

// Validate checks the viewer settings.
func (c *ViewerConfig) Validate() error {
	if !slices.Contains(ImageFormats, c.ImageFormat) {
		return fmt.Errorf("viewer.image_format must be one of %s, got %q", strings.Join(ImageFormats, ", "), c.ImageFormat)
	}
	if c.ContainerWidth < 0 {
		return fmt.Errorf("viewer.container_width must not be negative")
	}
	return nil
}
