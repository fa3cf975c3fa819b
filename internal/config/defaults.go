package config

import (
	"time"

	"github.com/leapstack-labs/figlens/internal/figmaapi"
)

// Default configuration values.
const (
	DefaultBaseURL     = figmaapi.DefaultBaseURL
	DefaultAuthHeader  = "token"
	DefaultTimeout     = 30 * time.Second
	DefaultImageFormat = "png"
)

// ImageFormats are the bitmap formats the API can render.
var ImageFormats = []string{"png", "jpg", "svg"}

// ApplyDefaults fills unset API fields.
func (c *APIConfig) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.AuthHeader == "" {
		c.AuthHeader = DefaultAuthHeader
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}

// ApplyDefaults fills unset viewer fields.
func (c *ViewerConfig) ApplyDefaults() {
	if c.ImageFormat == "" {
		c.ImageFormat = DefaultImageFormat
	}
}
