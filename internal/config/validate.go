package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validDetails = map[string]bool{
	DetailResourceType:   true,
	DetailResourcePix:    true,
	DetailResourceEffect: true,
	DetailGroup:          true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if c.Emby.URL != "" {
		if _, err := url.Parse(c.Emby.URL); err != nil {
			errs = append(errs, fmt.Sprintf("emby.url: %v", err))
		}
	}

	for _, d := range c.Plugins.SubscribeGroup.UpdateDetails {
		if !validDetails[d] {
			errs = append(errs, fmt.Sprintf("plugins.subscribegroup.update_details: unknown target %q (want resource_type, resource_pix, resource_effect or group)", d))
		}
	}

	ab := c.Plugins.Audiobook
	if ab.Enabled {
		if c.Emby.URL == "" {
			errs = append(errs, "emby.url: required when plugins.audiobook is enabled")
		}
		if c.Emby.APIKey == "" {
			errs = append(errs, "emby.api_key: required when plugins.audiobook is enabled")
		}
	}
	if ab.Throttle < 0 {
		errs = append(errs, fmt.Sprintf("plugins.audiobook.throttle: must not be negative, got %s", ab.Throttle))
	}

	return errs
}
