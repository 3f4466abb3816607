package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_MinimalValid(t *testing.T) {
	cfg := &Config{}
	errs := cfg.Validate()
	assert.Empty(t, errs, "expected no errors for minimal valid config")
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Port: 99999}}
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "server.port"), "expected port error, got %v", errs)
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := &Config{Server: ServerConfig{LogLevel: "verbose"}}
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "log_level"), "expected log_level error, got %v", errs)
}

func TestValidate_UnknownUpdateDetail(t *testing.T) {
	cfg := &Config{
		Plugins: PluginsConfig{
			SubscribeGroup: SubscribeGroupConfig{UpdateDetails: []string{"resource_pix", "codec"}},
		},
	}
	errs := cfg.Validate()
	assert.Len(t, errs, 1)
	assert.True(t, containsError(errs, `"codec"`), "expected update_details error, got %v", errs)
}

func TestValidate_AudiobookNeedsEmby(t *testing.T) {
	cfg := &Config{
		Plugins: PluginsConfig{Audiobook: AudiobookConfig{Enabled: true}},
	}
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "emby.url"), "expected emby.url error, got %v", errs)
	assert.True(t, containsError(errs, "emby.api_key"), "expected emby.api_key error, got %v", errs)

	cfg.Emby = EmbyConfig{URL: "http://emby:8096", APIKey: "k"}
	assert.Empty(t, cfg.Validate())
}

func TestValidate_NegativeThrottle(t *testing.T) {
	cfg := &Config{
		Plugins: PluginsConfig{Audiobook: AudiobookConfig{Throttle: -1}},
	}
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "throttle"), "expected throttle error, got %v", errs)
}

func containsError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
