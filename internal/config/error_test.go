package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigPath = "/etc/mpplug/config.toml"

func TestConfigError_EmptyIsNotAnError(t *testing.T) {
	e := &ConfigError{Path: testConfigPath}
	assert.False(t, e.HasErrors())
	assert.Empty(t, e.Error())
}

func TestConfigError_MissingVars(t *testing.T) {
	e := &ConfigError{Path: testConfigPath, Missing: []string{"EMBY_API_KEY", "MPPLUG_PORT"}}

	got := e.Error()
	assert.True(t, strings.HasPrefix(got, "config "+testConfigPath+":"))
	assert.Contains(t, got, "missing environment variables: EMBY_API_KEY, MPPLUG_PORT")
	assert.NotContains(t, got, "validation failed")
}

func TestConfigError_GroupsValidationByTable(t *testing.T) {
	e := &ConfigError{Path: testConfigPath, Errors: []string{
		"emby.url: required when plugins.audiobook is enabled",
		"server.port: must be between 1 and 65535, got 0",
		"emby.api_key: required when plugins.audiobook is enabled",
		"plugins.audiobook.throttle: must not be negative, got -1s",
	}}

	sections := e.Sections()
	require.Len(t, sections, 3)
	assert.Equal(t, Section{Table: "emby", Messages: []string{
		"url: required when plugins.audiobook is enabled",
		"api_key: required when plugins.audiobook is enabled",
	}}, sections[0])
	assert.Equal(t, "server", sections[1].Table)
	assert.Equal(t, "plugins.audiobook", sections[2].Table)
	assert.Equal(t, []string{"throttle: must not be negative, got -1s"}, sections[2].Messages)

	got := e.Error()
	assert.Contains(t, got, "validation failed:\n  [emby]\n    - url: required")
	assert.Contains(t, got, "  [plugins.audiobook]\n    - throttle:")
}

func TestConfigError_UnkeyedMessage(t *testing.T) {
	e := &ConfigError{Errors: []string{"something odd happened"}}

	sections := e.Sections()
	require.Len(t, sections, 1)
	assert.Equal(t, "general", sections[0].Table)
	assert.Equal(t, []string{"something odd happened"}, sections[0].Messages)
	assert.True(t, strings.HasPrefix(e.Error(), "config:"))
}

func TestConfigError_WrapsErrInvalid(t *testing.T) {
	var err error = &ConfigError{Path: testConfigPath, Missing: []string{"X"}}
	assert.True(t, errors.Is(err, ErrInvalid))

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, testConfigPath, cfgErr.Path)
}
