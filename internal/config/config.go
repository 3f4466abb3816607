// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Emby     EmbyConfig     `toml:"emby"`
	Plugins  PluginsConfig  `toml:"plugins"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type EmbyConfig struct {
	URL    string `toml:"url"`
	APIKey string `toml:"api_key"`
	User   string `toml:"user"`
}

type PluginsConfig struct {
	SubscribeGroup SubscribeGroupConfig `toml:"subscribegroup"`
	Audiobook      AudiobookConfig      `toml:"audiobook"`
}

// SubscribeGroupConfig configures subscription enrichment.
type SubscribeGroupConfig struct {
	Enabled bool `toml:"enabled"`
	// Clear erases the processed history once, then flips back to false.
	Clear         bool     `toml:"clear"`
	UpdateDetails []string `toml:"update_details"`
}

// AudiobookConfig configures the Emby audiobook organizer.
type AudiobookConfig struct {
	Enabled   bool          `toml:"enabled"`
	Notify    bool          `toml:"notify"`
	Rename    bool          `toml:"rename"`
	LibraryID string        `toml:"library_id"`
	MsgType   string        `toml:"msgtype"`
	Throttle  time.Duration `toml:"throttle"`
}

// Enrichment target keys accepted in plugins.subscribegroup.update_details.
const (
	DetailResourceType   = "resource_type"
	DetailResourcePix    = "resource_pix"
	DetailResourceEffect = "resource_effect"
	DetailGroup          = "group"
)

// Load reads, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithoutValidation(path)
	if err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file and applies
// defaults. Unresolved environment variables are still an error.
func LoadWithoutValidation(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8484
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/mpplug.db"
	}
	if c.Plugins.Audiobook.MsgType == "" {
		c.Plugins.Audiobook.MsgType = "Plugin"
	}
	if c.Plugins.Audiobook.Throttle == 0 {
		c.Plugins.Audiobook.Throttle = 500 * time.Millisecond
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces environment references and returns the names
// (or ":?" messages) of those that could not be resolved. Unresolved
// references are left in place.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name, op, arg := parts[1], parts[2], parts[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, fmt.Sprintf("%s: %s", name, strings.TrimSpace(arg)))
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	})
	return out, missing
}
