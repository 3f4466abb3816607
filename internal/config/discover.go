package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvPath names the environment variable that pins the config file.
const EnvPath = "MPPLUG_CONFIG"

// ErrNotFound is returned by Discover when no candidate exists.
var ErrNotFound = errors.New("config not found")

// DefaultPath is where `mpplug config init` writes:
// $XDG_CONFIG_HOME/mpplug/config.toml, falling back to ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "mpplug", "config.toml")
}

// SearchPaths lists the candidates Discover tries after $MPPLUG_CONFIG.
// A file named after the daemon wins over a generic config.toml in the
// working directory.
func SearchPaths() []string {
	return []string{
		"mpplugd.toml",
		"config.toml",
		DefaultPath(),
		"/etc/mpplug/config.toml",
	}
}

// Discover returns the config file to load. $MPPLUG_CONFIG must exist when
// set; otherwise the first existing SearchPaths entry is used.
func Discover() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvPath, p, err)
		}
		return p, nil
	}

	paths := SearchPaths()
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (checked %s); run `mpplug config init`", ErrNotFound, strings.Join(paths, ", "))
}
