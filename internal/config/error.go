package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is wrapped by every *ConfigError.
var ErrInvalid = errors.New("invalid configuration")

// ConfigError aggregates everything wrong with one config file.
// Validation messages have the form "<key path>: <problem>".
type ConfigError struct {
	Path    string
	Missing []string // unresolved ${VAR} references
	Errors  []string // validation messages
}

// Section is the validation messages sharing one TOML table.
type Section struct {
	Table    string // "server", "emby", "plugins.audiobook", ...
	Messages []string
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	b.WriteString("config")
	if e.Path != "" {
		b.WriteString(" " + e.Path)
	}
	b.WriteString(":")
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "\nmissing environment variables: %s", strings.Join(e.Missing, ", "))
	}
	if len(e.Errors) > 0 {
		b.WriteString("\nvalidation failed:")
		for _, s := range e.Sections() {
			fmt.Fprintf(&b, "\n  [%s]", s.Table)
			for _, m := range s.Messages {
				b.WriteString("\n    - " + m)
			}
		}
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error { return ErrInvalid }

// HasErrors reports whether anything was recorded.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}

// Sections groups the validation messages by table, in first-seen order.
// The table is the key path minus its last element; the message keeps the
// last element.
func (e *ConfigError) Sections() []Section {
	var out []Section
	index := map[string]int{}
	for _, msg := range e.Errors {
		table, rest := splitKeyPath(msg)
		i, ok := index[table]
		if !ok {
			i = len(out)
			index[table] = i
			out = append(out, Section{Table: table})
		}
		out[i].Messages = append(out[i].Messages, rest)
	}
	return out
}

func splitKeyPath(msg string) (table, rest string) {
	path, problem, ok := strings.Cut(msg, ": ")
	if !ok || strings.ContainsAny(path, " \t") {
		return "general", msg
	}
	dot := strings.LastIndexByte(path, '.')
	if dot < 0 {
		return path, problem
	}
	return path[:dot], path[dot+1:] + ": " + problem
}
