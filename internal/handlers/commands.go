package handlers

import (
	"strings"

	"github.com/vmunix/mpplugins/internal/events"
)

// Command maps a chat command such as "/ab" to a plugin action.
type Command struct {
	Cmd         string `json:"cmd"`
	Action      string `json:"action"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// CommandTable is the set of commands of all plugins.
type CommandTable []Command

// Commands collects the commands of plugins.
func Commands(plugins ...Plugin) CommandTable {
	var t CommandTable
	for _, p := range plugins {
		t = append(t, p.Commands()...)
	}
	return t
}

// Parse turns command text ("/ab book 3") into a PluginAction. It reports
// false when the text names no known command.
func (t CommandTable) Parse(text, channel, user string) (*events.PluginAction, bool) {
	text = strings.TrimSpace(text)
	cmd, args, _ := strings.Cut(text, " ")
	for _, c := range t {
		if strings.EqualFold(c.Cmd, cmd) {
			return &events.PluginAction{
				BaseEvent: events.NewBaseEvent(events.EventPluginAction, events.EntityPlugin, 0),
				Action:    c.Action,
				Args:      strings.TrimSpace(args),
				Channel:   channel,
				User:      user,
			}, true
		}
	}
	return nil, false
}
