/*
Copyright © 2026 3 Leaps <info@3leaps.net>
*/
package ops

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/cobra"
)

// CommandGroup represents the operational classification of commands
type CommandGroup string

const (
	GroupTheme    CommandGroup = "theme"    // add, import, remove, list
	GroupScaffold CommandGroup = "scaffold" // setup, update
	GroupSupport  CommandGroup = "support"  // version, doctor
)

// Groups lists the command groups in help order.
var Groups = []CommandGroup{GroupTheme, GroupScaffold, GroupSupport}

// Title is the heading shown for the group in help output.
func (g CommandGroup) Title() string {
	switch g {
	case GroupTheme:
		return "Theme Commands:"
	case GroupScaffold:
		return "Scaffold Commands:"
	case GroupSupport:
		return "Support Commands:"
	default:
		return string(g)
	}
}

// CommandRegistration represents a registered command with its classification
type CommandRegistration struct {
	Name        string
	Group       CommandGroup
	Command     *cobra.Command
	Description string
}

// Registry manages command classifications and registrations
type Registry struct {
	mu         sync.RWMutex
	commands   map[string]*CommandRegistration
	groupIndex map[CommandGroup][]*CommandRegistration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands:   make(map[string]*CommandRegistration),
		groupIndex: make(map[CommandGroup][]*CommandRegistration),
	}
}

// Global registry instance
var globalRegistry = NewRegistry()

// GetRegistry returns the global command registry
func GetRegistry() *Registry {
	return globalRegistry
}

// RegisterCommand registers a command with its operational classification
func RegisterCommand(name string, group CommandGroup, cmd *cobra.Command, description string) error {
	return GetRegistry().Register(name, group, cmd, description)
}

// Register adds a command to the registry and tags it with the group's
// cobra group ID.
func (r *Registry) Register(name string, group CommandGroup, cmd *cobra.Command, description string) error {
	if !knownGroup(group) {
		return fmt.Errorf("command %s: unknown group %q", name, group)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command %s already registered", name)
	}

	if cmd != nil {
		cmd.GroupID = string(group)
	}
	registration := &CommandRegistration{
		Name:        name,
		Group:       group,
		Command:     cmd,
		Description: description,
	}

	r.commands[name] = registration
	r.groupIndex[group] = append(r.groupIndex[group], registration)

	return nil
}

func knownGroup(g CommandGroup) bool {
	for _, known := range Groups {
		if g == known {
			return true
		}
	}
	return false
}

// GetCommand returns a registered command by name
func (r *Registry) GetCommand(name string) (*CommandRegistration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, exists := r.commands[name]
	return cmd, exists
}

// GetCommandsByGroup returns the commands in a group sorted by name
func (r *Registry) GetCommandsByGroup(group CommandGroup) []*CommandRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]*CommandRegistration(nil), r.groupIndex[group]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CobraGroups returns the cobra help groups in help order.
func CobraGroups() []*cobra.Group {
	groups := make([]*cobra.Group, 0, len(Groups))
	for _, g := range Groups {
		groups = append(groups, &cobra.Group{ID: string(g), Title: g.Title()})
	}
	return groups
}
