// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// registry.go - Command registry for the portfolio terminal.
package commands

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/palash-droid/folio/internal/output"
)

// ErrDuplicateCommand is returned when a name or alias is registered twice.
var ErrDuplicateCommand = errors.New("duplicate command")

// =============================================================================
// COMMAND TYPES
// =============================================================================

// Handler executes a command. It returns either records to print or a
// control action.
type Handler func(ctx *Context, args []string) output.Result

// Command defines a terminal command.
type Command struct {
	Name        string   // Primary name (e.g., "cat")
	Aliases     []string // Alternative names
	Description string   // Short description shown by help
	Usage       string   // Usage string (e.g., "cat <file>")
	Category    string   // Grouping in help output
	Hidden      bool     // Left out of help and completion
	Handler     Handler
}

// Command categories.
const (
	CategoryPortfolio  = "Portfolio"
	CategoryFilesystem = "Filesystem"
	CategoryAssistant  = "Assistant"
	CategorySystem     = "System"
	CategoryFun        = "Fun"
)

// Categories is the order help prints groups in.
var Categories = []string{CategoryPortfolio, CategoryFilesystem, CategoryAssistant, CategorySystem, CategoryFun}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry holds commands in registration order plus a lowercase index of
// names and aliases.
type Registry struct {
	mu       sync.RWMutex
	ordered  []*Command
	commands map[string]*Command
	aliases  map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]string),
	}
}

// Register adds cmd. Names and aliases are unique across the registry,
// compared case-insensitively.
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil || strings.TrimSpace(cmd.Name) == "" {
		return errors.New("register: command has no name")
	}
	if cmd.Handler == nil {
		return fmt.Errorf("register %q: nil handler", cmd.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{cmd.Name}, cmd.Aliases...)
	for _, k := range keys {
		if r.taken(strings.ToLower(k)) {
			return fmt.Errorf("register %q: %w: %s", cmd.Name, ErrDuplicateCommand, k)
		}
	}

	name := strings.ToLower(cmd.Name)
	r.commands[name] = cmd
	for _, a := range cmd.Aliases {
		r.aliases[strings.ToLower(a)] = name
	}
	r.ordered = append(r.ordered, cmd)
	return nil
}

// MustRegister is Register for static tables; it panics on error.
func (r *Registry) MustRegister(cmds ...*Command) {
	for _, c := range cmds {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
}

func (r *Registry) taken(key string) bool {
	_, cmd := r.commands[key]
	_, alias := r.aliases[key]
	return cmd || alias
}

// Get finds a command by name or alias, ignoring case.
func (r *Registry) Get(name string) *Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := strings.ToLower(name)
	if cmd, ok := r.commands[key]; ok {
		return cmd
	}
	if primary, ok := r.aliases[key]; ok {
		return r.commands[primary]
	}
	return nil
}

// All returns every command in registration order.
func (r *Registry) All() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Command, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Visible returns the non-hidden commands in registration order.
func (r *Registry) Visible() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Command, 0, len(r.ordered))
	for _, c := range r.ordered {
		if !c.Hidden {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the primary names of the visible commands in order.
func (r *Registry) Names() []string {
	cmds := r.Visible()
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// ByCategory groups the visible commands, preserving order within a group.
func (r *Registry) ByCategory() map[string][]*Command {
	result := make(map[string][]*Command)
	for _, c := range r.Visible() {
		cat := c.Category
		if cat == "" {
			cat = CategorySystem
		}
		result[cat] = append(result[cat], c)
	}
	return result
}

// Len is the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ordered)
}
