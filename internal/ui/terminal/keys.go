// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap holds the bindings of the terminal, the simple view and the chat
// overlay. Terminal keys are checked before the text input sees them.
type KeyMap struct {
	Submit      key.Binding
	Complete    key.Binding
	HistoryPrev key.Binding
	HistoryNext key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Clear       key.Binding
	Chat        key.Binding
	Back        key.Binding
	Help        key.Binding
	Quit        key.Binding

	// Simple view shortcuts queue a command for the terminal.
	Projects key.Binding
	Contact  key.Binding
	Blog     key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "run"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "complete"),
		),
		HistoryPrev: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "older"),
		),
		HistoryNext: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "newer"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear"),
		),
		Chat: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "chat"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "terminal"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		Projects: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "projects in terminal"),
		),
		Contact: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "contact in terminal"),
		),
		Blog: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "blog in terminal"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Complete, k.HistoryPrev, k.Chat, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Complete, k.HistoryPrev, k.HistoryNext},
		{k.PageUp, k.PageDown, k.Clear},
		{k.Chat, k.Back, k.Help, k.Quit},
	}
}

// simpleKeys is the help shown in the simple view.
type simpleKeys struct{ KeyMap }

func (k simpleKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Projects, k.Contact, k.Blog, k.PageDown, k.Chat, k.Quit}
}

func (k simpleKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
