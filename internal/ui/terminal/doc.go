// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package terminal provides the full-screen portfolio terminal built on Bubble Tea.

The model is a thin host around commands.Interpreter: every line, Tab press and
history key is handed to the interpreter, and the session it mutates is
rendered back into a scrolling viewport.

# Key Components

## Model (model.go, update.go, view.go)

  - Text input with the current path as prompt, lowercased as typed
  - Scrollback viewport holding the welcome banner and the session log
  - Optional typing effect revealing new output
  - Simple view: the profile rendered as markdown, focused on the section a
    transition targeted; p, c and b return to the terminal and run a command

## Rendering (render.go)

Renderer styles records by kind and draws rich payloads: directory listings,
project cards, numbered menus, two-column tables and markdown via glamour.

## Effects (rain.go)

Rain is the matrix animation played before a presentation switch. Any key
skips it.

## Chat (chat.go)

A side overlay that answers questions with the assistant after the
configured delay while a spinner runs.

# Usage

	m := terminal.New(terminal.Options{
		Interpreter:  interp,
		Session:      sess,
		Theme:        styles.NewTheme(cfg.UI.Theme),
		Markdown:     blogs.Render,
		ChatDelay:    cfg.Assistant.ChatDelay.Duration,
		RainDuration: cfg.UI.RainDuration.Duration,
		ShowWelcome:  true,
	})
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
*/
package terminal
