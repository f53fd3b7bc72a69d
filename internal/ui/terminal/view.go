// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palash-droid/folio/internal/session"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.sess.Raining() && m.rain != nil {
		return m.rain.Render(m.theme)
	}

	var body, footer string
	if m.sess.Mode() == session.ModeSimple {
		body = m.page.View()
		footer = m.help.View(simpleKeys{m.keys})
	} else {
		body = m.viewport.View() + "\n" + m.renderer.Prompt(m.sess.Path()) + m.input.View()
		footer = m.help.View(m.keys)
	}

	if m.chat.Open() {
		box := m.chat.View(m.theme, m.height-1)
		if m.width >= chatWidth+40 {
			body = lipgloss.JoinHorizontal(lipgloss.Bottom, body, " ", box)
		} else {
			body = lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Bottom, box)
		}
	}

	return body + "\n" + m.theme.HelpDesc.Render(footer)
}
