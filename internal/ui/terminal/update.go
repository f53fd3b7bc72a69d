// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/palash-droid/folio/internal/commands"
	"github.com/palash-droid/folio/internal/output"
	"github.com/palash-droid/folio/internal/session"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case rainTickMsg:
		return m, m.stepRain(msg)

	case typingTickMsg:
		return m, m.stepTyping()

	case chatReplyMsg, spinner.TickMsg:
		return m, m.chat.Update(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.chat.Close()
		return m, tea.Quit
	}

	// Any key skips the rain.
	if m.sess.Raining() {
		m.finishRain()
		return m, nil
	}

	if m.chat.Open() {
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Chat):
			m.chat.Close()
			m.resize(m.width, m.height)
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			return m, m.chat.Send()
		}
		return m, m.chat.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Chat):
		cmd := m.chat.Toggle()
		m.resize(m.width, m.height)
		return m, cmd
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.sess.Mode() == session.ModeSimple {
		return m.handleSimpleKey(msg)
	}
	return m.handleTerminalKey(msg)
}

func (m Model) handleTerminalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		line := m.input.Value()
		m.input.Reset()
		return m, m.submit(line)

	case key.Matches(msg, m.keys.Complete):
		c := m.interp.Complete(m.sess, m.input.Value())
		if c.Kind == commands.CompletionUnique {
			m.input.SetValue(c.Input)
			m.input.CursorEnd()
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.HistoryPrev):
		if line, ok := m.interp.HistoryUp(m.sess); ok {
			m.input.SetValue(line)
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keys.HistoryNext):
		m.input.SetValue(m.interp.HistoryDown(m.sess))
		m.input.CursorEnd()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		return m, m.submit("clear")

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.lowercaseInput()
	return m, cmd
}

// lowercaseInput keeps the prompt in lower case as the user types.
func (m *Model) lowercaseInput() {
	v := m.input.Value()
	if lower := strings.ToLower(v); lower != v {
		pos := m.input.Position()
		m.input.SetValue(lower)
		m.input.SetCursor(pos)
	}
}

func (m Model) handleSimpleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, m.backToTerminal("")
	case key.Matches(msg, m.keys.Projects):
		return m, m.backToTerminal("projects")
	case key.Matches(msg, m.keys.Contact):
		return m, m.backToTerminal("contact-me")
	case key.Matches(msg, m.keys.Blog):
		return m, m.backToTerminal("blog")
	}

	var cmd tea.Cmd
	m.page, cmd = m.page.Update(msg)
	return m, cmd
}

// =============================================================================
// COMMANDS
// =============================================================================

// submit runs line through the interpreter and reacts to its outcome.
func (m *Model) submit(line string) tea.Cmd {
	before := m.sess.OutputLen()
	out := m.interp.Submit(m.sess, line)
	if len(out.Records) > 0 {
		m.logger.Debug("command submitted",
			zap.String("line", line),
			zap.Bool("unknown", out.Unknown),
			zap.Bool("overridden", out.Overridden))
	}
	return m.afterOutcome(out, before)
}

func (m *Model) afterOutcome(out commands.Outcome, before int) tea.Cmd {
	m.typing.active = false

	if out.Action != nil {
		switch out.Action.Kind {
		case output.ActionTransition:
			m.refresh()
			return m.startRain()
		case output.ActionSwitchMode:
			m.renderPage(true)
			return nil
		}
	}

	var cmd tea.Cmd
	if m.opts.TypingEffect && out.Action == nil && len(out.Records) > 1 {
		// The echo line appears at once; the rest is typed out.
		m.typing = typing{active: true, from: before + 1}
		for _, rec := range out.Records[1:] {
			m.typing.total += len([]rune(rec.Text))
		}
		cmd = typingTick()
	}
	m.refresh()
	return cmd
}

// backToTerminal leaves the simple view. A non-empty line is queued and run
// once the terminal is showing.
func (m *Model) backToTerminal(line string) tea.Cmd {
	if line != "" {
		m.sess.SetPendingCommand(line)
	}
	m.sess.SetMode(session.ModeTerminal)

	before := m.sess.OutputLen()
	if out, ok := m.interp.RunPending(m.sess); ok {
		return m.afterOutcome(out, before)
	}
	m.refresh()
	return nil
}

// =============================================================================
// EFFECTS
// =============================================================================

func typingTick() tea.Cmd {
	return tea.Tick(typingFrame, func(time.Time) tea.Msg { return typingTickMsg{} })
}

func (m *Model) stepTyping() tea.Cmd {
	if !m.typing.active {
		return nil
	}
	m.typing.shown += typingStep
	if m.typing.shown >= m.typing.total {
		m.typing.active = false
		m.refresh()
		return nil
	}
	m.refresh()
	return typingTick()
}

func (m *Model) startRain() tea.Cmd {
	if m.opts.RainDuration <= 0 {
		m.finishRain()
		return nil
	}
	m.rainGen++
	m.rain = NewRain(m.width, m.height, uint64(time.Now().UnixNano()))
	m.rainUntil = time.Now().Add(m.opts.RainDuration)
	return rainTick(m.rainGen)
}

func (m *Model) stepRain(msg rainTickMsg) tea.Cmd {
	if !m.sess.Raining() || m.rain == nil || msg.gen != m.rainGen {
		// Skipped by a key press; let the tick chain end.
		return nil
	}
	if !msg.at.Before(m.rainUntil) {
		m.finishRain()
		return nil
	}
	m.rain.Step()
	return rainTick(m.rainGen)
}

// finishRain ends the effect and applies any pending presentation change.
func (m *Model) finishRain() {
	m.rain = nil
	if target, ok := m.sess.CompleteTransition(); ok {
		m.logger.Debug("transition complete", zap.String("target", string(target)))
		m.renderPage(true)
		return
	}
	m.refresh()
}
