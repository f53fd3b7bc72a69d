// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/palash-droid/folio/internal/assistant"
	"github.com/palash-droid/folio/internal/ui/styles"
)

// =============================================================================
// CHAT OVERLAY
// =============================================================================

const chatWidth = 48

// ChatTurn is one message of the chat transcript.
type ChatTurn struct {
	User bool
	Text string
}

type chatReplyMsg struct {
	resp assistant.Response
	err  error
}

// Chat is the assistant overlay. Questions are answered by the same processor
// as the ask command, after the configured delay. Several questions may be in
// flight at once; answers arrive in order because the delay is fixed.
type Chat struct {
	open     bool
	input    textinput.Model
	spinner  spinner.Model
	turns    []ChatTurn
	inflight int

	proc   *assistant.Processor
	delay  time.Duration
	ctx    context.Context
	cancel context.CancelFunc
}

// NewChat creates a closed chat greeted on behalf of owner.
func NewChat(proc *assistant.Processor, delay time.Duration, owner string, theme *styles.Theme) Chat {
	ti := textinput.New()
	ti.Placeholder = "Ask about projects, skills..."
	ti.Prompt = "› "
	ti.CharLimit = 200
	ti.Width = chatWidth - 6

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Spinner))

	greeting := "Hi! I'm the portfolio assistant. Ask me anything about projects, skills, or experience!"
	if owner != "" {
		greeting = "Hi! I'm " + owner + "'s AI assistant. Ask me anything about projects, skills, or experience!"
	}

	ctx, cancel := context.WithCancel(context.Background())
	return Chat{
		input:   ti,
		spinner: sp,
		turns:   []ChatTurn{{Text: greeting}},
		proc:    proc,
		delay:   delay,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Open reports whether the overlay is showing.
func (c *Chat) Open() bool { return c.open }

// Turns returns the transcript.
func (c *Chat) Turns() []ChatTurn { return c.turns }

// Thinking reports whether an answer is pending.
func (c *Chat) Thinking() bool { return c.inflight > 0 }

// Toggle shows or hides the overlay. Hiding drops pending answers.
func (c *Chat) Toggle() tea.Cmd {
	if c.open {
		c.Close()
		return nil
	}
	c.open = true
	return c.input.Focus()
}

// Close hides the overlay and cancels pending answers.
func (c *Chat) Close() {
	c.open = false
	c.input.Blur()
	c.cancel()
	c.inflight = 0
	c.ctx, c.cancel = context.WithCancel(context.Background())
}

// Send posts the current input. Blank input is ignored.
func (c *Chat) Send() tea.Cmd {
	q := strings.TrimSpace(c.input.Value())
	if q == "" || c.proc == nil {
		return nil
	}
	c.input.Reset()
	c.turns = append(c.turns, ChatTurn{User: true, Text: q})
	c.inflight++

	ctx, proc, delay := c.ctx, c.proc, c.delay
	reply := func() tea.Msg {
		resp, err := proc.Reply(ctx, q, delay)
		return chatReplyMsg{resp: resp, err: err}
	}
	if c.inflight == 1 {
		return tea.Batch(reply, c.spinner.Tick)
	}
	return reply
}

// Update routes keys to the chat input and collects replies.
func (c *Chat) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case chatReplyMsg:
		if msg.err != nil {
			// Cancelled by Close; the turn was already discarded.
			return nil
		}
		if c.inflight > 0 {
			c.inflight--
		}
		c.turns = append(c.turns, ChatTurn{Text: msg.resp.Text})
		return nil
	case spinner.TickMsg:
		if c.inflight == 0 {
			return nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return cmd
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// View renders the overlay box, showing the newest turns that fit height.
func (c *Chat) View(theme *styles.Theme, height int) string {
	title := theme.ChatTitle.Render("Assistant")
	inner := chatWidth - 4

	var lines []string
	for _, t := range c.turns {
		var block string
		if t.User {
			block = theme.ChatUser.Width(inner).Align(lipgloss.Right).Render(t.Text)
		} else {
			block = theme.ChatAssistant.Width(inner).Render(t.Text)
		}
		lines = append(lines, strings.Split(block, "\n")...)
		lines = append(lines, "")
	}
	if c.inflight > 0 {
		lines = append(lines, c.spinner.View()+" thinking...")
	}

	room := max(height-6, 3)
	if len(lines) > room {
		lines = lines[len(lines)-room:]
	}

	body := title + "\n\n" + strings.Join(lines, "\n") + "\n" + c.input.View()
	return theme.ChatBox.Width(chatWidth).Render(body)
}
