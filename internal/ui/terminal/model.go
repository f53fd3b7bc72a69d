// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/palash-droid/folio/internal/commands"
	"github.com/palash-droid/folio/internal/output"
	"github.com/palash-droid/folio/internal/session"
	"github.com/palash-droid/folio/internal/ui/styles"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a terminal model.
type Options struct {
	Interpreter *commands.Interpreter
	Session     *session.Session
	Theme       *styles.Theme
	// Markdown renders blog posts and the simple view; nil prints raw markdown.
	Markdown MarkdownFunc

	ChatDelay    time.Duration
	RainDuration time.Duration
	TypingEffect bool
	ShowWelcome  bool

	Logger *zap.Logger
}

// =============================================================================
// MODEL
// =============================================================================

const (
	typingFrame = 15 * time.Millisecond
	typingStep  = 6
)

type typingTickMsg struct{}

// typing tracks the reveal of records appended by the last command.
type typing struct {
	active bool
	from   int
	shown  int
	total  int
}

// Model is the bubbletea model of the portfolio terminal.
type Model struct {
	opts     Options
	interp   *commands.Interpreter
	sess     *session.Session
	theme    *styles.Theme
	renderer *Renderer
	logger   *zap.Logger

	keys     KeyMap
	help     help.Model
	input    textinput.Model
	viewport viewport.Model
	page     viewport.Model
	pageData SimplePage
	chat     Chat

	rain      *Rain
	rainUntil time.Time
	rainGen   int
	typing    typing

	banner []output.Record
	width  int
	height int
	ready  bool
}

// New creates a terminal model over an interpreter and session.
func New(opts Options) Model {
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme("auto")
	}
	if opts.Session == nil {
		opts.Session = session.New(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Focus()

	deps := opts.Interpreter.Deps()
	owner := ""
	if deps.Profile != nil {
		owner = deps.Profile.About.Name
	}

	m := Model{
		opts:     opts,
		interp:   opts.Interpreter,
		sess:     opts.Session,
		theme:    opts.Theme,
		renderer: NewRenderer(opts.Theme, opts.Markdown),
		logger:   logger,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		input:    ti,
		viewport: viewport.New(0, 0),
		page:     viewport.New(0, 0),
		chat:     NewChat(deps.Assistant, opts.ChatDelay, owner, opts.Theme),
	}
	if opts.ShowWelcome {
		m.banner = commands.Welcome(deps.Profile)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Session returns the session the model drives.
func (m Model) Session() *session.Session {
	return m.sess
}

// Input returns the unsent input line.
func (m Model) Input() string {
	return m.input.Value()
}

// Chat returns the chat overlay.
func (m Model) Chat() *Chat {
	return &m.chat
}

// =============================================================================
// LAYOUT
// =============================================================================

// resize fits every pane to the window.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	mainWidth := m.mainWidth()
	bodyHeight := max(height-2, 1)

	m.viewport.Width = mainWidth
	m.viewport.Height = bodyHeight
	m.page.Width = mainWidth
	m.page.Height = bodyHeight
	m.input.Width = max(mainWidth-len([]rune(m.sess.Path()))-4, 10)

	if m.rain != nil {
		m.rain.Resize(width, height)
	}
	if m.sess.Mode() == session.ModeSimple {
		m.renderPage(false)
	}
	m.ready = true
	m.refresh()
}

// mainWidth leaves room for the chat box beside the terminal when it is open.
func (m *Model) mainWidth() int {
	if m.chat.Open() && m.width >= chatWidth+40 {
		return m.width - chatWidth - 3
	}
	return max(m.width, 1)
}

// refresh re-renders the output log into the viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	width := m.viewport.Width - 1

	recs := m.sess.Output()
	var content string
	if len(m.banner) > 0 {
		content = m.renderer.Records(m.banner, width) + "\n\n"
	}

	if !m.typing.active || m.typing.from >= len(recs) {
		m.typing.active = false
		content += m.renderer.Records(recs, width)
	} else {
		content += m.renderer.Records(recs[:m.typing.from], width)
		budget := m.typing.shown
		for _, rec := range recs[m.typing.from:] {
			n := len([]rune(rec.Text))
			content += "\n"
			if budget >= n {
				content += m.renderer.Record(rec, width)
				budget -= n
				continue
			}
			content += m.renderer.Partial(rec, budget, width)
			break
		}
	}

	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

// renderPage lays out the simple view, optionally scrolling to the section
// the session points at.
func (m *Model) renderPage(focus bool) {
	m.pageData = RenderSimple(SimpleSections(m.interp.Deps().Profile), max(m.page.Width-2, 20), m.opts.Markdown)
	m.page.SetContent(m.pageData.Content)
	if focus {
		m.page.SetYOffset(m.pageData.Offset(m.sess.Section()))
	}
}
