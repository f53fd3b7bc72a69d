// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styles of the terminal and simple views.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// TERMINAL STYLES
	// ==========================================================================

	Path       lipgloss.Style
	Prompt     lipgloss.Style
	Echo       lipgloss.Style
	Text       lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Info       lipgloss.Style
	Warning    lipgloss.Style
	Muted      lipgloss.Style
	Dir        lipgloss.Style
	File       lipgloss.Style
	Link       lipgloss.Style
	MenuNumber lipgloss.Style
	CardTitle  lipgloss.Style
	CardKey    lipgloss.Style
	Card       lipgloss.Style

	// ==========================================================================
	// CHROME
	// ==========================================================================

	Banner    lipgloss.Style
	StatusBar lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style

	// ==========================================================================
	// CHAT OVERLAY
	// ==========================================================================

	ChatBox       lipgloss.Style
	ChatTitle     lipgloss.Style
	ChatUser      lipgloss.Style
	ChatAssistant lipgloss.Style
	Spinner       lipgloss.Style

	// ==========================================================================
	// RAIN
	// ==========================================================================

	RainHead  lipgloss.Style
	RainTrail lipgloss.Style
	RainFaint lipgloss.Style
}

// NewTheme creates a theme. mode is "dark", "light" or "auto"; auto asks the
// terminal for its background.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	isDark := true
	switch mode {
	case "light":
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.Path = lipgloss.NewStyle().Foreground(Blue).Bold(true)
	t.Prompt = lipgloss.NewStyle().Foreground(Green).Bold(true)
	t.Echo = lipgloss.NewStyle().Foreground(TextPrimary).Bold(true)
	t.Text = lipgloss.NewStyle().Foreground(TextPrimary)
	t.Error = lipgloss.NewStyle().Foreground(Rose)
	t.Success = lipgloss.NewStyle().Foreground(Green)
	t.Info = lipgloss.NewStyle().Foreground(Blue)
	t.Warning = lipgloss.NewStyle().Foreground(Amber)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	t.Dir = lipgloss.NewStyle().Foreground(Blue).Bold(true)
	t.File = lipgloss.NewStyle().Foreground(TextPrimary)
	t.Link = lipgloss.NewStyle().Foreground(Cyan).Underline(true)
	t.MenuNumber = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.CardTitle = lipgloss.NewStyle().Foreground(Blue).Bold(true)
	t.CardKey = lipgloss.NewStyle().Foreground(Green).Bold(true)
	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.Banner = lipgloss.NewStyle().Foreground(Green).Bold(true)
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextMuted).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay)
	t.HelpKey = lipgloss.NewStyle().Foreground(Cyan)
	t.HelpDesc = lipgloss.NewStyle().Foreground(TextMuted)

	t.ChatBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)
	t.ChatTitle = lipgloss.NewStyle().Foreground(Purple).Bold(true)
	t.ChatUser = lipgloss.NewStyle().Foreground(Blue)
	t.ChatAssistant = lipgloss.NewStyle().Foreground(TextPrimary)
	t.Spinner = lipgloss.NewStyle().Foreground(Purple)

	t.RainHead = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#052E16", Dark: "#F0FDF4"}).Bold(true)
	t.RainTrail = lipgloss.NewStyle().Foreground(Green)
	t.RainFaint = lipgloss.NewStyle().Foreground(GreenDim)
}

// GlamourStyle names the glamour style matching the background.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}
