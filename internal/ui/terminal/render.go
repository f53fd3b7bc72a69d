// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/palash-droid/folio/internal/output"
	"github.com/palash-droid/folio/internal/ui/styles"
	"github.com/palash-droid/folio/internal/util"
)

// MarkdownFunc renders markdown for the given width.
type MarkdownFunc func(md string, width int) (string, error)

// maxCardWidth keeps project cards readable on wide terminals.
const maxCardWidth = 76

// Renderer turns output records into styled terminal text.
type Renderer struct {
	theme    *styles.Theme
	markdown MarkdownFunc
}

// NewRenderer creates a renderer. A nil markdown func prints markdown as-is.
func NewRenderer(theme *styles.Theme, markdown MarkdownFunc) *Renderer {
	return &Renderer{theme: theme, markdown: markdown}
}

// Records renders recs one per line block.
func (r *Renderer) Records(recs []output.Record, width int) string {
	parts := make([]string, 0, len(recs))
	for _, rec := range recs {
		parts = append(parts, r.Record(rec, width))
	}
	return strings.Join(parts, "\n")
}

// Record renders one record, wrapping plain text at width.
func (r *Renderer) Record(rec output.Record, width int) string {
	if width < 20 {
		width = 20
	}

	if rec.Echo {
		return r.echo(rec.Text)
	}
	if rec.Rich != nil {
		switch rec.Rich.Kind {
		case output.RichListing:
			return r.listing(rec.Rich.Listing, width)
		case output.RichCard:
			if rec.Rich.Card != nil {
				return r.card(*rec.Rich.Card, width)
			}
		case output.RichMenu:
			return r.menu(rec.Rich.Menu)
		case output.RichTable:
			return r.table(rec.Rich.Table)
		case output.RichMarkdown:
			return r.renderMarkdown(rec.Rich.Markdown, width)
		}
	}
	return r.kindStyle(rec).Width(width).Render(rec.Text)
}

// Partial renders the first n runes of rec as plain styled text. It is used
// while the typing effect reveals new output.
func (r *Renderer) Partial(rec output.Record, n, width int) string {
	runes := []rune(rec.Text)
	if n < len(runes) {
		runes = runes[:max(n, 0)]
	}
	return r.kindStyle(rec).Width(max(width, 20)).Render(string(runes))
}

func (r *Renderer) kindStyle(rec output.Record) lipgloss.Style {
	if rec.Muted {
		return r.theme.Muted
	}
	switch rec.Kind {
	case output.KindError:
		return r.theme.Error
	case output.KindSuccess:
		return r.theme.Success
	case output.KindInfo:
		return r.theme.Info
	case output.KindWarning:
		return r.theme.Warning
	default:
		return r.theme.Text
	}
}

// echo splits "path ❯ line" back into its styled parts.
func (r *Renderer) echo(text string) string {
	sep := " " + output.PromptSymbol + " "
	path, line, ok := strings.Cut(text, sep)
	if !ok {
		return r.theme.Echo.Render(text)
	}
	return r.Prompt(path) + r.theme.Echo.Render(line)
}

// Prompt renders the input prompt for path.
func (r *Renderer) Prompt(path string) string {
	return r.theme.Path.Render(path) + " " + r.theme.Prompt.Render(output.PromptSymbol) + " "
}

func (r *Renderer) listing(items []output.ListItem, width int) string {
	var lines []string
	var line strings.Builder
	used := 0
	for _, it := range items {
		w := runewidth.StringWidth(it.Name)
		if used > 0 && used+2+w > width {
			lines = append(lines, line.String())
			line.Reset()
			used = 0
		}
		if used > 0 {
			line.WriteString("  ")
			used += 2
		}
		if it.Dir {
			line.WriteString(r.theme.Dir.Render(it.Name))
		} else {
			line.WriteString(r.theme.File.Render(it.Name))
		}
		used += w
	}
	if used > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) card(c output.Card, width int) string {
	inner := min(width, maxCardWidth) - 4

	var b strings.Builder
	b.WriteString(r.theme.CardTitle.Render(c.Title))
	for _, f := range c.Fields {
		b.WriteString("\n" + r.theme.CardKey.Render(f.Key+":") + " " + r.theme.Text.Render(f.Value))
	}
	if c.Body != "" {
		b.WriteString("\n\n" + r.theme.Text.Width(inner).Render(c.Body))
	}
	if c.Link != "" {
		b.WriteString("\n\n" + r.theme.Link.Render(c.Link))
	}
	return r.theme.Card.Width(inner + 2).Render(b.String())
}

func (r *Renderer) menu(items []output.MenuItem) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "  " + r.theme.MenuNumber.Render(strconv.Itoa(it.Number)+".") + " " + r.theme.Text.Render(it.Label)
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) table(rows []output.Row) string {
	keyWidth := 0
	for _, row := range rows {
		keyWidth = max(keyWidth, runewidth.StringWidth(row.Key))
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = r.theme.CardKey.Render(util.PadRight(row.Key, keyWidth)) + "  " + r.theme.Text.Render(row.Value)
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderMarkdown(md string, width int) string {
	if r.markdown == nil {
		return r.theme.Text.Width(width).Render(md)
	}
	out, err := r.markdown(md, width)
	if err != nil {
		return r.theme.Text.Width(width).Render(md)
	}
	return out
}
