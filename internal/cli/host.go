// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// host.go - The full-screen and line-oriented hosts of the interpreter.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/palash-droid/folio/internal/commands"
	"github.com/palash-droid/folio/internal/output"
	"github.com/palash-droid/folio/internal/session"
	"github.com/palash-droid/folio/internal/ui/styles"
	"github.com/palash-droid/folio/internal/ui/terminal"
)

// =============================================================================
// TUI
// =============================================================================

func runTUI(ctx context.Context, app *App) error {
	sess, err := app.LocalSession(ctx)
	if err != nil {
		return err
	}
	cfg := app.Config
	model := terminal.New(terminal.Options{
		Interpreter:  app.Interp,
		Session:      sess,
		Theme:        styles.NewTheme(cfg.UI.Theme),
		Markdown:     app.Blogs.Render,
		ChatDelay:    cfg.Assistant.ChatDelay.Duration,
		RainDuration: cfg.UI.RainDuration.Duration,
		TypingEffect: cfg.Terminal.TypingEffect,
		ShowWelcome:  cfg.UI.ShowWelcome,
		Logger:       app.Logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal: %w", err)
	}
	return nil
}

// =============================================================================
// PRINTER
// =============================================================================

// printer writes records to a line-oriented output. With a renderer it
// styles them like the TUI; without one it prints their text form.
type printer struct {
	w        io.Writer
	renderer *terminal.Renderer
	width    int
}

func newPrinter(w io.Writer, app *App, styled bool) *printer {
	p := &printer{w: w, width: GetTerminalWidth()}
	if styled {
		p.renderer = terminal.NewRenderer(styles.NewTheme(app.Config.UI.Theme), app.Blogs.Render)
	}
	return p
}

// Print writes recs, skipping echo lines the user already sees.
func (p *printer) Print(recs []output.Record) {
	for _, rec := range recs {
		if rec.Echo {
			continue
		}
		if p.renderer != nil {
			fmt.Fprintln(p.w, p.renderer.Record(rec, p.width))
		} else {
			fmt.Fprintln(p.w, rec.Text)
		}
	}
}

// Action reports a control action. Hosts without animation complete
// transitions at once.
func (p *printer) Action(sess *session.Session, act *output.Action) {
	if act == nil {
		return
	}
	switch act.Kind {
	case output.ActionClear:
		if p.renderer != nil {
			fmt.Fprint(p.w, "\033[H\033[2J")
		}
	case output.ActionSwitchMode:
		fmt.Fprintln(p.w, p.note("switched to simple view"))
	case output.ActionTransition:
		target, _ := sess.CompleteTransition()
		if target == output.TargetRain || target == output.TargetNone {
			return
		}
		fmt.Fprintln(p.w, p.note("opening "+string(target)))
	}
}

func (p *printer) note(s string) string {
	s = "[" + s + "]"
	if p.renderer != nil {
		return DimStyle.Render(s)
	}
	return s
}

// =============================================================================
// BATCH
// =============================================================================

// batchLine is one JSON line of `folio --json` output.
type batchLine struct {
	Input   string           `json:"input"`
	Path    string           `json:"path"`
	Outcome commands.Outcome `json:"outcome"`
}

// runBatch reads commands from in, one per line, until EOF.
func runBatch(ctx context.Context, app *App, in io.Reader, out io.Writer, jsonOut bool) error {
	sess, err := app.LocalSession(ctx)
	if err != nil {
		return err
	}
	p := newPrinter(out, app, false)
	enc := json.NewEncoder(out)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := scanner.Text()
		outcome := app.Interp.Submit(sess, line)

		if jsonOut {
			if len(outcome.Records) == 0 && outcome.Action == nil {
				continue
			}
			sess.CompleteTransition()
			if err := enc.Encode(batchLine{Input: line, Path: sess.Path(), Outcome: outcome}); err != nil {
				return err
			}
			continue
		}
		p.Print(outcome.Records)
		p.Action(sess, outcome.Action)
	}
	if err := scanner.Err(); err != nil {
		app.Logger.Warn("reading stdin", zap.Error(err))
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
