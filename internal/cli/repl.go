// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Line-editing shell for terminals where the full-screen UI is
// unwanted.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/palash-droid/folio/internal/commands"
	"github.com/palash-droid/folio/internal/output"
)

func newReplCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start a line-editing shell",
		Long: `Start the portfolio terminal as a plain shell with readline-style editing.

Up and Down walk the command history, Tab completes command names.
Ctrl+C or Ctrl+D leaves the shell.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationInteractive: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := s.loadApp()
			if err != nil {
				return err
			}
			return runRepl(cmd, app)
		},
	}
}

// ReplCompleter adapts the command completer to liner. A unique match
// replaces the line. Ambiguous matches are listed; the current input is
// offered first so liner does not extend it to their common prefix.
func ReplCompleter(c *commands.Completer) func(string) []string {
	return func(line string) []string {
		res := c.Complete(line)
		switch res.Kind {
		case commands.CompletionUnique:
			return []string{res.Input}
		case commands.CompletionAmbiguous:
			input := strings.TrimSpace(line)
			if commonPrefix(res.Matches) != input {
				return append([]string{input}, res.Matches...)
			}
			return res.Matches
		}
		return nil
	}
}

func commonPrefix(items []string) string {
	if len(items) == 0 {
		return ""
	}
	prefix := items[0]
	for _, it := range items[1:] {
		for !strings.HasPrefix(it, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

func runRepl(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	sess, err := app.LocalSession(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabPrints)
	line.SetCompleter(ReplCompleter(commands.NewCompleter(app.Interp.Registry())))
	for _, h := range sess.History().Entries() {
		line.AppendHistory(h)
	}

	p := newPrinter(out, app, ColorsEnabled())
	if app.Config.UI.ShowWelcome {
		p.Print(commands.Welcome(app.Profile))
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		input, err := line.Prompt(PromptStyle.Render(sess.Path()) + " " + output.PromptSymbol + " ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		if strings.TrimSpace(input) == "exit" {
			return nil
		}

		outcome := app.Interp.Submit(sess, input)
		if len(outcome.Records) > 0 {
			line.AppendHistory(strings.TrimSpace(input))
		}
		p.Print(outcome.Records)
		p.Action(sess, outcome.Action)
	}
}
