// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question to the assistant.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/palash-droid/folio/internal/assistant"
)

func newAskCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the assistant a question",
		Long: `Ask the portfolio assistant a question in plain English and print the
answer. Follow-up options are listed but not interactive; use the terminal
or "folio repl" to pick one.`,
		Example: `  folio ask what are your skills
  folio ask "how can I contact you?" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.loadApp()
			if err != nil {
				return err
			}
			question := strings.Join(args, " ")
			proc := app.Interp.Deps().Assistant
			if proc == nil {
				return NewCommandError("ask", "answer", "assistant unavailable", nil)
			}
			resp := proc.Process(question)
			app.Logger.Debug("ask",
				zap.String("query", assistant.Clean(question)),
				zap.Bool("matched", resp.Matched),
				zap.Float64("score", resp.Score))

			if s.jsonOut {
				return NewJSONResponse("ask", resp).Write(cmd.OutOrStdout())
			}
			printAnswer(cmd, app, resp)
			return nil
		},
	}
}

func printAnswer(cmd *cobra.Command, app *App, resp assistant.Response) {
	out := cmd.OutOrStdout()
	styled := ColorsEnabled()

	text := resp.Text
	if styled {
		if rendered, err := app.Blogs.Render(text, GetTerminalWidth()); err == nil {
			text = strings.Trim(rendered, "\n")
		}
	}
	fmt.Fprintln(out, text)

	for i, c := range resp.Choices {
		fmt.Fprintf(out, "  %d. %s\n", i+1, c.Label)
	}
	if resp.RelatedCommand != "" {
		hint := fmt.Sprintf("Try: %s", resp.RelatedCommand)
		if styled {
			hint = DimStyle.Render(hint)
		}
		fmt.Fprintln(out, hint)
	}
}
