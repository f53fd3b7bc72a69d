// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history.go - Inspect and clear persisted command history.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/palash-droid/folio/internal/session"
)

// historyData is the JSON form of `folio history`.
type historyData struct {
	Scope   string   `json:"scope"`
	Backend string   `json:"backend"`
	Limit   int      `json:"limit"`
	Entries []string `json:"entries"`
	Cleared bool     `json:"cleared,omitempty"`
}

func newHistoryCmd(s *state) *cobra.Command {
	var (
		wipe  bool
		scope string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear the command history",
		Long: `Show the persisted command history, oldest first.

The terminal, REPL and batch hosts share the "local" history. Server
sessions are stored under their session id.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !validScope(scope) {
				return &UsageError{Field: "scope", Value: scope, Reason: "letters, digits and dashes only", Example: "folio history --scope local"}
			}
			app := s.storeApp()
			stores, err := app.HistoryStores()
			if err != nil {
				return NewCommandError("history", "open", app.Config.Terminal.HistoryBackend, err)
			}
			if stores == nil {
				return NewCommandError("history", "open", "the memory backend keeps no history", nil)
			}
			kv := stores(scope)
			if kv == nil {
				return NewCommandError("history", "open", "store unavailable for scope "+scope, nil)
			}

			hist := session.LoadHistory(cmd.Context(), kv, app.Config.Terminal.HistoryLimit, app.Logger)
			data := historyData{
				Scope:   scope,
				Backend: app.Config.Terminal.HistoryBackend,
				Limit:   hist.Limit(),
				Entries: hist.Entries(),
			}
			if wipe {
				hist.Clear()
				data.Entries = []string{}
				data.Cleared = true
			}

			out := cmd.OutOrStdout()
			if s.jsonOut {
				return NewJSONResponse("history", data).Write(out)
			}
			if wipe {
				fmt.Fprintln(out, SuccessStyle.Render("History cleared"))
				return nil
			}
			if len(data.Entries) == 0 {
				fmt.Fprintln(out, DimStyle.Render("No history"))
				return nil
			}
			for i, e := range data.Entries {
				fmt.Fprintf(out, "%s %s\n", DimStyle.Render(fmt.Sprintf("%3d", i+1)), e)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&wipe, "clear", "c", false, "clear the history")
	cmd.Flags().StringVar(&scope, "scope", LocalScope, "history scope (a server session id, or local)")
	return cmd
}

func validScope(scope string) bool {
	if scope == "" {
		return false
	}
	for _, r := range scope {
		if !(r == '-' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}

// storeApp returns the loaded App, or one without content for commands that
// only need the history stores.
func (s *state) storeApp() *App {
	if s.app == nil {
		s.app = &App{Config: s.cfg, Logger: s.logger}
	}
	return s.app
}
