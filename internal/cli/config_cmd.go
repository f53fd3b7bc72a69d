// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Show and edit config.toml.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/palash-droid/folio/internal/config"
)

func newConfigCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit the configuration",
		Long: `Show or edit folio's configuration.

Keys use dot notation matching config.toml, e.g. "server.addr" or
"terminal.history_backend". Environment variables (FOLIO_*) override the
file at load time; "config set" writes the file only.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if s.jsonOut {
					return NewJSONResponse("config show", s.cfg).Write(cmd.OutOrStdout())
				}
				fmt.Fprintln(cmd.OutOrStdout(), s.cfg.String())
				return nil
			},
		},
		&cobra.Command{
			Use:     "get <key>",
			Short:   "Print one setting",
			Example: "  folio config get server.addr",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := s.cfg.Get(args[0])
				if err != nil {
					return &NotFoundError{Resource: "config key", ID: args[0]}
				}
				if s.jsonOut {
					return NewJSONResponse("config get", map[string]any{"key": args[0], "value": v}).Write(cmd.OutOrStdout())
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatValue(v))
				return nil
			},
		},
		&cobra.Command{
			Use:     "set <key> <value>",
			Short:   "Change one setting and save config.toml",
			Example: "  folio config set terminal.history_backend sqlite",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, value := args[0], args[1]
				if _, err := s.cfg.Get(key); err != nil {
					return &NotFoundError{Resource: "config key", ID: key}
				}
				// Stage the change so a rejected value leaves s.cfg untouched.
				next := s.cfg.Clone()
				if err := next.Set(key, value); err != nil {
					return &UsageError{Field: key, Value: value, Reason: err.Error()}
				}
				if err := next.Validate(); err != nil {
					return &configError{err}
				}
				path, err := s.targetConfigPath()
				if err != nil {
					return &configError{err}
				}
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					return NewCommandError("config", "set", "create "+filepath.Dir(path), err)
				}
				if err := config.SaveTOML(next, path); err != nil {
					return NewCommandError("config", "set", "write "+path, err)
				}
				s.cfg = next
				if s.jsonOut {
					return NewJSONResponse("config set", map[string]any{"key": key, "value": value, "path": path}).Write(cmd.OutOrStdout())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", SuccessStyle.Render("Saved"), key, value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print where config.toml lives",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				path, err := s.targetConfigPath()
				if err != nil {
					return &configError{err}
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		},
	)
	return cmd
}

func (s *state) targetConfigPath() (string, error) {
	if s.configPath != "" {
		return s.configPath, nil
	}
	return config.ConfigPath()
}

// formatValue prints scalars bare and everything else as JSON.
func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case []string:
		return strings.Join(x, ",")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
