// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// logs.go - Show recent log entries and the version.
package cli

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/palash-droid/folio/internal/logging"
)

func newLogsCmd(s *state) *cobra.Command {
	var (
		limit int
		level string
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent log entries, newest first",
		Example: `  folio logs
  folio logs --level error -n 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 1 {
				return &UsageError{Field: "limit", Value: fmt.Sprint(limit), Reason: "must be at least 1", Example: "folio logs -n 20"}
			}
			path := s.cfg.LogPath()
			entries, err := logging.Tail(path, level, limit)
			if err != nil {
				return NewCommandError("logs", "read", path, err)
			}

			out := cmd.OutOrStdout()
			if s.jsonOut {
				if entries == nil {
					entries = []logging.Entry{}
				}
				return NewJSONResponse("logs", entries).Write(out)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, DimStyle.Render("No log entries in "+path))
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s %s %s\n",
					DimStyle.Render(e.Timestamp),
					levelStyle(e.Level).Render(fmt.Sprintf("%-5s", e.Level)),
					e.Message)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries")
	cmd.Flags().StringVar(&level, "level", "", "only show this level")
	return cmd
}

func levelStyle(level string) lipgloss.Style {
	switch level {
	case "error", "dpanic", "panic", "fatal":
		return ErrorStyle
	case "warn":
		return WarningStyle
	case "debug":
		return DimStyle
	}
	return ValueStyle
}

// VersionInfo is printed by `folio version`.
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func newVersionCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := VersionInfo{
				Version:   Version,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			if s.jsonOut {
				return NewJSONResponse("version", info).Write(cmd.OutOrStdout())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "folio %s (%s, %s)\n", info.Version, info.GoVersion, info.Platform)
			return nil
		},
	}
}
