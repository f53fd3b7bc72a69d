// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Root command, global flags and shared setup.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/palash-droid/folio/internal/commands"
	"github.com/palash-droid/folio/internal/config"
	"github.com/palash-droid/folio/internal/logging"
)

// Version is reported by `folio version` and the server.
var Version = commands.Version

// annotationInteractive marks commands that own the terminal. They log to
// file only so log lines cannot corrupt the screen.
const annotationInteractive = "interactive"

// state is shared by the root command and its subcommands for one run.
type state struct {
	configPath string
	logLevel   string
	jsonOut    bool
	batch      bool

	cfg    *config.Config
	logger *zap.Logger
	app    *App
}

// newRoot builds the command tree. The run state is returned so callers can
// release it when a command fails and PersistentPostRun is skipped.
func newRoot() (*cobra.Command, *state) {
	s := &state{}

	root := &cobra.Command{
		Use:   "folio",
		Short: "Portfolio terminal",
		Long: `folio is a terminal-style portfolio. Explore projects, skills and posts
with shell commands, or ask the assistant in plain English.

Run without arguments to start the full-screen terminal. When stdin or
stdout is not a terminal, commands are read one per line from stdin.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Annotations:   map[string]string{annotationInteractive: "true"},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			s.teardown()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.runRoot(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&s.configPath, "config", "", "config file (default ~/.folio/config.toml)")
	pf.StringVar(&s.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.BoolVar(&s.jsonOut, "json", false, "print machine-readable JSON")
	root.Flags().BoolVar(&s.batch, "batch", false, "read commands from stdin even on a terminal")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Field: "flag", Reason: err.Error()}
	})

	root.AddCommand(
		newReplCmd(s),
		newAskCmd(s),
		newServeCmd(s),
		newHistoryCmd(s),
		newConfigCmd(s),
		newLogsCmd(s),
		newDoctorCmd(s),
		newVersionCmd(s),
	)
	return root, s
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, s := newRoot()
	cmd, err := root.ExecuteContextC(ctx)
	s.teardown()
	if err != nil {
		jsonMode, _ := root.PersistentFlags().GetBool("json")
		name := root.Name()
		if cmd != nil {
			name = cmd.Name()
		}
		DisplayError(os.Stderr, name, err, jsonMode)
	}
	return ExitCode(err)
}

// =============================================================================
// SETUP
// =============================================================================

// setup loads configuration and builds the logger. Content is loaded lazily
// by loadApp so config and log commands work with a broken profile.
func (s *state) setup(cmd *cobra.Command) error {
	configureColors()

	var (
		cfg *config.Config
		err error
	)
	if s.configPath != "" {
		cfg, err = config.LoadFromPath(s.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return &configError{err}
	}
	if s.logLevel != "" {
		cfg.Logging.Level = s.logLevel
	}
	s.cfg = cfg

	interactive := cmd.Annotations[annotationInteractive] == "true"
	console := (cfg.Logging.Console || cmd.Name() == "serve") && !interactive
	logger, err := logging.New(logging.Options{
		Path:       cfg.LogPath(),
		Level:      cfg.Logging.Level,
		Console:    console,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
		Stderr:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return &configError{err}
	}
	s.logger = logger.With(zap.String("command", cmd.Name()))
	s.logger.Debug("folio starting", zap.String("version", Version))
	return nil
}

// teardown is safe to call more than once.
func (s *state) teardown() {
	if s.app != nil {
		if err := s.app.Close(); err != nil {
			s.logger.Warn("shutdown", zap.Error(err))
		}
		s.app = nil
	}
	if s.logger != nil {
		_ = s.logger.Sync()
	}
}

// loadApp builds the App on first use.
func (s *state) loadApp() (*App, error) {
	if s.app != nil {
		return s.app, nil
	}
	app, err := NewApp(s.cfg, s.logger)
	if err != nil {
		return nil, err
	}
	s.app = app
	return app, nil
}

// =============================================================================
// ROOT
// =============================================================================

func (s *state) runRoot(cmd *cobra.Command) error {
	app, err := s.loadApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	host := DetectHost(IsTTY(), IsStdoutTTY())
	if s.batch || s.jsonOut {
		host = HostBatch
	}
	switch host {
	case HostTUI:
		return runTUI(ctx, app)
	default:
		return runBatch(ctx, app, cmd.InOrStdin(), cmd.OutOrStdout(), s.jsonOut)
	}
}
