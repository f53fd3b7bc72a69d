// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// serve.go - HTTP and websocket server command.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/palash-droid/folio/internal/server"
	"github.com/palash-droid/folio/internal/session"
)

func newServeCmd(s *state) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the terminal over HTTP and websockets",
		Long: `Serve the portfolio terminal to browsers and scripts.

Endpoints:
  GET  /healthz        liveness and session count
  GET  /api/commands   visible commands
  POST /api/chat       one assistant answer
  POST /api/exec       run one command line in the caller's session
  GET  /ws/terminal    interactive terminal over a websocket

Each client gets its own session, remembered by a cookie. The server stops
gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := s.loadApp()
			if err != nil {
				return err
			}
			cfg := app.Config
			if addr != "" {
				cfg.Server.Addr = addr
			}

			stores, err := app.HistoryStores()
			if err != nil {
				return NewCommandError("serve", "open history", cfg.Terminal.HistoryBackend, err)
			}
			sessions := session.NewManager(session.Config{
				IdleTimeout:  cfg.Server.SessionTTL.Duration,
				HistoryLimit: cfg.Terminal.HistoryLimit,
			}, stores, app.Logger)

			srv := server.New(server.Config{
				Addr:            cfg.Server.Addr,
				AllowedOrigins:  cfg.Server.AllowedOrigins,
				RateLimit:       cfg.Server.RateLimit,
				RateBurst:       cfg.Server.RateBurst,
				ChatDelay:       cfg.Assistant.ChatDelay.Duration,
				SessionTTL:      cfg.Server.SessionTTL.Duration,
				ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration,
			}, app.Interp, sessions, app.Logger)

			app.Logger.Info("serving",
				zap.String("addr", cfg.Server.Addr),
				zap.String("history", cfg.Terminal.HistoryBackend))
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
