// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server exposes the portfolio terminal over HTTP for browser clients.
//
// Every client gets its own session from a session.Manager, identified by
// the folio_session cookie (or the "session" field of an exec request).
// Sessions left idle past the configured TTL are evicted.
//
// # Endpoints
//
//   - GET  /healthz      - status, version, live sessions and uptime
//   - GET  /api/commands - the visible command table
//   - POST /api/chat     - assistant answer after the chat delay
//   - POST /api/exec     - run one line and return the outcome
//   - GET  /ws/terminal  - interactive terminal over a websocket
//
// # Websocket Protocol
//
// Frames are JSON Message values. Clients send input, tab, up, down, reset,
// rain_done and terminal; the server answers with output, input, action,
// clear, mode and error.
//
// # Middleware
//
//   - Request ids (chi), panic recovery and zap request logging
//   - Security headers
//   - CORS; credentials only for explicitly listed origins
//   - Per-IP token buckets (x/time/rate), forwarded headers trusted only
//     from private-network proxies
//
// # Usage
//
//	srv := server.New(server.Config{Addr: ":8080"}, interp, sessions, logger)
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	err := srv.Run(ctx)
package server
