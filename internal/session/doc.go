// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the state of one terminal view and manages many of
// them for the web host.
//
// # Key Types
//
//   - Session: current path, output log, history, input override, pending
//     command and presentation mode
//   - History: capped command history persisted under "terminal_history"
//   - Manager: id-keyed sessions with idle expiry
//
// A Session is explicitly owned by its host. Hosts that share sessions
// across goroutines (the web server) rely on the Session's own locking;
// handlers never hold the lock while running.
package session
