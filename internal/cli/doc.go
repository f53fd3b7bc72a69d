// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli is the folio command line, built on cobra.
//
// Running folio with no subcommand picks a host for the interpreter: the
// full-screen bubbletea terminal when stdin and stdout are terminals, and a
// line-oriented batch host otherwise.
//
// # Key Components
//
//   - App: profile, blog loader, interpreter and history stores for one run
//   - Execute: builds the command tree, runs it and maps errors to exit codes
//   - ReplCompleter: Tab completion for the liner shell
//   - RunChecks: the doctor health checks
//
// # Commands
//
//   - repl: line-editing shell
//   - ask: one-shot assistant question
//   - serve: HTTP and websocket server
//   - history: show or clear persisted history
//   - config: show, get, set and path
//   - logs: recent log entries
//   - doctor: health checks
//   - version
//
// Every command accepts --json for machine-readable output.
//
// # Usage
//
//	func main() {
//	    os.Exit(cli.Execute())
//	}
package cli
