// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the portfolio terminal's command interpreter.
//
// A submitted line is echoed, pushed to history and then either handed to an
// armed input override or split into a command name and arguments and
// dispatched through the Registry. Handlers return an output.Result: records
// to print or a single control action.
//
// # Key Types
//
//   - Interpreter: Submit, Tab completion and history browsing for a session
//   - Registry: Ordered command table with case-insensitive lookup
//   - Context: Session, profile and assistant as seen by a handler
//   - ParseResult: Command name, arguments and raw argument text
//   - Completer: Command-name prefix completion
//
// # Usage
//
//	in := commands.New(commands.Deps{Profile: prof, Assistant: proc})
//	out := in.Submit(sess, "cd projects")
//	for _, r := range out.Records {
//	    fmt.Println(r.Text)
//	}
package commands
