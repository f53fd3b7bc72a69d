// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// builtins.go - The standard command table.
package commands

// Builtins returns the standard commands in the order help lists them.
func Builtins() []*Command {
	return []*Command{
		helpCommand(),
		aboutCommand(),
		projectsCommand(),
		contactCommand(),
		contactGUICommand(),
		clearCommand(),
		simpleCommand(),
		guiCommand(),
		catCommand(),
		cdCommand(),
		lsCommand(),
		askCommand(),
		blogCommand(),
		certsCommand(),
		matrixCommand(),
		matrixRainCommand(),
		rmCommand(),
		sudoCommand(),
		whoamiCommand(),
		historyCommand(),
		resetCommand(),
	}
}

// NewBuiltinRegistry returns a registry holding Builtins.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(Builtins()...)
	return r
}
