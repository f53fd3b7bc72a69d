// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// system.go - Screen, mode, history and novelty commands.
package commands

import (
	"fmt"
	"strings"

	"github.com/palash-droid/folio/internal/output"
)

func clearCommand() *Command {
	return &Command{
		Name:        "clear",
		Aliases:     []string{"cls"},
		Description: "Clear the terminal output",
		Usage:       "clear",
		Category:    CategorySystem,
		Handler: func(_ *Context, _ []string) output.Result {
			return output.Clear()
		},
	}
}

// simpleHandler switches to the simple view, through the rain effect unless
// --instant is given.
func simpleHandler(_ *Context, args []string) output.Result {
	for _, a := range args {
		if a == "--instant" {
			return output.SwitchMode()
		}
	}
	return output.Transition(output.TargetSimple)
}

func simpleCommand() *Command {
	return &Command{
		Name:        "simple",
		Description: "Switch to Simple (GUI) Mode",
		Usage:       "simple [--instant]",
		Category:    CategorySystem,
		Handler:     simpleHandler,
	}
}

func guiCommand() *Command {
	return &Command{
		Name:        "gui",
		Description: "Alias for simple",
		Usage:       "gui [--instant]",
		Category:    CategorySystem,
		Handler:     simpleHandler,
	}
}

func matrixCommand() *Command {
	return &Command{
		Name:        "matrix",
		Description: "Enter the matrix",
		Usage:       "matrix",
		Category:    CategoryFun,
		Handler: func(_ *Context, _ []string) output.Result {
			return output.Records(output.Success("Wake up, Neo...\nThe Matrix has you..."))
		},
	}
}

func matrixRainCommand() *Command {
	return &Command{
		Name:        "matrix-rain",
		Description: "Let it rain code",
		Usage:       "matrix-rain",
		Category:    CategoryFun,
		Handler: func(ctx *Context, _ []string) output.Result {
			return ctx.Transition(output.TargetRain)
		},
	}
}

func rmCommand() *Command {
	return &Command{
		Name:        "rm",
		Description: "Remove files",
		Usage:       "rm <file>",
		Category:    CategoryFun,
		Handler: func(_ *Context, args []string) output.Result {
			if contains(args, "-rf") && (contains(args, "/") || contains(args, "*")) {
				return output.Records(
					output.Warning("Deleting system files..."),
					output.Error("ACCESS DENIED. System integrity protection enabled."),
					output.Info("Nice try though! 😉"),
				)
			}
			return output.Records(output.Error("rm: permission denied"))
		},
	}
}

func sudoCommand() *Command {
	return &Command{
		Name:        "sudo",
		Description: "Execute a command as another user",
		Usage:       "sudo <command>",
		Category:    CategoryFun,
		Handler: func(_ *Context, _ []string) output.Result {
			return output.Records(output.Error("Permission denied: You are not the admin."))
		},
	}
}

func whoamiCommand() *Command {
	return &Command{
		Name:        "whoami",
		Description: "Print the current user",
		Usage:       "whoami",
		Category:    CategoryFun,
		Handler: func(_ *Context, _ []string) output.Result {
			return output.Records(output.Success("guest"))
		},
	}
}

func historyCommand() *Command {
	return &Command{
		Name:        "history",
		Description: "Show command history",
		Usage:       "history [-c]",
		Category:    CategorySystem,
		Handler: func(ctx *Context, args []string) output.Result {
			h := ctx.Session.History()
			if contains(args, "-c") {
				h.Clear()
				return output.Records(output.Success("History cleared."))
			}
			entries := h.Entries()
			lines := make([]string, len(entries))
			for i, e := range entries {
				lines[i] = fmt.Sprintf("%5d  %s", i+1, e)
			}
			return output.Records(output.Text(strings.Join(lines, "\n")))
		},
	}
}

func resetCommand() *Command {
	return &Command{
		Name:        "reset",
		Description: "Reset the terminal session",
		Usage:       "reset",
		Category:    CategorySystem,
		Handler: func(ctx *Context, _ []string) output.Result {
			ctx.Session.Reset()
			return output.Clear()
		},
	}
}

func contains(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}
