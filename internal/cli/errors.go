// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types and exit codes shared by every subcommand.
//
// Subcommands always return errors; Execute decides how to show them and
// which exit code to use.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/palash-droid/folio/internal/config"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitUsageError    = 2
	ExitConfigError   = 3
	ExitNotFoundError = 7
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError is a subcommand failure with context.
type CommandError struct {
	Command string // e.g. "history"
	Action  string // e.g. "clear"
	Reason  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// UsageError is invalid user input on the command line.
type UsageError struct {
	Field   string
	Value   string
	Reason  string
	Example string
}

func (e *UsageError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += "\nExample: " + e.Example
	}
	return msg
}

// NotFoundError is a missing resource such as a config key.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// configError marks failures loading or validating the configuration.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// =============================================================================
// HELPERS
// =============================================================================

// NewCommandError creates a CommandError.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{Command: command, Action: action, Reason: reason, Err: err}
}

// ExitCode maps err to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		usage   *UsageError
		missing *NotFoundError
		cfgErr  *configError
		invalid config.ValidateErrors
	)
	switch {
	case errors.As(err, &usage):
		return ExitUsageError
	case errors.As(err, &missing):
		return ExitNotFoundError
	case errors.As(err, &cfgErr), errors.As(err, &invalid):
		return ExitConfigError
	}
	return ExitGeneralError
}

// DisplayError writes err to w, as JSON in JSON mode.
func DisplayError(w io.Writer, command string, err error, jsonMode bool) {
	if jsonMode {
		_ = NewJSONErrorResponse(command, err).Write(w)
		return
	}
	fmt.Fprintf(w, "%s %v\n", ErrorStyle.Render("Error:"), err)
}
