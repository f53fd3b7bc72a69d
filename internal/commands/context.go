// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// context.go - What a handler sees of the running terminal.
package commands

import (
	"go.uber.org/zap"

	"github.com/palash-droid/folio/internal/assistant"
	"github.com/palash-droid/folio/internal/content"
	"github.com/palash-droid/folio/internal/output"
	"github.com/palash-droid/folio/internal/session"
)

// Deps are the shared, read-only collaborators handed to every command.
type Deps struct {
	Profile   *content.Profile
	Assistant *assistant.Processor
	Blogs     *content.BlogLoader
	Logger    *zap.Logger
}

// Context is passed to a handler for one invocation.
type Context struct {
	Deps
	Session  *session.Session
	Registry *Registry
	Parsed   ParseResult
}

// Path is the current virtual path.
func (c *Context) Path() string {
	return c.Session.Path()
}

// SetPath moves the session to p. Callers validate p first.
func (c *Context) SetPath(p string) {
	c.Session.SetPath(p)
}

// ArmOverride routes the next submitted line to o instead of the registry.
// A previously armed override is discarded.
func (c *Context) ArmOverride(o session.Override) {
	c.Session.ArmOverride(o)
}

// Transition is the result that plays the rain effect and then moves to t.
func (c *Context) Transition(t output.Target) output.Result {
	return output.Transition(t)
}

// RawArgs is the argument text exactly as typed.
func (c *Context) RawArgs() string {
	return c.Parsed.RawArgs
}
