// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// interpreter.go - Line dispatch, override routing and result application.
package commands

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/palash-droid/folio/internal/output"
	"github.com/palash-droid/folio/internal/session"
)

// Outcome describes what one submission did to the session.
type Outcome struct {
	// Records holds the echo line followed by everything the command printed.
	Records []output.Record `json:"records,omitempty"`
	// Action is the control action applied, if any.
	Action *output.Action `json:"action,omitempty"`
	// Overridden is set when the line went to an armed override.
	Overridden bool `json:"overridden,omitempty"`
	// Unknown is set when no command matched.
	Unknown bool `json:"unknown,omitempty"`
}

// Interpreter turns submitted lines into session changes.
type Interpreter struct {
	registry  *Registry
	completer *Completer
	deps      Deps
	logger    *zap.Logger
}

// NewInterpreter creates an interpreter dispatching to reg.
func NewInterpreter(reg *Registry, deps Deps) *Interpreter {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
		deps.Logger = logger
	}
	return &Interpreter{
		registry:  reg,
		completer: NewCompleter(reg),
		deps:      deps,
		logger:    logger,
	}
}

// New creates an interpreter over the built-in command set.
func New(deps Deps) *Interpreter {
	return NewInterpreter(NewBuiltinRegistry(), deps)
}

// Registry returns the command table.
func (in *Interpreter) Registry() *Registry {
	return in.registry
}

// Deps returns the collaborators handed to commands.
func (in *Interpreter) Deps() Deps {
	return in.deps
}

// =============================================================================
// SUBMISSION
// =============================================================================

// Submit processes one line against s. Blank lines do nothing. Otherwise the
// line is echoed and pushed to history, then routed to the armed override if
// there is one, else to the named command. The history cursor is always
// reset afterwards.
func (in *Interpreter) Submit(s *session.Session, line string) Outcome {
	defer s.History().ResetCursor()

	parsed := Parse(line)
	if parsed.RawInput == "" {
		return Outcome{}
	}
	cmd := parsed.RawInput

	echo := output.EchoLine(s.Path(), cmd)
	s.Append(echo)
	s.History().Push(cmd)
	s.Touch()

	out := Outcome{Records: []output.Record{echo}}

	if o, ok := s.TakeOverride(); ok {
		out.Overridden = true
		in.apply(s, in.safeOverride(o, cmd), &out)
		return out
	}

	command := in.registry.Get(parsed.CommandName)
	if command == nil {
		out.Unknown = true
		name := parsed.CommandName
		if name == "" {
			name = cmd
		}
		in.apply(s, output.Records(output.Error(fmt.Sprintf(
			"Command not found: %s. Type \"help\" for available commands.", name))), &out)
		return out
	}

	ctx := &Context{Deps: in.deps, Session: s, Registry: in.registry, Parsed: parsed}
	in.apply(s, in.invoke(command, ctx), &out)
	return out
}

// invoke runs the handler, turning a panic into an error record so the
// session survives.
func (in *Interpreter) invoke(cmd *Command, ctx *Context) (res output.Result) {
	defer func() {
		if r := recover(); r != nil {
			in.logger.Error("command panicked",
				zap.String("command", cmd.Name),
				zap.Any("panic", r))
			res = output.Records(output.Error(cmd.Name + ": internal error"))
		}
	}()
	return cmd.Handler(ctx, ctx.Parsed.Args)
}

func (in *Interpreter) safeOverride(o session.Override, line string) (res output.Result) {
	defer func() {
		if r := recover(); r != nil {
			in.logger.Error("override panicked", zap.Any("panic", r))
			res = output.Records(output.Error("internal error"))
		}
	}()
	return o(line)
}

// apply commits res to s and records it in out.
func (in *Interpreter) apply(s *session.Session, res output.Result, out *Outcome) {
	switch r := res.(type) {
	case output.Output:
		s.Append(r.Records...)
		out.Records = append(out.Records, r.Records...)
	case output.Action:
		act := r
		out.Action = &act
		switch r.Kind {
		case output.ActionClear:
			s.ClearOutput()
		case output.ActionSwitchMode:
			s.SetMode(session.ModeSimple)
		case output.ActionTransition:
			s.BeginTransition(r.Target)
		default:
			in.logger.Warn("unknown action", zap.String("kind", string(r.Kind)))
		}
	case nil:
	default:
		in.logger.Warn("unknown result type", zap.String("type", fmt.Sprintf("%T", res)))
	}
}

// RunPending submits the line a UI control queued on s, if any.
func (in *Interpreter) RunPending(s *session.Session) (Outcome, bool) {
	line, ok := s.TakePendingCommand()
	if !ok {
		return Outcome{}, false
	}
	return in.Submit(s, line), true
}

// =============================================================================
// INPUT EDITING
// =============================================================================

// Complete handles Tab for the unsent input. An ambiguous prefix prints the
// matches to the session log.
func (in *Interpreter) Complete(s *session.Session, input string) Completion {
	c := in.completer.Complete(input)
	if c.Kind == CompletionAmbiguous {
		s.Append(output.Info(c.Listing()))
	}
	return c
}

// HistoryUp returns the next older entry to display. ok is false when the
// history is empty and the input should stay as it is.
func (in *Interpreter) HistoryUp(s *session.Session) (line string, ok bool) {
	return s.History().Up()
}

// HistoryDown returns the next newer entry, or "" past the newest.
func (in *Interpreter) HistoryDown(s *session.Session) string {
	return s.History().Down()
}
