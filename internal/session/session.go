// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/palash-droid/folio/internal/output"
	"github.com/palash-droid/folio/internal/vfs"
)

// Mode is the presentation the session is showing.
type Mode int

const (
	ModeTerminal Mode = iota
	ModeSimple
)

func (m Mode) String() string {
	if m == ModeSimple {
		return "simple"
	}
	return "terminal"
}

// Override intercepts the next submitted line instead of normal dispatch.
type Override func(input string) output.Result

// Session is the state of one terminal view.
type Session struct {
	mu sync.Mutex

	id      string
	path    string
	history *History
	log     []output.Record

	override Override
	pending  string

	mode       Mode
	transition output.Target
	raining    bool
	section    output.Target

	created    time.Time
	lastActive time.Time
}

// New creates a session at the root path in terminal mode. A nil history
// gets an unpersisted one with the default limit.
func New(history *History) *Session {
	return NewWithID(uuid.NewString(), history)
}

// NewWithID is New with a caller-chosen id.
func NewWithID(id string, history *History) *Session {
	if history == nil {
		history = NewHistory(DefaultHistoryLimit)
	}
	now := time.Now()
	return &Session{
		id:         id,
		path:       vfs.Root,
		history:    history,
		created:    now,
		lastActive: now,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) History() *History {
	return s.history
}

// =============================================================================
// PATH
// =============================================================================

func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// SetPath moves the session. Callers validate p with vfs.IsLegal first.
func (s *Session) SetPath(p string) {
	s.mu.Lock()
	s.path = p
	s.mu.Unlock()
}

// =============================================================================
// OUTPUT LOG
// =============================================================================

// Append adds records to the end of the log.
func (s *Session) Append(records ...output.Record) {
	s.mu.Lock()
	s.log = append(s.log, records...)
	s.mu.Unlock()
}

// ClearOutput empties the log. Records are never removed individually.
func (s *Session) ClearOutput() {
	s.mu.Lock()
	s.log = nil
	s.mu.Unlock()
}

// Output returns a copy of the log.
func (s *Session) Output() []output.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]output.Record(nil), s.log...)
}

func (s *Session) OutputLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.log)
}

// =============================================================================
// INPUT OVERRIDE
// =============================================================================

// ArmOverride installs o for the next line. An already armed override is
// replaced without notice: the last one armed wins.
func (s *Session) ArmOverride(o Override) {
	s.mu.Lock()
	s.override = o
	s.mu.Unlock()
}

// TakeOverride returns the armed override and disarms it.
func (s *Session) TakeOverride() (Override, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.override
	s.override = nil
	return o, o != nil
}

func (s *Session) HasOverride() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.override != nil
}

// =============================================================================
// PENDING COMMAND
// =============================================================================

// SetPendingCommand queues a line for the terminal to run when it is next
// shown, e.g. from a button in the simple view.
func (s *Session) SetPendingCommand(line string) {
	s.mu.Lock()
	s.pending = line
	s.mu.Unlock()
}

// TakePendingCommand returns and clears the queued line.
func (s *Session) TakePendingCommand() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.pending
	s.pending = ""
	return line, line != ""
}

// =============================================================================
// MODE AND TRANSITIONS
// =============================================================================

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode switches presentation immediately. Returning to the terminal
// clears any section focus.
func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	s.mode = m
	if m == ModeTerminal {
		s.section = output.TargetNone
	}
	s.mu.Unlock()
}

// BeginTransition starts the rain effect. Any target but TargetRain is
// remembered and applied by CompleteTransition.
func (s *Session) BeginTransition(t output.Target) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raining = true
	if t != output.TargetRain {
		s.transition = t
	}
}

// Raining reports whether the rain effect is playing.
func (s *Session) Raining() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raining
}

// CompleteTransition ends the rain effect. If a target was pending, the
// session switches to the simple presentation focused on that section and
// the target is returned.
func (s *Session) CompleteTransition() (output.Target, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.raining = false
	t := s.transition
	s.transition = output.TargetNone
	if t == output.TargetNone {
		return t, false
	}
	s.mode = ModeSimple
	if t == output.TargetProjects || t == output.TargetContact {
		s.section = t
	} else {
		s.section = output.TargetNone
	}
	return t, true
}

// Section is the part of the simple view to focus, if any.
func (s *Session) Section() output.Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.section
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Reset returns the session to its initial state, keeping id and history.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = vfs.Root
	s.log = nil
	s.override = nil
	s.pending = ""
	s.mode = ModeTerminal
	s.transition = output.TargetNone
	s.raining = false
	s.section = output.TargetNone
	s.history.ResetCursor()
}

// Touch records activity.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

// Status is a point-in-time summary of a session.
type Status struct {
	ID         string        `json:"id"`
	Path       string        `json:"path"`
	Mode       string        `json:"mode"`
	HistoryLen int           `json:"historyLen"`
	OutputLen  int           `json:"outputLen"`
	Created    time.Time     `json:"created"`
	Idle       time.Duration `json:"idle"`
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		ID:         s.id,
		Path:       s.path,
		Mode:       s.mode.String(),
		HistoryLen: s.history.Len(),
		OutputLen:  len(s.log),
		Created:    s.created,
		Idle:       time.Since(s.lastActive),
	}
}
