// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palash-droid/folio/internal/assistant"
	"github.com/palash-droid/folio/internal/content"
	"github.com/palash-droid/folio/internal/output"
	"github.com/palash-droid/folio/internal/session"
	"github.com/palash-droid/folio/internal/vfs"
)

func newTestInterpreter(t *testing.T) (*Interpreter, *session.Session) {
	t.Helper()
	prof, err := content.Default()
	require.NoError(t, err)

	in := New(Deps{
		Profile:   prof,
		Assistant: assistant.NewProcessor(assistant.BuildKnowledgeBase(prof)),
		Blogs:     content.NewBlogLoader(prof.BlogPosts, content.WithSource(content.EmbeddedBlogFS())),
	})
	return in, session.New(session.NewHistory(session.DefaultHistoryLimit))
}

// printed drops the echo line.
func printed(out Outcome) []output.Record {
	if len(out.Records) == 0 {
		return nil
	}
	return out.Records[1:]
}

func texts(recs []output.Record) string {
	parts := make([]string, len(recs))
	for i, r := range recs {
		parts[i] = r.Text
	}
	return strings.Join(parts, "\n")
}

// =============================================================================
// DISPATCH
// =============================================================================

func TestSubmit_BlankIsNoop(t *testing.T) {
	in, s := newTestInterpreter(t)

	for _, line := range []string{"", "   ", "\t"} {
		out := in.Submit(s, line)
		assert.Empty(t, out.Records)
	}
	assert.Equal(t, 0, s.OutputLen())
	assert.Equal(t, 0, s.History().Len())
}

func TestSubmit_EchoAndHistory(t *testing.T) {
	in, s := newTestInterpreter(t)

	out := in.Submit(s, "  whoami  ")
	require.Len(t, out.Records, 2)
	assert.True(t, out.Records[0].Echo)
	assert.Equal(t, "~/ ❯ whoami", out.Records[0].Text)
	assert.Equal(t, "guest", out.Records[1].Text)
	assert.Equal(t, []string{"whoami"}, s.History().Entries())
}

func TestSubmit_UnknownCommandChangesNothingElse(t *testing.T) {
	in, s := newTestInterpreter(t)
	in.Submit(s, "cd projects")

	pathBefore := s.Path()
	histBefore := s.History().Len()
	logBefore := s.OutputLen()

	out := in.Submit(s, "frobnicate --now")
	assert.True(t, out.Unknown)
	require.Len(t, printed(out), 1)
	rec := printed(out)[0]
	assert.Equal(t, output.KindError, rec.Kind)
	assert.Equal(t, `Command not found: frobnicate. Type "help" for available commands.`, rec.Text)

	assert.Equal(t, pathBefore, s.Path())
	assert.Equal(t, histBefore+1, s.History().Len())
	assert.Equal(t, logBefore+2, s.OutputLen())
	assert.Nil(t, out.Action)
	assert.Equal(t, session.ModeTerminal, s.Mode())
}

func TestSubmit_CaseInsensitiveLookup(t *testing.T) {
	in, s := newTestInterpreter(t)
	out := in.Submit(s, "WHOAMI")
	assert.False(t, out.Unknown)
	assert.Equal(t, "guest", texts(printed(out)))
}

func TestSubmit_HandlerPanicBecomesError(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(&Command{Name: "boom", Handler: func(*Context, []string) output.Result {
		panic("kaboom")
	}})
	in := NewInterpreter(r, Deps{})
	s := session.New(nil)

	out := in.Submit(s, "boom")
	require.Len(t, printed(out), 1)
	assert.Equal(t, output.KindError, printed(out)[0].Kind)
}

func TestSubmit_HistoryCap(t *testing.T) {
	in, s := newTestInterpreter(t)
	for i := 0; i < 55; i++ {
		in.Submit(s, fmt.Sprintf("echo %d", i))
	}
	entries := s.History().Entries()
	require.Len(t, entries, 50)
	assert.Equal(t, "echo 5", entries[0])
	assert.Equal(t, "echo 54", entries[49])
}

// =============================================================================
// ACTIONS
// =============================================================================

func TestSubmit_Actions(t *testing.T) {
	tests := []struct {
		line   string
		kind   output.ActionKind
		target output.Target
	}{
		{"clear", output.ActionClear, output.TargetNone},
		{"simple", output.ActionTransition, output.TargetSimple},
		{"gui", output.ActionTransition, output.TargetSimple},
		{"simple --instant", output.ActionSwitchMode, output.TargetNone},
		{"contact-me-gui", output.ActionTransition, output.TargetContact},
		{"matrix-rain", output.ActionTransition, output.TargetRain},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			in, s := newTestInterpreter(t)
			out := in.Submit(s, tt.line)
			require.NotNil(t, out.Action)
			assert.Equal(t, tt.kind, out.Action.Kind)
			assert.Equal(t, tt.target, out.Action.Target)
			assert.Len(t, out.Records, 1, "an action prints nothing beyond the echo")
		})
	}
}

func TestSubmit_ClearEmptiesLog(t *testing.T) {
	in, s := newTestInterpreter(t)
	in.Submit(s, "about")
	require.Greater(t, s.OutputLen(), 0)

	in.Submit(s, "clear")
	assert.Equal(t, 0, s.OutputLen())
	assert.Equal(t, 2, s.History().Len())
}

func TestSubmit_TransitionThenComplete(t *testing.T) {
	in, s := newTestInterpreter(t)

	in.Submit(s, "contact-me-gui")
	assert.True(t, s.Raining())
	assert.Equal(t, session.ModeTerminal, s.Mode())

	target, switched := s.CompleteTransition()
	assert.True(t, switched)
	assert.Equal(t, output.TargetContact, target)
	assert.Equal(t, session.ModeSimple, s.Mode())
	assert.Equal(t, output.TargetContact, s.Section())
}

func TestSubmit_RainStaysInTerminal(t *testing.T) {
	in, s := newTestInterpreter(t)
	in.Submit(s, "matrix-rain")
	_, switched := s.CompleteTransition()
	assert.False(t, switched)
	assert.Equal(t, session.ModeTerminal, s.Mode())
}

func TestSubmit_SwitchModeImmediate(t *testing.T) {
	in, s := newTestInterpreter(t)
	in.Submit(s, "gui --instant")
	assert.Equal(t, session.ModeSimple, s.Mode())
	assert.False(t, s.Raining())
}

func TestSubmit_Reset(t *testing.T) {
	in, s := newTestInterpreter(t)
	in.Submit(s, "cd projects")
	in.Submit(s, "whoami")
	in.Submit(s, "reset")

	assert.Equal(t, vfs.Root, s.Path())
	assert.Equal(t, 0, s.OutputLen())
	assert.Equal(t, 3, s.History().Len())
}

// =============================================================================
// OVERRIDES
// =============================================================================

func TestOverride_SingleUse(t *testing.T) {
	in, s := newTestInterpreter(t)

	var seen []string
	s.ArmOverride(func(input string) output.Result {
		seen = append(seen, input)
		return output.Records(output.Info("got " + input))
	})

	first := in.Submit(s, "whoami")
	assert.True(t, first.Overridden)
	assert.Equal(t, "got whoami", texts(printed(first)))

	second := in.Submit(s, "whoami")
	assert.False(t, second.Overridden)
	assert.Equal(t, "guest", texts(printed(second)))
	assert.Equal(t, []string{"whoami"}, seen)
	assert.Equal(t, 2, s.History().Len())
}

func TestOverride_LastArmedWins(t *testing.T) {
	in, s := newTestInterpreter(t)

	s.ArmOverride(func(string) output.Result { return output.Records(output.Info("first")) })
	s.ArmOverride(func(string) output.Result { return output.Records(output.Info("second")) })

	out := in.Submit(s, "anything")
	assert.Equal(t, "second", texts(printed(out)))
}

func TestOverride_CanReturnAction(t *testing.T) {
	in, s := newTestInterpreter(t)
	in.Submit(s, "about")
	s.ArmOverride(func(string) output.Result { return output.Clear() })
	out := in.Submit(s, "x")
	require.NotNil(t, out.Action)
	assert.Equal(t, output.ActionClear, out.Action.Kind)
	assert.Equal(t, 0, s.OutputLen())
}

func TestAskProjects_ChooseViewDetails(t *testing.T) {
	in, s := newTestInterpreter(t)

	out := in.Submit(s, "ask projects")
	require.True(t, s.HasOverride(), "ask projects must arm a follow-up")

	var menu *output.Rich
	for _, r := range printed(out) {
		if r.Rich != nil && r.Rich.Kind == output.RichMenu {
			menu = r.Rich
		}
	}
	require.NotNil(t, menu)
	assert.Equal(t, []output.MenuItem{
		{Number: 1, Label: "Go to Projects"},
		{Number: 2, Label: "View Details"},
	}, menu.Menu)

	out = in.Submit(s, "2")
	assert.True(t, out.Overridden)
	assert.False(t, out.Unknown)
	assert.Nil(t, out.Action)

	body := texts(printed(out))
	assert.Contains(t, body, "My Projects:")
	assert.Contains(t, body, "customer-analytics-dashboard.txt")
	assert.NotContains(t, body, "Command not found")
	assert.False(t, s.HasOverride())
}

func TestAskProjects_ChooseNavigate(t *testing.T) {
	in, s := newTestInterpreter(t)
	in.Submit(s, "ask projects")

	out := in.Submit(s, "go to projects")
	require.NotNil(t, out.Action)
	assert.Equal(t, output.ActionTransition, out.Action.Kind)
	assert.Equal(t, output.TargetProjects, out.Action.Target)
}

func TestAskProjects_InvalidChoiceCancels(t *testing.T) {
	in, s := newTestInterpreter(t)

	for _, answer := range []string{"3", "0", "maybe"} {
		in.Submit(s, "ask projects")
		out := in.Submit(s, answer)
		require.Len(t, printed(out), 1)
		assert.Equal(t, output.KindWarning, printed(out)[0].Kind)
		assert.Equal(t, fmt.Sprintf("Selection cancelled: %q is not one of the options.", answer), printed(out)[0].Text)
	}

	out := in.Submit(s, "3")
	assert.True(t, out.Unknown, "the override is gone after one use")
}

func TestAskContact_ViewDetails(t *testing.T) {
	in, s := newTestInterpreter(t)
	in.Submit(s, "ask contact")
	require.True(t, s.HasOverride())

	out := in.Submit(s, "2")
	assert.Contains(t, texts(printed(out)), "Email: ")
}

// =============================================================================
// RUN PENDING / EDITING
// =============================================================================

func TestRunPending(t *testing.T) {
	in, s := newTestInterpreter(t)

	_, ran := in.RunPending(s)
	assert.False(t, ran)

	s.SetPendingCommand("projects")
	out, ran := in.RunPending(s)
	assert.True(t, ran)
	assert.Contains(t, texts(printed(out)), "My Projects:")

	_, ran = in.RunPending(s)
	assert.False(t, ran)
}

func TestInterpreterComplete(t *testing.T) {
	in, s := newTestInterpreter(t)

	c := in.Complete(s, "ab")
	assert.Equal(t, "about", c.Input)
	assert.Equal(t, 0, s.OutputLen())

	c = in.Complete(s, "a")
	assert.Equal(t, "a", c.Input)
	require.Equal(t, 1, s.OutputLen())
	assert.Equal(t, "about  ask", s.Output()[0].Text)
	assert.Equal(t, output.KindInfo, s.Output()[0].Kind)
}

func TestHistoryBrowsing(t *testing.T) {
	in, s := newTestInterpreter(t)

	_, ok := in.HistoryUp(s)
	assert.False(t, ok)

	in.Submit(s, "ls")
	in.Submit(s, "whoami")

	line, _ := in.HistoryUp(s)
	assert.Equal(t, "whoami", line)
	line, _ = in.HistoryUp(s)
	assert.Equal(t, "ls", line)
	line, _ = in.HistoryUp(s)
	assert.Equal(t, "ls", line)

	assert.Equal(t, "whoami", in.HistoryDown(s))
	assert.Equal(t, "", in.HistoryDown(s))
	assert.Equal(t, []string{"ls", "whoami"}, s.History().Entries())

	in.HistoryUp(s)
	in.Submit(s, "ls")
	assert.Equal(t, -1, s.History().Cursor())
}
