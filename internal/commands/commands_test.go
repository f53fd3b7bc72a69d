// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palash-droid/folio/internal/output"
)

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantArgs []string
		wantRaw  string
	}{
		{"ls", "ls", []string{}, ""},
		{"  cd   projects  ", "cd", []string{"projects"}, "projects"},
		{"cat Customer Analytics Dashboard", "cat", []string{"Customer", "Analytics", "Dashboard"}, "Customer Analytics Dashboard"},
		{`cat "Predictive Sales Model"`, "cat", []string{"Predictive Sales Model"}, `"Predictive Sales Model"`},
		{`ask what's your stack?`, "ask", []string{"whats your stack?"}, "what's your stack?"},
		{`rm -rf \*`, "rm", []string{"-rf", "*"}, `-rf \*`},
		{"ask  ¿qué  tal?", "ask", []string{"¿qué", "tal?"}, "¿qué  tal?"},
		{"", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Parse(tt.input)
			if got.CommandName != tt.wantName {
				t.Errorf("Parse(%q).CommandName = %q, want %q", tt.input, got.CommandName, tt.wantName)
			}
			if len(got.Args) != len(tt.wantArgs) {
				t.Fatalf("Parse(%q).Args = %q, want %q", tt.input, got.Args, tt.wantArgs)
			}
			for i := range got.Args {
				if got.Args[i] != tt.wantArgs[i] {
					t.Errorf("Parse(%q).Args[%d] = %q, want %q", tt.input, i, got.Args[i], tt.wantArgs[i])
				}
			}
			if got.RawArgs != tt.wantRaw {
				t.Errorf("Parse(%q).RawArgs = %q, want %q", tt.input, got.RawArgs, tt.wantRaw)
			}
		})
	}
}

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func noop(*Context, []string) output.Result { return output.Records() }

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Command{Name: "about", Aliases: []string{"whois"}, Handler: noop}))
	require.NoError(t, r.Register(&Command{Name: "ask", Handler: noop}))

	for _, name := range []string{"about", "ABOUT", "About", "whois", "WhoIs"} {
		if c := r.Get(name); c == nil || c.Name != "about" {
			t.Errorf("Get(%q) = %v, want about", name, c)
		}
	}
	assert.Nil(t, r.Get("abo"))
	assert.Equal(t, []string{"about", "ask"}, r.Names())
}

func TestRegistry_Duplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Command{Name: "help", Aliases: []string{"h"}, Handler: noop}))

	err := r.Register(&Command{Name: "HELP", Handler: noop})
	assert.True(t, errors.Is(err, ErrDuplicateCommand), "got %v", err)

	err = r.Register(&Command{Name: "hint", Aliases: []string{"h"}, Handler: noop})
	assert.True(t, errors.Is(err, ErrDuplicateCommand), "got %v", err)

	assert.Error(t, r.Register(&Command{Name: "nohandler"}))
	assert.Equal(t, 1, r.Len())
}

func TestBuiltins_Order(t *testing.T) {
	want := []string{
		"help", "about", "projects", "contact-me", "contact-me-gui", "clear",
		"simple", "gui", "cat", "cd", "ls", "ask", "blog", "certs", "matrix",
		"matrix-rain", "rm", "sudo", "whoami", "history", "reset",
	}
	if diff := cmp.Diff(want, NewBuiltinRegistry().Names()); diff != "" {
		t.Errorf("builtin order mismatch (-want +got):\n%s", diff)
	}
}

// =============================================================================
// COMPLETION TESTS
// =============================================================================

func TestComplete_AboutAsk(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(
		&Command{Name: "about", Handler: noop},
		&Command{Name: "ask", Handler: noop},
	)
	c := NewCompleter(r)

	got := c.Complete("a")
	assert.Equal(t, CompletionAmbiguous, got.Kind)
	assert.Equal(t, "a", got.Input)
	assert.Equal(t, "about  ask", got.Listing())

	got = c.Complete("ab")
	assert.Equal(t, CompletionUnique, got.Kind)
	assert.Equal(t, "about", got.Input)

	got = c.Complete("x")
	assert.Equal(t, CompletionNone, got.Kind)
	assert.Equal(t, "x", got.Input)

	got = c.Complete("   ")
	assert.Equal(t, CompletionNone, got.Kind)
}

func TestComplete_CaseSensitive(t *testing.T) {
	c := NewCompleter(NewBuiltinRegistry())

	tests := []struct {
		input string
		kind  CompletionKind
		want  string
	}{
		{"he", CompletionUnique, "help"},
		{"HE", CompletionNone, "HE"},
		{"wh", CompletionUnique, "whoami"},
		{"matrix-", CompletionUnique, "matrix-rain"},
		{"matrix", CompletionAmbiguous, "matrix"},
		{"c", CompletionAmbiguous, "c"},
	}
	for _, tt := range tests {
		got := c.Complete(tt.input)
		if got.Kind != tt.kind || got.Input != tt.want {
			t.Errorf("Complete(%q) = (%v, %q), want (%v, %q)", tt.input, got.Kind, got.Input, tt.kind, tt.want)
		}
	}
}

func TestCompletion_ListingFromBuiltins(t *testing.T) {
	got := NewCompleter(NewBuiltinRegistry()).Complete("c")
	want := "contact-me  contact-me-gui  clear  cat  cd  certs"
	if got.Listing() != want {
		t.Errorf("Listing() = %q, want %q", got.Listing(), want)
	}
	assert.False(t, strings.Contains(got.Listing(), "contact "), "aliases must not be offered")
}
