// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package vfs

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/palash-droid/folio/internal/content"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		current, target, want string
	}{
		{Root, "~", Root},
		{Projects, "~", Root},
		{Root, "..", Root},
		{Projects, "..", Root},
		{"~/projects/deep", "..", Projects},
		{"~", "..", Root},
		{Root, "projects", Projects},
		{Skills, "projects", "~/skills/projects"},
		{Skills, "~/interests", Interests},
		{Root, "~/nowhere", "~/nowhere"},
		{Root, "nowhere", "~/nowhere"},
	}
	for _, tt := range tests {
		if got := Resolve(tt.current, tt.target); got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tt.current, tt.target, got, tt.want)
		}
	}
}

func TestResolve_ParentOfRootIsIdempotent(t *testing.T) {
	for _, p := range Legal() {
		once := Resolve(p, "..")
		if got := Resolve(once, ".."); got != Root {
			t.Errorf("Resolve(Resolve(%q, ..), ..) = %q, want %q", p, got, Root)
		}
		if got := Resolve(p, "~"); got != Root {
			t.Errorf("Resolve(%q, ~) = %q, want %q", p, got, Root)
		}
	}
}

// Mirrors what cd does: resolve, then move only when legal.
func TestResolve_LegalClosure(t *testing.T) {
	tokens := []string{"~", "..", "projects", "skills", "interests"}
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 200; run++ {
		path := Root
		for step := 0; step < 20; step++ {
			next := Resolve(path, tokens[rng.Intn(len(tokens))])
			if IsLegal(next) {
				path = next
			}
			if !IsLegal(path) {
				t.Fatalf("run %d step %d: path %q left the legal set", run, step, path)
			}
		}
	}
}

func TestIsLegal(t *testing.T) {
	for _, p := range []string{Root, Projects, Skills, Interests} {
		if !IsLegal(p) {
			t.Errorf("IsLegal(%q) = false, want true", p)
		}
	}
	for _, p := range []string{"~", "~/projects/", "~/skills/projects", "/", ""} {
		if IsLegal(p) {
			t.Errorf("IsLegal(%q) = true, want false", p)
		}
	}
}

func TestList(t *testing.T) {
	prof := content.MustDefault()

	root := List(Root, prof)
	wantRoot := []Entry{
		{Name: "projects/", Dir: true},
		{Name: "skills/", Dir: true},
		{Name: "interests/", Dir: true},
		{Name: "about.txt"},
		{Name: "contact.txt"},
	}
	if diff := cmp.Diff(wantRoot, root); diff != "" {
		t.Errorf("List(root) mismatch (-want +got):\n%s", diff)
	}

	projects := List(Projects, prof)
	if len(projects) != 5 || projects[0].Name != "customer-analytics-dashboard.txt" {
		t.Errorf("List(projects) = %v", projects)
	}

	skills := List(Skills, prof)
	if len(skills) != 12 || skills[2].Name != "power-bi" {
		t.Errorf("List(skills) = %v", skills)
	}

	interests := List(Interests, prof)
	if len(interests) != 3 || interests[1].Name != "ai-&-machine-learning.txt" {
		t.Errorf("List(interests) = %v", interests)
	}

	if got := List("~/nowhere", prof); got != nil {
		t.Errorf("List(~/nowhere) = %v, want nil", got)
	}
}
