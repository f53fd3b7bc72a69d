// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package vfs models the terminal's virtual directory tree: a root and three
// fixed subdirectories whose contents are derived from the profile.
//
// Resolve is purely syntactic. Whether the result names a real directory is
// decided by IsLegal, which the cd command consults before moving.
package vfs

import (
	"strings"

	"github.com/palash-droid/folio/internal/content"
	"github.com/palash-droid/folio/internal/util"
)

// The four legal virtual paths.
const (
	Root      = "~/"
	Projects  = "~/projects"
	Skills    = "~/skills"
	Interests = "~/interests"
)

var legal = []string{Root, Projects, Skills, Interests}

// Legal returns the legal paths in display order.
func Legal() []string {
	out := make([]string, len(legal))
	copy(out, legal)
	return out
}

// IsLegal reports whether p is one of the four legal paths.
func IsLegal(p string) bool {
	for _, l := range legal {
		if p == l {
			return true
		}
	}
	return false
}

// Resolve computes the path reached from current by target.
//
//	~        root
//	..       parent, root stays root
//	~/x      absolute, used verbatim
//	x        relative, joined onto current
func Resolve(current, target string) string {
	switch {
	case target == "~":
		return Root
	case target == "..":
		if current == Root {
			return Root
		}
		i := strings.LastIndex(current, "/")
		if i < 0 {
			return Root
		}
		parent := current[:i]
		if parent == "~" || parent == "" {
			return Root
		}
		return parent
	case strings.HasPrefix(target, "~/"):
		return target
	}

	base := current
	if current == Root {
		base = "~"
	}
	return base + "/" + target
}

// Entry is one name printed by ls.
type Entry struct {
	Name string `json:"name"`
	Dir  bool   `json:"dir"`
}

// Root file names.
const (
	AboutFile   = "about.txt"
	ContactFile = "contact.txt"
)

// List returns the contents of p. Paths outside the legal set, and legal
// directories with nothing in them, return nil.
func List(p string, prof *content.Profile) []Entry {
	switch p {
	case Root, "~":
		return []Entry{
			{Name: "projects/", Dir: true},
			{Name: "skills/", Dir: true},
			{Name: "interests/", Dir: true},
			{Name: AboutFile},
			{Name: ContactFile},
		}
	case Projects:
		out := make([]Entry, 0, len(prof.Projects))
		for _, pr := range prof.Projects {
			out = append(out, Entry{Name: ProjectFile(pr)})
		}
		return out
	case Skills:
		out := make([]Entry, 0, len(prof.Skills))
		for _, s := range prof.Skills {
			out = append(out, Entry{Name: util.Slugify(s.Name)})
		}
		return out
	case Interests:
		out := make([]Entry, 0, len(prof.Interests))
		for _, in := range prof.Interests {
			out = append(out, Entry{Name: InterestFile(in)})
		}
		return out
	}
	return nil
}

// ProjectFile is the file name a project appears under in ~/projects.
func ProjectFile(p content.Project) string {
	return util.Slugify(p.Title) + ".txt"
}

// InterestFile is the file name an interest appears under in ~/interests.
func InterestFile(i content.Interest) string {
	return util.Slugify(i.Title) + ".txt"
}
