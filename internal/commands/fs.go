// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// fs.go - ls, cd and cat over the virtual directory tree.
package commands

import (
	"fmt"
	"strings"

	"github.com/palash-droid/folio/internal/content"
	"github.com/palash-droid/folio/internal/output"
	"github.com/palash-droid/folio/internal/util"
	"github.com/palash-droid/folio/internal/vfs"
)

func lsCommand() *Command {
	return &Command{
		Name:        "ls",
		Description: "List directory contents",
		Usage:       "ls",
		Category:    CategoryFilesystem,
		Handler: func(ctx *Context, _ []string) output.Result {
			return output.Records(listing(ctx.Path(), ctx.Profile))
		},
	}
}

// listing renders the contents of p, or "(empty)".
func listing(p string, prof *content.Profile) output.Record {
	entries := vfs.List(p, prof)
	if len(entries) == 0 {
		return output.Tip("(empty)")
	}
	items := make([]output.ListItem, len(entries))
	for i, e := range entries {
		items[i] = output.ListItem{Name: e.Name, Dir: e.Dir}
	}
	return output.Listing(items)
}

func cdCommand() *Command {
	return &Command{
		Name:        "cd",
		Description: "Change directory",
		Usage:       "cd <dir>",
		Category:    CategoryFilesystem,
		Handler: func(ctx *Context, _ []string) output.Result {
			words := strings.Fields(ctx.RawArgs())
			if len(words) == 0 {
				return output.Records(output.Info(ctx.Path()))
			}
			target := words[0]
			next := vfs.Resolve(ctx.Path(), target)
			if !vfs.IsLegal(next) {
				return output.Records(output.Error("cd: no such file or directory: " + target))
			}
			ctx.SetPath(next)
			return output.Records(listing(next, ctx.Profile))
		},
	}
}

func catCommand() *Command {
	return &Command{
		Name:        "cat",
		Description: "View file content",
		Usage:       "cat <file>",
		Category:    CategoryFilesystem,
		Handler: func(ctx *Context, _ []string) output.Result {
			target := catTarget(ctx.RawArgs())
			if target == "" {
				return output.Records(output.Error("usage: cat <file>"))
			}
			if rec, ok := catFile(ctx.Path(), target, ctx.Profile); ok {
				return output.Records(rec)
			}
			return output.Records(output.Error(fmt.Sprintf("cat: %s: No such file or directory", target)))
		},
	}
}

// catTarget rejoins the whitespace-split arguments with single spaces and
// drops one pair of matching surrounding quotes. Apostrophes, backslashes
// and unbalanced quotes are kept as typed.
func catTarget(raw string) string {
	t := strings.Join(strings.Fields(raw), " ")
	if len(t) >= 2 && (t[0] == '"' || t[0] == '\'') && t[len(t)-1] == t[0] {
		t = strings.TrimSpace(t[1 : len(t)-1])
	}
	return t
}

// catFile looks target up in the domains visible from path: root files,
// then projects, then interests.
func catFile(path, target string, prof *content.Profile) (output.Record, bool) {
	atRoot := path == vfs.Root || path == "~"

	if atRoot {
		switch target {
		case vfs.AboutFile:
			return output.Text(prof.About.Bio), true
		case vfs.ContactFile:
			return output.Text(contactText(prof.Contact)), true
		}
	}

	if atRoot || path == vfs.Projects {
		if p, ok := findProject(prof.Projects, target); ok {
			return projectCard(p), true
		}
	}

	if path == vfs.Interests {
		for _, in := range prof.Interests {
			if vfs.InterestFile(in) == target {
				return output.Text(fmt.Sprintf("Title: %s\nDescription: %s", in.Title, in.Description)), true
			}
		}
	}

	return output.Record{}, false
}

// findProject matches target case-insensitively against each project's
// title, slug and file name. The first project in list order wins.
func findProject(projects []content.Project, target string) (content.Project, bool) {
	want := strings.ToLower(target)
	for _, p := range projects {
		title := strings.ToLower(p.Title)
		slug := util.Slugify(p.Title)
		if want == title || want == slug || want == slug+".txt" {
			return p, true
		}
	}
	return content.Project{}, false
}

func contactText(c content.Contact) string {
	return fmt.Sprintf("Email: %s\nPhone: %s\nLocation: %s", c.Email, c.Phone, c.Location)
}

func projectCard(p content.Project) output.Record {
	return output.CardRecord(output.Card{
		Title:  p.Title,
		Fields: []output.Row{{Key: "Technologies", Value: strings.Join(p.Technologies, ", ")}},
		Body:   p.Description,
		Link:   p.Link(),
	})
}
