// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// portfolio.go - Commands that present the profile and the assistant.
package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/palash-droid/folio/internal/assistant"
	"github.com/palash-droid/folio/internal/content"
	"github.com/palash-droid/folio/internal/output"
	"github.com/palash-droid/folio/internal/util"
	"github.com/palash-droid/folio/internal/vfs"
)

// projectColumn is the padded width of the file name column in projects.
const projectColumn = 40

// =============================================================================
// HELP / ABOUT / CONTACT
// =============================================================================

func helpCommand() *Command {
	return &Command{
		Name:        "help",
		Description: "List available commands",
		Usage:       "help [category]",
		Category:    CategorySystem,
		Handler: func(ctx *Context, args []string) output.Result {
			groups := ctx.Registry.ByCategory()
			cats := Categories
			if len(args) > 0 {
				cat, ok := findCategory(args[0])
				if !ok {
					return output.Records(
						output.Error("help: no such category: "+args[0]),
						output.Info("Categories: "+strings.Join(Categories, ", ")),
					)
				}
				cats = []string{cat}
			}

			recs := []output.Record{output.Info("Available commands:")}
			for _, cat := range cats {
				cmds := groups[cat]
				if len(cmds) == 0 {
					continue
				}
				rows := make([]output.Row, len(cmds))
				for i, c := range cmds {
					rows[i] = output.Row{Key: c.Name, Value: c.Description}
				}
				recs = append(recs, output.Warning("\n"+cat), output.Table(rows, 16))
			}
			recs = append(recs, output.Tip("\nTip: Try running \"about\" to learn more about me."))
			return output.Records(recs...)
		},
	}
}

// findCategory matches name case-insensitively against Categories.
func findCategory(name string) (string, bool) {
	for _, c := range Categories {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}

func aboutCommand() *Command {
	return &Command{
		Name:        "about",
		Description: "Display information about me",
		Usage:       "about",
		Category:    CategoryPortfolio,
		Handler: func(ctx *Context, _ []string) output.Result {
			rec, _ := catFile(vfs.Root, vfs.AboutFile, ctx.Profile)
			return output.Records(rec, output.Tip("\nTip: Check out my work by running \"projects\"."))
		},
	}
}

func contactCommand() *Command {
	return &Command{
		Name:        "contact-me",
		Aliases:     []string{"contact"},
		Description: "Show contact information",
		Usage:       "contact-me",
		Category:    CategoryPortfolio,
		Handler: func(ctx *Context, _ []string) output.Result {
			return contactDetails(ctx.Profile)
		},
	}
}

func contactDetails(prof *content.Profile) output.Output {
	return output.Records(
		output.Text(contactText(prof.Contact)),
		output.Tip("\nTip: Want to see the full site? Run \"simple\" or \"contact-me-gui\"."),
	)
}

func contactGUICommand() *Command {
	return &Command{
		Name:        "contact-me-gui",
		Description: "Go to contact section in GUI",
		Usage:       "contact-me-gui",
		Category:    CategoryPortfolio,
		Handler: func(ctx *Context, _ []string) output.Result {
			return ctx.Transition(output.TargetContact)
		},
	}
}

// =============================================================================
// PROJECTS
// =============================================================================

func projectsCommand() *Command {
	return &Command{
		Name:        "projects",
		Description: "List my projects",
		Usage:       "projects",
		Category:    CategoryPortfolio,
		Handler: func(ctx *Context, _ []string) output.Result {
			return projectList(ctx.Profile)
		},
	}
}

func projectList(prof *content.Profile) output.Output {
	lines := make([]string, len(prof.Projects))
	for i, p := range prof.Projects {
		lines[i] = util.PadRight(vfs.ProjectFile(p), projectColumn) + " - " + p.Title
	}
	return output.Records(
		output.Info("My Projects:"),
		output.Text(strings.Join(lines, "\n")),
		output.Warning("\nUse \"cat <filename>\" or \"cat <project-title>\" to see details."),
		output.Tip("Tip: Interested? Run \"contact-me\" or \"contact-me-gui\" to get in touch."),
	)
}

// =============================================================================
// ASK
// =============================================================================

func askCommand() *Command {
	return &Command{
		Name:        "ask",
		Description: "Ask the AI assistant a question",
		Usage:       "ask <question>",
		Category:    CategoryAssistant,
		Handler: func(ctx *Context, _ []string) output.Result {
			// Raw text keeps apostrophes the tokenizer would treat as quotes.
			query := ctx.RawArgs()
			if query == "" {
				return output.Records(
					output.Error("Usage: ask <question>"),
					output.Info("Example: ask what are your skills?"),
				)
			}

			if ctx.Assistant == nil {
				return output.Records(output.Error("ask: assistant unavailable"))
			}
			resp := ctx.Assistant.Process(query)
			records := []output.Record{output.Info("🤖 " + resp.Text)}

			if len(resp.Choices) > 0 {
				labels := make([]string, len(resp.Choices))
				for i, c := range resp.Choices {
					labels[i] = c.Label
				}
				records = append(records,
					output.Menu(labels),
					output.Tip(fmt.Sprintf("Reply with 1-%d to choose.", len(labels))))
				ctx.ArmOverride(choiceOverride(ctx, resp.Choices))
			}

			if resp.RelatedCommand != "" {
				records = append(records,
					output.Tip(fmt.Sprintf("Tip: Run \"%s\" for more details.", resp.RelatedCommand)))
			}
			return output.Records(records...)
		},
	}
}

// choiceOverride answers the next line of input from choices. A number
// selects by position and anything else is compared with the labels.
func choiceOverride(ctx *Context, choices assistant.ChoiceSet) func(string) output.Result {
	return func(input string) output.Result {
		choice, ok := pickChoice(choices, input)
		if !ok {
			return output.Records(output.Warning(
				fmt.Sprintf("Selection cancelled: %q is not one of the options.", input)))
		}

		switch choice.Action {
		case assistant.ChoiceNavigate:
			return output.Transition(output.Target(choice.Value))
		case assistant.ChoiceView:
			return viewDetails(ctx, choice.Value)
		}
		return output.Records(output.Warning("Unsupported choice: " + choice.Label))
	}
}

func pickChoice(choices assistant.ChoiceSet, input string) (assistant.Choice, bool) {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(choices) {
			return choices[n-1], true
		}
		return assistant.Choice{}, false
	}
	for _, c := range choices {
		if strings.EqualFold(c.Label, input) {
			return c, true
		}
	}
	return assistant.Choice{}, false
}

func viewDetails(ctx *Context, section string) output.Result {
	switch output.Target(section) {
	case output.TargetProjects:
		return projectList(ctx.Profile)
	case output.TargetContact:
		return contactDetails(ctx.Profile)
	}
	return output.Records(output.Warning("Nothing to show for " + section + "."))
}

// =============================================================================
// BLOG / CERTS
// =============================================================================

func blogCommand() *Command {
	return &Command{
		Name:        "blog",
		Description: "List blog posts or read one",
		Usage:       "blog [slug | search <words>]",
		Category:    CategoryPortfolio,
		Handler: func(ctx *Context, args []string) output.Result {
			if ctx.Blogs == nil {
				return output.Records(output.Error("blog: no posts available"))
			}
			if len(args) == 0 {
				return postList("Blog Posts:", ctx.Blogs.Posts())
			}
			if args[0] == "search" {
				query := strings.Join(args[1:], " ")
				if query == "" {
					return output.Records(output.Error("usage: blog search <words>"))
				}
				found := ctx.Blogs.Search(query)
				if len(found) == 0 {
					return output.Records(output.Warning(fmt.Sprintf("No posts match %q.", query)))
				}
				return postList("Matching posts:", found)
			}

			ref := strings.Join(args, " ")
			body, err := ctx.Blogs.Load(ref)
			if err != nil {
				return output.Records(output.Error(fmt.Sprintf("blog: %s: No such post", ref)))
			}
			return output.Records(output.Markdown(body))
		},
	}
}

func postList(heading string, posts []content.BlogPost) output.Output {
	rows := make([]output.Row, len(posts))
	for i, p := range posts {
		rows[i] = output.Row{Key: p.Slug, Value: fmt.Sprintf("%s (%s)", p.Title, p.ReadTime)}
	}
	return output.Records(
		output.Info(heading),
		output.Table(rows, projectColumn),
		output.Tip("Tip: Run \"blog <slug>\" to read a post."),
	)
}

func certsCommand() *Command {
	return &Command{
		Name:        "certs",
		Aliases:     []string{"certifications"},
		Description: "List my certifications",
		Usage:       "certs",
		Category:    CategoryPortfolio,
		Handler: func(ctx *Context, _ []string) output.Result {
			certs := ctx.Profile.Certifications
			if len(certs) == 0 {
				return output.Records(output.Tip("(empty)"))
			}
			rows := make([]output.Row, len(certs))
			for i, c := range certs {
				rows[i] = output.Row{Key: c.Title, Value: c.Issuer + ", " + c.IssueDate}
			}
			return output.Records(output.Info("Certifications:"), output.Table(rows, projectColumn))
		},
	}
}
