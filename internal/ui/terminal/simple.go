// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"fmt"
	"strings"

	"github.com/palash-droid/folio/internal/content"
	"github.com/palash-droid/folio/internal/output"
)

// =============================================================================
// SIMPLE VIEW
// =============================================================================

// Section is one block of the simple presentation.
type Section struct {
	Target   output.Target
	Markdown string
}

// SimpleSections lays the profile out as markdown blocks in page order.
// The projects and contact blocks carry their transition targets.
func SimpleSections(prof *content.Profile) []Section {
	if prof == nil {
		return nil
	}
	return []Section{
		{Markdown: heroMarkdown(prof)},
		{Markdown: skillsMarkdown(prof)},
		{Target: output.TargetProjects, Markdown: projectsMarkdown(prof)},
		{Markdown: certsMarkdown(prof)},
		{Markdown: blogMarkdown(prof)},
		{Target: output.TargetContact, Markdown: contactMarkdown(prof)},
	}
}

// SimplePage is the rendered simple view with the line offset of each
// targeted section.
type SimplePage struct {
	Content string
	Offsets map[output.Target]int
}

// RenderSimple renders sections one by one so each targeted section's first
// line is known.
func RenderSimple(sections []Section, width int, md MarkdownFunc) SimplePage {
	page := SimplePage{Offsets: make(map[output.Target]int)}
	var parts []string
	line := 0
	for _, s := range sections {
		rendered := s.Markdown
		if md != nil {
			if out, err := md(s.Markdown, width); err == nil {
				rendered = out
			}
		}
		rendered = strings.Trim(rendered, "\n")
		if s.Target != output.TargetNone {
			page.Offsets[s.Target] = line
		}
		parts = append(parts, rendered)
		line += strings.Count(rendered, "\n") + 2
	}
	page.Content = strings.Join(parts, "\n\n")
	return page
}

// Offset returns where t starts, or 0 for the top of the page.
func (p SimplePage) Offset(t output.Target) int {
	return p.Offsets[t]
}

func heroMarkdown(prof *content.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n**%s**\n\n", prof.About.Name, prof.About.Title)
	if prof.About.Summary != "" {
		b.WriteString(prof.About.Summary + "\n\n")
	}
	for _, line := range strings.Split(prof.About.Bio, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			b.WriteString(line + "\n\n")
		}
	}
	if len(prof.Interests) > 0 {
		titles := make([]string, len(prof.Interests))
		for i, in := range prof.Interests {
			titles[i] = in.Title
		}
		fmt.Fprintf(&b, "*Interests:* %s\n", strings.Join(titles, " · "))
	}
	return b.String()
}

func skillsMarkdown(prof *content.Profile) string {
	var b strings.Builder
	b.WriteString("## Skills\n\n")

	var order []string
	byCategory := make(map[string][]string)
	for _, s := range prof.Skills {
		if _, seen := byCategory[s.Category]; !seen {
			order = append(order, s.Category)
		}
		byCategory[s.Category] = append(byCategory[s.Category], s.Name)
	}
	for _, cat := range order {
		fmt.Fprintf(&b, "- **%s:** %s\n", cat, strings.Join(byCategory[cat], ", "))
	}
	return b.String()
}

func projectsMarkdown(prof *content.Profile) string {
	var b strings.Builder
	b.WriteString("## Projects\n\n")
	for _, p := range prof.Projects {
		fmt.Fprintf(&b, "### %s\n\n%s\n\n", p.Title, p.Description)
		if len(p.Technologies) > 0 {
			fmt.Fprintf(&b, "*%s*\n\n", strings.Join(p.Technologies, " · "))
		}
		if p.LiveDemo != "" {
			fmt.Fprintf(&b, "[Live demo](%s)", p.LiveDemo)
			if p.Code != "" {
				b.WriteString(" · ")
			}
		}
		if p.Code != "" {
			fmt.Fprintf(&b, "[Code](%s)", p.Code)
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func certsMarkdown(prof *content.Profile) string {
	var b strings.Builder
	b.WriteString("## Certifications\n\n")
	for _, c := range prof.Certifications {
		fmt.Fprintf(&b, "- **%s**, %s (%s)\n", c.Title, c.Issuer, c.IssueDate)
	}
	return b.String()
}

func blogMarkdown(prof *content.Profile) string {
	var b strings.Builder
	b.WriteString("## Blog\n\n")
	for _, p := range prof.BlogPosts {
		fmt.Fprintf(&b, "- **%s** (%s): %s\n", p.Title, p.ReadTime, p.Excerpt)
	}
	b.WriteString("\nRead any post in the terminal with `blog <slug>`.\n")
	return b.String()
}

func contactMarkdown(prof *content.Profile) string {
	c := prof.Contact
	return fmt.Sprintf("## Contact\n\n- Email: %s\n- Phone: %s\n- Location: %s\n", c.Email, c.Phone, c.Location)
}
