// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"fmt"
	"strings"

	"github.com/palash-droid/folio/internal/content"
)

// Topic tags the subject of a knowledge entry.
type Topic string

const (
	TopicAbout          Topic = "about"
	TopicSkills         Topic = "skills"
	TopicProjects       Topic = "projects"
	TopicCertifications Topic = "certifications"
	TopicBlogs          Topic = "blogs"
	TopicContact        Topic = "contact"
	TopicHelp           Topic = "help"
	TopicExperience     Topic = "experience"
	TopicProject        Topic = "project"
)

// ChoiceAction says what picking a Choice does.
type ChoiceAction string

const (
	// ChoiceNavigate leaves the terminal for the matching section of the site.
	ChoiceNavigate ChoiceAction = "navigate"
	// ChoiceView prints the details inside the terminal.
	ChoiceView ChoiceAction = "view"
)

// Choice is one option of a follow-up menu.
type Choice struct {
	Label  string       `json:"label"`
	Action ChoiceAction `json:"action"`
	Value  string       `json:"value"`
}

// ChoiceSet is an ordered follow-up menu. Options are numbered from 1.
type ChoiceSet []Choice

// Entry is one topic the assistant can answer.
type Entry struct {
	Questions      []string
	Keywords       []string
	Answer         string
	RelatedCommand string
	Topic          Topic
	FollowUp       ChoiceSet
}

func navigateOrView(section, label string) ChoiceSet {
	return ChoiceSet{
		{Label: "Go to " + label, Action: ChoiceNavigate, Value: section},
		{Label: "View Details", Action: ChoiceView, Value: section},
	}
}

// BuildKnowledgeBase derives the entries from prof: the fixed topics first,
// then one entry per project in profile order.
func BuildKnowledgeBase(prof *content.Profile) []Entry {
	skillNames := make([]string, 0, len(prof.Skills))
	skillKeywords := []string{"skill", "skills", "stack", "tech"}
	for _, s := range prof.Skills {
		skillNames = append(skillNames, s.Name)
		skillKeywords = append(skillKeywords, strings.ToLower(s.Name))
	}

	projectTitles := make([]string, 0, len(prof.Projects))
	for _, p := range prof.Projects {
		projectTitles = append(projectTitles, p.Title)
	}

	certLines := make([]string, 0, len(prof.Certifications))
	for _, c := range prof.Certifications {
		certLines = append(certLines, fmt.Sprintf("%s (%s, %s)", c.Title, c.Issuer, c.IssueDate))
	}

	postTitles := make([]string, 0, len(prof.BlogPosts))
	for _, b := range prof.BlogPosts {
		postTitles = append(postTitles, b.Title)
	}

	kb := []Entry{
		{
			Topic:          TopicAbout,
			Questions:      []string{"who are you", "about you", "introduction", "tell me about yourself", "what is your name", "who is " + strings.ToLower(prof.About.Name)},
			Keywords:       []string{"name", "title", "role", "bio", "who", "about"},
			Answer:         fmt.Sprintf("I'm %s, a %s.\n\n%s", prof.About.Name, prof.About.Title, prof.About.Summary),
			RelatedCommand: "about",
		},
		{
			Topic:          TopicSkills,
			Questions:      []string{"skills", "tech stack", "technologies", "what do you know", "programming languages", "what are your skills"},
			Keywords:       skillKeywords,
			Answer:         "I work with the following technologies:\n\n" + bullets(skillNames),
			RelatedCommand: "cd skills",
		},
		{
			Topic:          TopicProjects,
			Questions:      []string{"projects", "work", "portfolio", "what have you built", "show me your code", "my projects", "recent work"},
			Keywords:       []string{"project", "projects", "app", "website", "github", "built", "work"},
			Answer:         "I've built several projects including:\n\n" + bullets(projectTitles) + "\n\nRun 'projects' to see details!",
			RelatedCommand: "projects",
			FollowUp:       navigateOrView("projects", "Projects"),
		},
		{
			Topic:          TopicCertifications,
			Questions:      []string{"certifications", "what certifications do you have", "are you certified", "credentials", "certificates"},
			Keywords:       []string{"certification", "certifications", "certificate", "certified", "credential", "credentials"},
			Answer:         "I hold the following certifications:\n\n" + bullets(certLines),
			RelatedCommand: "certs",
		},
		{
			Topic:          TopicBlogs,
			Questions:      []string{"blog", "what do you write about", "articles", "latest posts", "blog posts"},
			Keywords:       []string{"blog", "blogs", "post", "posts", "article", "articles", "writing"},
			Answer:         "I write about data and analytics:\n\n" + bullets(postTitles) + "\n\nRun 'blog <slug>' to read one.",
			RelatedCommand: "blog",
		},
		{
			Topic:          TopicContact,
			Questions:      []string{"contact", "email", "socials", "how to reach you", "hire you", "contact info", "phone number"},
			Keywords:       []string{"email", "github", "linkedin", "twitter", "phone", "contact", "reach", "hire"},
			Answer:         fmt.Sprintf("You can reach me at:\n• Email: %s\n• GitHub/LinkedIn: Check the contact section!", prof.Contact.Email),
			RelatedCommand: "contact-me",
			FollowUp:       navigateOrView("contact", "Contact"),
		},
		{
			Topic:          TopicHelp,
			Questions:      []string{"help", "commands", "what can you do", "guide", "features", "how to use"},
			Keywords:       []string{"help", "support", "assist", "guide", "command"},
			Answer:         "I can help you navigate! Try asking about:\n• Skills\n• Projects\n• Contact Info\n\nOr type 'help' for a command list.",
			RelatedCommand: "help",
		},
		{
			Topic:          TopicExperience,
			Questions:      []string{"experience", "job", "career", "history", "work history", "previous jobs", "how many years of experience", "work experience"},
			Keywords:       []string{"job", "work", "company", "career", "experience"},
			Answer:         "Check out my 'about' section for my full professional background.",
			RelatedCommand: "about",
		},
	}

	for _, p := range prof.Projects {
		keywords := []string{strings.ToLower(p.Title)}
		for _, tech := range p.Technologies {
			keywords = append(keywords, strings.ToLower(tech))
		}
		kb = append(kb, Entry{
			Topic: TopicProject,
			Questions: []string{
				"tell me about " + p.Title,
				"what is " + p.Title,
				p.Title + " details",
			},
			Keywords:       keywords,
			Answer:         fmt.Sprintf("%s:\n%s\n\nTech Stack:\n%s", p.Title, p.Description, bullets(p.Technologies)),
			RelatedCommand: "projects",
		})
	}

	return kb
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "• " + it
	}
	return strings.Join(lines, "\n")
}
