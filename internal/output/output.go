// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package output defines what a terminal command produces: display records
// and the closed Result union of either records or one control action.
//
// Records always carry a plain-text form so batch and websocket clients can
// print them; hosts that can do better render the optional Rich payload.
package output

import (
	"strconv"
	"strings"

	"github.com/palash-droid/folio/internal/util"
)

// =============================================================================
// RECORDS
// =============================================================================

// Kind classifies a record for styling.
type Kind string

const (
	KindText    Kind = "text"
	KindError   Kind = "error"
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindRich    Kind = "rich"
)

// Record is one entry of a session's output log.
type Record struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
	Rich *Rich  `json:"rich,omitempty"`
	// Muted marks hints and tips the host may render dimmed.
	Muted bool `json:"muted,omitempty"`
	// Echo marks the prompt line repeating a submitted command.
	Echo bool `json:"echo,omitempty"`
}

// PromptSymbol separates the path from the command in an echoed line.
const PromptSymbol = "❯"

// EchoLine repeats a submitted line after its prompt.
func EchoLine(path, line string) Record {
	return Record{Kind: KindText, Text: path + " " + PromptSymbol + " " + line, Echo: true}
}

func Text(s string) Record    { return Record{Kind: KindText, Text: s} }
func Error(s string) Record   { return Record{Kind: KindError, Text: s} }
func Success(s string) Record { return Record{Kind: KindSuccess, Text: s} }
func Info(s string) Record    { return Record{Kind: KindInfo, Text: s} }
func Warning(s string) Record { return Record{Kind: KindWarning, Text: s} }

// Tip is a muted info record.
func Tip(s string) Record { return Record{Kind: KindInfo, Text: s, Muted: true} }

// RichKind says which Rich field is populated.
type RichKind string

const (
	RichListing  RichKind = "listing"
	RichCard     RichKind = "card"
	RichMenu     RichKind = "menu"
	RichTable    RichKind = "table"
	RichMarkdown RichKind = "markdown"
)

// Rich is structured content. Exactly the field named by Kind is set.
type Rich struct {
	Kind     RichKind   `json:"kind"`
	Listing  []ListItem `json:"listing,omitempty"`
	Card     *Card      `json:"card,omitempty"`
	Menu     []MenuItem `json:"menu,omitempty"`
	Table    []Row      `json:"table,omitempty"`
	Markdown string     `json:"markdown,omitempty"`
}

// ListItem is a name printed by ls.
type ListItem struct {
	Name string `json:"name"`
	Dir  bool   `json:"dir"`
}

// Card shows one item such as a project.
type Card struct {
	Title  string `json:"title"`
	Fields []Row  `json:"fields,omitempty"`
	Body   string `json:"body,omitempty"`
	Link   string `json:"link,omitempty"`
}

// MenuItem is a numbered option of a follow-up menu.
type MenuItem struct {
	Number int    `json:"number"`
	Label  string `json:"label"`
}

// Row is a key/value pair.
type Row struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Listing builds a rich ls record. Its text form separates names by two spaces.
func Listing(items []ListItem) Record {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return Record{
		Kind: KindRich,
		Text: strings.Join(names, "  "),
		Rich: &Rich{Kind: RichListing, Listing: items},
	}
}

// CardRecord builds a rich record for c.
func CardRecord(c Card) Record {
	var b strings.Builder
	b.WriteString(c.Title)
	for _, f := range c.Fields {
		b.WriteString("\n" + f.Key + ": " + f.Value)
	}
	if c.Body != "" {
		b.WriteString("\n" + c.Body)
	}
	if c.Link != "" {
		b.WriteString("\nLink: " + c.Link)
	}
	return Record{Kind: KindRich, Text: b.String(), Rich: &Rich{Kind: RichCard, Card: &c}}
}

// Menu builds a numbered option list.
func Menu(labels []string) Record {
	items := make([]MenuItem, len(labels))
	lines := make([]string, len(labels))
	for i, l := range labels {
		items[i] = MenuItem{Number: i + 1, Label: l}
		lines[i] = strconv.Itoa(i+1) + ". " + l
	}
	return Record{
		Kind: KindRich,
		Text: strings.Join(lines, "\n"),
		Rich: &Rich{Kind: RichMenu, Menu: items},
	}
}

// Table builds a two-column record; width pads the key column of the text form.
func Table(rows []Row, width int) Record {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = util.PadRight(r.Key, width) + " " + r.Value
	}
	return Record{
		Kind: KindRich,
		Text: strings.Join(lines, "\n"),
		Rich: &Rich{Kind: RichTable, Table: rows},
	}
}

// Markdown wraps a markdown document; its text form is the source.
func Markdown(md string) Record {
	return Record{Kind: KindRich, Text: md, Rich: &Rich{Kind: RichMarkdown, Markdown: md}}
}

// =============================================================================
// RESULT UNION
// =============================================================================

// Result is what a handler returns: either Output or Action, never both.
type Result interface {
	isResult()
}

// Output appends records to the log.
type Output struct {
	Records []Record
}

func (Output) isResult() {}

// Records wraps records as an Output result.
func Records(rs ...Record) Output {
	return Output{Records: rs}
}

// ActionKind enumerates the control actions.
type ActionKind string

const (
	// ActionClear empties the output log.
	ActionClear ActionKind = "clear"
	// ActionSwitchMode leaves the terminal for the simple presentation.
	ActionSwitchMode ActionKind = "switch_mode"
	// ActionTransition plays the rain effect, then goes to Target.
	ActionTransition ActionKind = "transition"
)

// Target names where a transition leads.
type Target string

const (
	TargetNone     Target = ""
	TargetSimple   Target = "simple"
	TargetProjects Target = "projects"
	TargetContact  Target = "contact"
	// TargetRain is purely decorative: the terminal stays in place.
	TargetRain Target = "rain"
)

// Action is a control effect with no output.
type Action struct {
	Kind   ActionKind `json:"kind"`
	Target Target     `json:"target,omitempty"`
}

func (Action) isResult() {}

func Clear() Action      { return Action{Kind: ActionClear} }
func SwitchMode() Action { return Action{Kind: ActionSwitchMode} }

func Transition(t Target) Action {
	return Action{Kind: ActionTransition, Target: t}
}
