// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/palash-droid/folio/internal/content"
)

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	return NewProcessor(BuildKnowledgeBase(content.MustDefault()))
}

// =============================================================================
// KNOWLEDGE BASE
// =============================================================================

func TestBuildKnowledgeBase(t *testing.T) {
	prof := content.MustDefault()
	kb := BuildKnowledgeBase(prof)

	if want := 8 + len(prof.Projects); len(kb) != want {
		t.Fatalf("len(kb) = %d, want %d", len(kb), want)
	}

	last := kb[len(kb)-1]
	if last.Topic != TopicProject {
		t.Errorf("last entry topic = %q, want %q", last.Topic, TopicProject)
	}
	wantKeywords := []string{"real-time data pipeline", "python", "apache kafka", "aws", "docker"}
	if diff := cmp.Diff(wantKeywords, last.Keywords); diff != "" {
		t.Errorf("project keywords mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(last.Answer, "Tech Stack:\n• Python") {
		t.Errorf("project answer = %q, want tech stack bullets", last.Answer)
	}
}

func TestBuildKnowledgeBase_GrowsWithProjects(t *testing.T) {
	prof := *content.MustDefault()
	prof.Projects = prof.Projects[:2]
	if got := len(BuildKnowledgeBase(&prof)); got != 10 {
		t.Errorf("len(kb) with 2 projects = %d, want 10", got)
	}
}

// =============================================================================
// CLEANING
// =============================================================================

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"What are your skills?", "skills"},
		{"Tell me about the Predictive Sales Model!", "predictive sales model"},
		{"  Hello,   WORLD.  ", "hello world"},
		{"what is the", ""},
		{"ｐｒｏｊｅｃｔｓ", "projects"},
	}
	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// =============================================================================
// MATCHER
// =============================================================================

func TestTokenDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"skills", "skills", 0},
		{"skils", "skills", 1.0 / 6},
		{"abc", "xyz", 1},
		{"", "", 0},
	}
	for _, tt := range tests {
		if got := tokenDistance(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("tokenDistance(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTokenScore(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"skills", "skills", 0},
		{"skils", "skills", 0.5},
		{"react", "reach", 0.6},
		{"know", "how", 1},
		{"paris", "pairs", 1},
	}
	for _, tt := range tests {
		if got := tokenScore(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("tokenScore(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMatcher_UnrelatedTokensDoNotMatch(t *testing.T) {
	m := NewMatcher([]Entry{{Keywords: []string{"reach"}, Questions: []string{"how to reach you"}}})
	if got := m.Search("weather paris")[0].Score; got != 1 {
		t.Errorf("Search(weather paris) score = %v, want 1", got)
	}
}

func TestMatcher_WeightsAndOrdering(t *testing.T) {
	kb := []Entry{
		{Answer: "questions only", Keywords: []string{"zzzz"}, Questions: []string{"alpha"}},
		{Answer: "keywords only", Keywords: []string{"alpha"}, Questions: []string{"zzzz"}},
	}
	results := NewMatcher(kb).Search("alpha")

	if results[0].Entry.Answer != "keywords only" {
		t.Errorf("best = %q, want the keyword hit", results[0].Entry.Answer)
	}
	if math.Abs(results[0].Score-QuestionWeight) > 1e-9 {
		t.Errorf("keyword-hit score = %v, want %v", results[0].Score, QuestionWeight)
	}
	if math.Abs(results[1].Score-KeywordWeight) > 1e-9 {
		t.Errorf("question-hit score = %v, want %v", results[1].Score, KeywordWeight)
	}
}

func TestMatcher_IgnoresTokenPosition(t *testing.T) {
	m := NewMatcher([]Entry{{Questions: []string{"what have you built"}, Keywords: []string{"built"}}})
	a := m.Search("built what")[0].Score
	b := m.Search("what built")[0].Score
	if a != b {
		t.Errorf("score depends on order: %v vs %v", a, b)
	}
}

func TestMatcher_EmptyQuery(t *testing.T) {
	if got := NewMatcher(BuildKnowledgeBase(content.MustDefault())).Search(" ?! "); got != nil {
		t.Errorf("Search(punctuation) = %v, want nil", got)
	}
}

// =============================================================================
// PROCESSOR
// =============================================================================

func TestProcess_Topics(t *testing.T) {
	p := newTestProcessor(t)

	tests := []struct {
		query string
		want  Topic
	}{
		{"projects", TopicProjects},
		{"what are your skills?", TopicSkills},
		{"who are you", TopicAbout},
		{"projcts", TopicProjects},
		{"skils", TopicSkills},
		{"How can I contact you?", TopicContact},
		{"certifications", TopicCertifications},
		{"blog", TopicBlogs},
		{"tell me about Customer Analytics Dashboard", TopicProject},
	}
	for _, tt := range tests {
		resp := p.Process(tt.query)
		if !resp.Matched || resp.Topic != tt.want {
			t.Errorf("Process(%q) = topic %q matched=%v (score %.3f), want %q",
				tt.query, resp.Topic, resp.Matched, resp.Score, tt.want)
		}
	}
}

func TestProcess_ProjectsOffersChoices(t *testing.T) {
	resp := newTestProcessor(t).Process("projects")

	want := ChoiceSet{
		{Label: "Go to Projects", Action: ChoiceNavigate, Value: "projects"},
		{Label: "View Details", Action: ChoiceView, Value: "projects"},
	}
	if diff := cmp.Diff(want, resp.Choices); diff != "" {
		t.Errorf("choices mismatch (-want +got):\n%s", diff)
	}
	if resp.RelatedCommand != "projects" {
		t.Errorf("RelatedCommand = %q, want projects", resp.RelatedCommand)
	}
}

func TestProcess_Blank(t *testing.T) {
	resp := newTestProcessor(t).Process("   ")
	if resp.Text != ListeningText || resp.Matched {
		t.Errorf("Process(blank) = %+v, want listening text", resp)
	}
}

func TestProcess_Fallback(t *testing.T) {
	p := newTestProcessor(t)

	for _, q := range []string{
		"zzzzzz",
		"weather in paris",
		"what is the meaning of life",
		"do you know react",
		"pizza",
	} {
		resp := p.Process(q)
		if resp.Matched || resp.Text != FallbackText || resp.RelatedCommand != "help" {
			t.Errorf("Process(%q) = topic %q matched=%v (score %.3f), want fallback",
				q, resp.Topic, resp.Matched, resp.Score)
		}
	}
}

type stubSearcher struct {
	score float64
	got   []string
}

func (s *stubSearcher) Search(q string) []Result {
	s.got = append(s.got, q)
	return []Result{{Entry: &Entry{Answer: "stub answer"}, Score: s.score}}
}

func TestProcess_ThresholdBoundary(t *testing.T) {
	tests := []struct {
		score   float64
		matched bool
	}{
		{0, true},
		{0.6999, true},
		{AcceptThreshold, false},
		{0.7001, false},
		{1, false},
	}
	for _, tt := range tests {
		resp := NewProcessorWithSearcher(&stubSearcher{score: tt.score}).Process("anything")
		if resp.Matched != tt.matched {
			t.Errorf("score %v: Matched = %v, want %v", tt.score, resp.Matched, tt.matched)
		}
		wantText := FallbackText
		if tt.matched {
			wantText = "stub answer"
		}
		if resp.Text != wantText {
			t.Errorf("score %v: Text = %q, want %q", tt.score, resp.Text, wantText)
		}
	}
}

func TestProcess_StopwordOnlyFallsBackToRawText(t *testing.T) {
	s := &stubSearcher{score: 0}
	NewProcessorWithSearcher(s).Process("  What is the  ")

	if len(s.got) != 1 || s.got[0] != "What is the" {
		t.Errorf("searched %q, want the trimmed raw text", s.got)
	}
}

func TestReply(t *testing.T) {
	p := newTestProcessor(t)

	start := time.Now()
	resp, err := p.Reply(context.Background(), "projects", 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Error("Reply returned before the delay elapsed")
	}
	if resp.Topic != TopicProjects {
		t.Errorf("Reply topic = %q, want projects", resp.Topic)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Reply(ctx, "projects", time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("Reply(cancelled) error = %v, want context.Canceled", err)
	}
}
