// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// =============================================================================
// PROFILE TESTS
// =============================================================================

func TestDefaultProfile(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "palash@example.com", p.Contact.Email)
	assert.Len(t, p.Skills, 12)
	assert.Len(t, p.Interests, 3)
	assert.Len(t, p.Projects, 5)
	assert.Len(t, p.BlogPosts, 3)
	assert.Len(t, p.Certifications, 3)
	assert.Equal(t, "Customer Analytics Dashboard", p.Projects[0].Title)
	assert.Equal(t, "https://example.com/demo1", p.Projects[0].Link())
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("projectz: []\n"))
	if err == nil {
		t.Fatal("Parse accepted an unknown top-level key")
	}
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"untitled project", "projects:\n  - id: '1'\n"},
		{"duplicate project id", "projects:\n  - {id: '1', title: A}\n  - {id: '1', title: B}\n"},
		{"post without file", "blog_posts:\n  - {id: '1', title: A}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("Parse() error = %v, want ErrInvalidProfile", err)
			}
		})
	}
}

func TestProjectLinkFallsBackToCode(t *testing.T) {
	p := Project{Code: "https://github.com/x/y"}
	if got := p.Link(); got != "https://github.com/x/y" {
		t.Errorf("Link() = %q, want code URL", got)
	}
}

// =============================================================================
// BLOG LOADER TESTS
// =============================================================================

func testLoader(t *testing.T, opts ...BlogOption) *BlogLoader {
	t.Helper()
	return NewBlogLoader(MustDefault().BlogPosts, opts...)
}

func TestBlogLoader_Lookup(t *testing.T) {
	l := testLoader(t)

	tests := []struct {
		ref    string
		wantID string
	}{
		{"1", "1"},
		{"advanced-sql-techniques-for-data-analysis", "2"},
		{"building-interactive-dashboards-with-power-bi", "3"},
	}
	for _, tt := range tests {
		p, ok := l.Lookup(tt.ref)
		if !ok || p.ID != tt.wantID {
			t.Errorf("Lookup(%q) = (%q, %v), want (%q, true)", tt.ref, p.ID, ok, tt.wantID)
		}
	}

	if _, ok := l.Lookup("nope"); ok {
		t.Error("Lookup(\"nope\") found a post")
	}
}

func TestBlogLoader_LoadCachesContent(t *testing.T) {
	l := testLoader(t)

	body, err := l.Load("getting-started-with-data-science-in-python")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(body, "# Getting Started"))

	status := l.CacheStatus()
	assert.Equal(t, 1, status.Size)
	assert.Equal(t, []string{"getting-started-data-science-python.md"}, status.Keys)

	l.ClearCache()
	assert.Equal(t, 0, l.CacheStatus().Size)
}

func TestBlogLoader_LoadUnknownPost(t *testing.T) {
	_, err := testLoader(t).Load("missing")
	if !errors.Is(err, ErrPostNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrPostNotFound", err)
	}
}

func TestBlogLoader_MissingFileYieldsErrorDocument(t *testing.T) {
	l := NewBlogLoader([]BlogPost{{ID: "9", Title: "Ghost", ContentFile: "ghost.md"}},
		WithSource(fstest.MapFS{}))

	body := l.LoadContent("ghost.md")
	assert.True(t, strings.HasPrefix(body, "# Error Loading Content"))
	assert.Equal(t, 0, l.CacheStatus().Size, "failed loads must not be cached")
}

func TestBlogLoader_Queries(t *testing.T) {
	l := testLoader(t)

	assert.Len(t, l.Featured(), 3)
	assert.Len(t, l.ByCategory("SQL"), 1)
	assert.Equal(t, []string{"powerbi", "python", "sql"}, l.Categories())
	assert.Len(t, l.Search("dashboards"), 1)
	assert.Empty(t, l.Search("kubernetes"))

	post, ok := l.Post("2")
	require.True(t, ok)
	assert.Contains(t, post.Content, "Window functions")
}

func TestBlogLoader_Render(t *testing.T) {
	l := testLoader(t, WithStyle("notty"))

	out, err := l.Render("# Title\n\nSome *text*.", 60)
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "text")
}

// =============================================================================
// WATCHER TESTS
// =============================================================================

func TestWatcher_InvalidatesChangedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "post.md")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

	l := NewBlogLoader([]BlogPost{{ID: "1", Title: "Post", ContentFile: "post.md"}},
		WithSource(os.DirFS(dir)))
	require.Equal(t, "v1", l.LoadContent("post.md"))

	w, err := NewWatcher(dir, l, 20*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o600))

	require.Eventually(t, func() bool {
		return l.LoadContent("post.md") == "v2"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), testLoader(t), 0, nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
