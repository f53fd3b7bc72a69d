// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package content

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/palash-droid/folio/internal/util"
)

// ErrPostNotFound is returned when no post matches an id, slug or title.
var ErrPostNotFound = errors.New("blog post not found")

// PostWithContent is a post's metadata plus its markdown body.
type PostWithContent struct {
	BlogPost
	Content string `json:"content"`
}

// CacheStatus reports what the content cache currently holds.
type CacheStatus struct {
	Size int      `json:"size"`
	Keys []string `json:"keys"`
}

// BlogLoader resolves posts and loads their markdown bodies from a file
// system, caching bodies by content file name.
type BlogLoader struct {
	posts  []BlogPost
	src    fs.FS
	cache  *cache.Cache
	logger *zap.Logger

	rmu       sync.Mutex
	style     string
	renderers map[int]*glamour.TermRenderer
}

// BlogOption configures a BlogLoader.
type BlogOption func(*BlogLoader)

// WithSource reads content files from fsys instead of the embedded bundle.
func WithSource(fsys fs.FS) BlogOption {
	return func(l *BlogLoader) { l.src = fsys }
}

// WithCacheTTL expires cached bodies after ttl. Zero keeps them until
// invalidated.
func WithCacheTTL(ttl time.Duration) BlogOption {
	return func(l *BlogLoader) {
		if ttl > 0 {
			l.cache = cache.New(ttl, 2*ttl)
		}
	}
}

func WithLogger(logger *zap.Logger) BlogOption {
	return func(l *BlogLoader) { l.logger = logger }
}

// WithStyle selects the glamour style: "auto" (default), "dark", "light" or "notty".
func WithStyle(style string) BlogOption {
	return func(l *BlogLoader) { l.style = style }
}

// NewBlogLoader creates a loader over posts.
func NewBlogLoader(posts []BlogPost, opts ...BlogOption) *BlogLoader {
	l := &BlogLoader{
		posts:     posts,
		src:       EmbeddedBlogFS(),
		cache:     cache.New(cache.NoExpiration, 0),
		logger:    zap.NewNop(),
		style:     "auto",
		renderers: make(map[int]*glamour.TermRenderer),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// =============================================================================
// CONTENT
// =============================================================================

// LoadContent returns the markdown body of contentFile. A file that cannot
// be read yields an error document instead of an error, and is not cached.
func (l *BlogLoader) LoadContent(contentFile string) string {
	if v, ok := l.cache.Get(contentFile); ok {
		return v.(string)
	}

	data, err := fs.ReadFile(l.src, contentFile)
	if err != nil {
		l.logger.Warn("blog content load failed",
			zap.String("file", contentFile),
			zap.Error(err))
		return errorDocument(err)
	}

	body := string(data)
	l.cache.Set(contentFile, body, cache.DefaultExpiration)
	return body
}

func errorDocument(err error) string {
	return "# Error Loading Content\n\n" +
		"Sorry, we couldn't load the blog content. Please try again later.\n\n" +
		"**Error Details:** " + err.Error()
}

// Lookup finds a post whose id, slug or strict slugified title equals ref.
func (l *BlogLoader) Lookup(ref string) (BlogPost, bool) {
	for _, p := range l.posts {
		if p.ID == ref || p.Slug == ref || util.SlugifyStrict(p.Title) == ref {
			return p, true
		}
	}
	return BlogPost{}, false
}

// Load returns the body of the post addressed by ref.
func (l *BlogLoader) Load(ref string) (string, error) {
	p, ok := l.Lookup(ref)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrPostNotFound, ref)
	}
	return l.LoadContent(p.ContentFile), nil
}

// Post returns the post with the given id and its body.
func (l *BlogLoader) Post(id string) (*PostWithContent, bool) {
	for _, p := range l.posts {
		if p.ID == id {
			return &PostWithContent{BlogPost: p, Content: l.LoadContent(p.ContentFile)}, true
		}
	}
	return nil, false
}

// Invalidate drops a cached body so the next load rereads it.
func (l *BlogLoader) Invalidate(contentFile string) {
	l.cache.Delete(contentFile)
}

func (l *BlogLoader) ClearCache() {
	l.cache.Flush()
}

func (l *BlogLoader) CacheStatus() CacheStatus {
	items := l.cache.Items()
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return CacheStatus{Size: len(keys), Keys: keys}
}

// =============================================================================
// METADATA QUERIES
// =============================================================================

func (l *BlogLoader) Posts() []BlogPost {
	return l.posts
}

func (l *BlogLoader) Featured() []BlogPost {
	var out []BlogPost
	for _, p := range l.posts {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// ByCategory matches category case-insensitively.
func (l *BlogLoader) ByCategory(category string) []BlogPost {
	var out []BlogPost
	for _, p := range l.posts {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct categories, sorted.
func (l *BlogLoader) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range l.posts {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Search returns posts whose title or excerpt contains query, ignoring case.
func (l *BlogLoader) Search(query string) []BlogPost {
	q := strings.ToLower(query)
	var out []BlogPost
	for _, p := range l.posts {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Excerpt), q) {
			out = append(out, p)
		}
	}
	return out
}

// =============================================================================
// RENDERING
// =============================================================================

// Render formats markdown for a terminal of the given width. When glamour
// fails the raw markdown is returned along with the error.
func (l *BlogLoader) Render(markdown string, width int) (string, error) {
	r, err := l.renderer(width)
	if err != nil {
		return markdown, err
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown, fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimRight(out, "\n"), nil
}

func (l *BlogLoader) renderer(width int) (*glamour.TermRenderer, error) {
	if width <= 0 {
		width = 80
	}

	l.rmu.Lock()
	defer l.rmu.Unlock()

	if r, ok := l.renderers[width]; ok {
		return r, nil
	}

	styleOpt := glamour.WithAutoStyle()
	if l.style != "" && l.style != "auto" {
		styleOpt = glamour.WithStandardStyle(l.style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	l.renderers[width] = r
	return r, nil
}
