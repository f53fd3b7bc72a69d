// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/profile.yaml data/blog/*.md
var embedded embed.FS

// =============================================================================
// PROFILE TYPES
// =============================================================================

// About is the owner's identity block.
type About struct {
	Name    string `yaml:"name" json:"name"`
	Title   string `yaml:"title" json:"title"`
	Summary string `yaml:"summary" json:"summary"`
	Bio     string `yaml:"bio" json:"bio"`
}

// Contact holds the reachable details shown by contact.txt.
type Contact struct {
	Email    string `yaml:"email" json:"email"`
	Phone    string `yaml:"phone" json:"phone"`
	Location string `yaml:"location" json:"location"`
}

type Skill struct {
	Name     string `yaml:"name" json:"name"`
	Category string `yaml:"category" json:"category"`
}

type Interest struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon,omitempty"`
}

type Project struct {
	ID           string   `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Description  string   `yaml:"description" json:"description"`
	Technologies []string `yaml:"technologies" json:"technologies"`
	LiveDemo     string   `yaml:"live_demo" json:"liveDemo,omitempty"`
	Code         string   `yaml:"code" json:"code,omitempty"`
	Featured     bool     `yaml:"featured" json:"featured"`
}

// Link returns the live demo URL, falling back to the code URL.
func (p Project) Link() string {
	if p.LiveDemo != "" {
		return p.LiveDemo
	}
	return p.Code
}

type BlogPost struct {
	ID          string `yaml:"id" json:"id"`
	Slug        string `yaml:"slug" json:"slug"`
	Title       string `yaml:"title" json:"title"`
	Excerpt     string `yaml:"excerpt" json:"excerpt"`
	Category    string `yaml:"category" json:"category"`
	PublishDate string `yaml:"publish_date" json:"publishDate"`
	ReadTime    string `yaml:"read_time" json:"readTime"`
	Featured    bool   `yaml:"featured" json:"featured"`
	ContentFile string `yaml:"content_file" json:"contentFile"`
}

type Certification struct {
	ID         string `yaml:"id" json:"id"`
	Title      string `yaml:"title" json:"title"`
	Issuer     string `yaml:"issuer" json:"issuer"`
	IssueDate  string `yaml:"issue_date" json:"issueDate"`
	VerifyLink string `yaml:"verify_link" json:"verifyLink,omitempty"`
}

// Profile is the complete static data set. It is treated as immutable once
// loaded; callers must not modify the slices.
type Profile struct {
	About          About           `yaml:"about" json:"about"`
	Contact        Contact         `yaml:"contact" json:"contact"`
	Skills         []Skill         `yaml:"skills" json:"skills"`
	Interests      []Interest      `yaml:"interests" json:"interests"`
	Projects       []Project       `yaml:"projects" json:"projects"`
	BlogPosts      []BlogPost      `yaml:"blog_posts" json:"blogPosts"`
	Certifications []Certification `yaml:"certifications" json:"certifications"`
}

// =============================================================================
// LOADING
// =============================================================================

// ErrInvalidProfile wraps every profile validation failure.
var ErrInvalidProfile = errors.New("invalid profile")

var (
	defaultOnce    sync.Once
	defaultProfile *Profile
	defaultErr     error
)

// Default returns the profile embedded in the binary.
func Default() (*Profile, error) {
	defaultOnce.Do(func() {
		data, err := embedded.ReadFile("data/profile.yaml")
		if err != nil {
			defaultErr = fmt.Errorf("read embedded profile: %w", err)
			return
		}
		defaultProfile, defaultErr = Parse(data)
	})
	return defaultProfile, defaultErr
}

// MustDefault is Default for tests and package-level wiring.
func MustDefault() *Profile {
	p, err := Default()
	if err != nil {
		panic(err)
	}
	return p
}

// Load reads a profile from path, or returns the embedded profile when path
// is empty.
func Load(path string) (*Profile, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML profile. Unknown keys are rejected so
// typos in hand-edited profiles surface early.
func Parse(data []byte) (*Profile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Profile
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the invariants the terminal relies on: every project,
// interest and post has a title and IDs are unique within their list.
func (p *Profile) Validate() error {
	seen := make(map[string]bool)
	for i, pr := range p.Projects {
		if pr.Title == "" {
			return fmt.Errorf("%w: project %d has no title", ErrInvalidProfile, i)
		}
		if pr.ID == "" {
			continue
		}
		if seen[pr.ID] {
			return fmt.Errorf("%w: duplicate project id %q", ErrInvalidProfile, pr.ID)
		}
		seen[pr.ID] = true
	}
	for i, in := range p.Interests {
		if in.Title == "" {
			return fmt.Errorf("%w: interest %d has no title", ErrInvalidProfile, i)
		}
	}
	posts := make(map[string]bool)
	for i, bp := range p.BlogPosts {
		if bp.Title == "" || bp.ContentFile == "" {
			return fmt.Errorf("%w: blog post %d needs a title and content_file", ErrInvalidProfile, i)
		}
		if bp.ID != "" && posts[bp.ID] {
			return fmt.Errorf("%w: duplicate blog post id %q", ErrInvalidProfile, bp.ID)
		}
		posts[bp.ID] = true
	}
	return nil
}

// EmbeddedBlogFS returns the blog markdown bundled with the binary.
func EmbeddedBlogFS() fs.FS {
	sub, err := fs.Sub(embedded, "data/blog")
	if err != nil {
		// fs.Sub only fails on an invalid pattern.
		panic(err)
	}
	return sub
}
