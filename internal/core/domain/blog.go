package domain

import (
	"strings"
	"time"
	"unicode"
)

const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"

	DefaultBlogTitle  = "Untitled Blog"
	DefaultBlogAuthor = "Admin"
)

type BlogPost struct {
	ID                string
	Title             string
	Slug              string
	Content           string
	Excerpt           string
	FeaturedImageURL  string
	FeaturedImagePath string
	MetaTitle         string
	MetaDescription   string
	Status            string
	Author            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	PublishedAt       *time.Time
}

// BlogPatch is a partial blog update. Nil fields are left unchanged.
// PublishedAt is owned by the store: it is set exactly once on the
// draft-to-published transition and cannot be patched from outside.
type BlogPatch struct {
	Title             *string
	Slug              *string
	Content           *string
	Excerpt           *string
	FeaturedImageURL  *string
	FeaturedImagePath *string
	MetaTitle         *string
	MetaDescription   *string
	Status            *string
}

// ApplyDefaults fills the documented create-time defaults for fields the
// caller omitted.
func (b *BlogPost) ApplyDefaults() {
	if b.Title == "" {
		b.Title = DefaultBlogTitle
	}
	if b.Slug == "" {
		b.Slug = Slugify(b.Title)
	}
	if b.Excerpt == "" {
		b.Excerpt = truncate(b.Content, 200)
	}
	if b.MetaTitle == "" {
		b.MetaTitle = b.Title
	}
	if b.MetaDescription == "" {
		if b.Excerpt != "" {
			b.MetaDescription = b.Excerpt
		} else {
			b.MetaDescription = truncate(b.Content, 160)
		}
	}
	if b.Status == "" {
		b.Status = BlogStatusDraft
	}
	if b.Author == "" {
		b.Author = DefaultBlogAuthor
	}
}

// Slugify lowercases the title and collapses whitespace runs into hyphens.
func Slugify(title string) string {
	fields := strings.FieldsFunc(strings.ToLower(title), unicode.IsSpace)
	if len(fields) == 0 {
		return "untitled-blog"
	}
	return strings.Join(fields, "-")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
