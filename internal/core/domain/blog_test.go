package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"Simple", "Summer Sale", "summer-sale"},
		{"MixedCase", "New ARRIVALS This Week", "new-arrivals-this-week"},
		{"WhitespaceRuns", "  spaced \t out  ", "spaced-out"},
		{"Empty", "", "untitled-blog"},
		{"OnlySpaces", "   ", "untitled-blog"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.title))
		})
	}
}

func TestBlogApplyDefaults(t *testing.T) {
	t.Run("EmptyPost", func(t *testing.T) {
		var b BlogPost
		b.ApplyDefaults()

		assert.Equal(t, DefaultBlogTitle, b.Title)
		assert.Equal(t, "untitled-blog", b.Slug)
		assert.Equal(t, BlogStatusDraft, b.Status)
		assert.Equal(t, DefaultBlogAuthor, b.Author)
		assert.Equal(t, DefaultBlogTitle, b.MetaTitle)
	})

	t.Run("ExcerptFromContent", func(t *testing.T) {
		long := strings.Repeat("x", 300)
		b := BlogPost{Title: "T", Content: long}
		b.ApplyDefaults()

		assert.Len(t, b.Excerpt, 200)
		assert.Equal(t, b.Excerpt, b.MetaDescription)
	})

	t.Run("ExplicitValuesKept", func(t *testing.T) {
		b := BlogPost{
			Title:   "Care Guide",
			Slug:    "custom-slug",
			Excerpt: "short",
			Status:  BlogStatusPublished,
			Author:  "Maya",
		}
		b.ApplyDefaults()

		assert.Equal(t, "custom-slug", b.Slug)
		assert.Equal(t, "short", b.Excerpt)
		assert.Equal(t, BlogStatusPublished, b.Status)
		assert.Equal(t, "Maya", b.Author)
	})
}

func TestProductApplyDefaults(t *testing.T) {
	var p Product
	p.ApplyDefaults()

	assert.NotNil(t, p.Specifications)
	assert.NotNil(t, p.Images)
	assert.Equal(t, DefaultSupplier, p.Supplier)

	custom := Product{Supplier: "Atelier Nord"}
	custom.ApplyDefaults()
	assert.Equal(t, "Atelier Nord", custom.Supplier)
}
