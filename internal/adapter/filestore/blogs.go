package filestore

import (
	"context"
	"fmt"
	"time"

	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/google/uuid"
)

// The file backend does not enforce slug uniqueness; duplicate slugs are
// accepted and lookups return the first match.
type blogRecord struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Slug              string     `json:"slug"`
	Content           string     `json:"content"`
	Excerpt           string     `json:"excerpt"`
	FeaturedImageURL  string     `json:"featuredImageUrl,omitempty"`
	FeaturedImagePath string     `json:"featuredImagePath,omitempty"`
	MetaTitle         string     `json:"metaTitle"`
	MetaDescription   string     `json:"metaDescription"`
	Status            string     `json:"status"`
	Author            string     `json:"author"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	PublishedAt       *time.Time `json:"publishedAt"`
}

func (s *FileStore) ListBlogs(ctx context.Context) ([]domain.BlogPost, error) {
	const op = "FileStore.ListBlogs"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readBlogs()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	blogs := make([]domain.BlogPost, len(records))
	for i, r := range records {
		blogs[i] = domain.BlogPost(r)
	}
	return blogs, nil
}

func (s *FileStore) GetBlog(ctx context.Context, id string) (domain.BlogPost, error) {
	const op = "FileStore.GetBlog"
	return s.findBlog(ctx, op, func(r blogRecord) bool { return r.ID == id })
}

func (s *FileStore) GetBlogBySlug(ctx context.Context, slug string) (domain.BlogPost, error) {
	const op = "FileStore.GetBlogBySlug"
	return s.findBlog(ctx, op, func(r blogRecord) bool { return r.Slug == slug })
}

func (s *FileStore) findBlog(
	ctx context.Context, op string, match func(blogRecord) bool,
) (domain.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return domain.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readBlogs()
	if err != nil {
		return domain.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}

	for _, r := range records {
		if match(r) {
			return domain.BlogPost(r), nil
		}
	}
	return domain.BlogPost{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
}

func (s *FileStore) CreateBlog(ctx context.Context, b domain.BlogPost) (domain.BlogPost, error) {
	const op = "FileStore.CreateBlog"

	if err := ctx.Err(); err != nil {
		return domain.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readBlogs()
	if err != nil {
		return domain.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}

	b.ApplyDefaults()
	b.ID = uuid.NewString()
	now := s.now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.Status == domain.BlogStatusPublished {
		b.PublishedAt = &now
	} else {
		b.PublishedAt = nil
	}

	records = append(records, blogRecord(b))
	if err := s.writeCollection(blogsFile, records); err != nil {
		return domain.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

func (s *FileStore) UpdateBlog(
	ctx context.Context, id string, patch domain.BlogPatch,
) (domain.BlogPost, error) {
	const op = "FileStore.UpdateBlog"

	if err := ctx.Err(); err != nil {
		return domain.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readBlogs()
	if err != nil {
		return domain.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}

	for i, r := range records {
		if r.ID != id {
			continue
		}
		b := domain.BlogPost(r)
		wasDraft := b.Status == domain.BlogStatusDraft
		applyBlogPatch(&b, patch)
		now := s.now().UTC()
		b.UpdatedAt = now
		// publishedAt is set exactly once, at the draft-to-published
		// transition.
		if wasDraft && b.Status == domain.BlogStatusPublished && b.PublishedAt == nil {
			b.PublishedAt = &now
		}
		records[i] = blogRecord(b)
		if err := s.writeCollection(blogsFile, records); err != nil {
			return domain.BlogPost{}, fmt.Errorf("%s: %w", op, err)
		}
		return b, nil
	}
	return domain.BlogPost{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
}

func (s *FileStore) DeleteBlog(ctx context.Context, id string) error {
	const op = "FileStore.DeleteBlog"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readBlogs()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	kept := records[:0]
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	if err := s.writeCollection(blogsFile, kept); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *FileStore) readBlogs() ([]blogRecord, error) {
	var records []blogRecord
	if err := s.readCollection(blogsFile, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func applyBlogPatch(b *domain.BlogPost, patch domain.BlogPatch) {
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Slug != nil {
		b.Slug = *patch.Slug
	}
	if patch.Content != nil {
		b.Content = *patch.Content
	}
	if patch.Excerpt != nil {
		b.Excerpt = *patch.Excerpt
	}
	if patch.FeaturedImageURL != nil {
		b.FeaturedImageURL = *patch.FeaturedImageURL
	}
	if patch.FeaturedImagePath != nil {
		b.FeaturedImagePath = *patch.FeaturedImagePath
	}
	if patch.MetaTitle != nil {
		b.MetaTitle = *patch.MetaTitle
	}
	if patch.MetaDescription != nil {
		b.MetaDescription = *patch.MetaDescription
	}
	if patch.Status != nil {
		b.Status = *patch.Status
	}
}
