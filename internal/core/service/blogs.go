package service

import (
	"context"
	"fmt"

	"github.com/babisha/storefront-admin/internal/core/domain"
)

func (s *Service) ListBlogs(ctx context.Context) ([]domain.BlogPost, error) {
	const op = "Service.ListBlogs"

	blogs, err := s.store.ListBlogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return blogs, nil
}

func (s *Service) ListPublishedBlogs(ctx context.Context) ([]domain.BlogPost, error) {
	const op = "Service.ListPublishedBlogs"

	blogs, err := s.store.ListBlogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	published := make([]domain.BlogPost, 0, len(blogs))
	for _, b := range blogs {
		if b.Status == domain.BlogStatusPublished {
			published = append(published, b)
		}
	}
	return published, nil
}

func (s *Service) GetBlog(ctx context.Context, id string) (domain.BlogPost, error) {
	const op = "Service.GetBlog"

	b, err := s.store.GetBlog(ctx, id)
	if err != nil {
		return domain.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

// PublishedBlogBySlug hides drafts from the public catalog: an existing
// draft reads as absent.
func (s *Service) PublishedBlogBySlug(ctx context.Context, slug string) (domain.BlogPost, error) {
	const op = "Service.PublishedBlogBySlug"

	b, err := s.store.GetBlogBySlug(ctx, slug)
	if err != nil {
		return domain.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}
	if b.Status != domain.BlogStatusPublished {
		return domain.BlogPost{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return b, nil
}

func (s *Service) CreateBlog(
	ctx context.Context, b domain.BlogPost, featured *domain.FileUpload,
) (domain.BlogPost, error) {
	const op = "Service.CreateBlog"

	if featured != nil {
		stored, err := s.upload(ctx, []domain.FileUpload{*featured}, domain.CategoryBlogs)
		if err != nil {
			return domain.BlogPost{}, fmt.Errorf("%s: %w", op, err)
		}
		b.FeaturedImageURL = stored[0].URL
		b.FeaturedImagePath = stored[0].Path
	}

	created, err := s.store.CreateBlog(ctx, b)
	if err != nil {
		return domain.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// UpdateBlog merges the patch; a new featured image replaces the old one,
// whose binary is deleted best effort.
func (s *Service) UpdateBlog(
	ctx context.Context, id string, patch domain.BlogPatch, featured *domain.FileUpload,
) (domain.BlogPost, error) {
	const op = "Service.UpdateBlog"

	if featured != nil {
		existing, err := s.store.GetBlog(ctx, id)
		if err != nil {
			return domain.BlogPost{}, fmt.Errorf("%s: %w", op, err)
		}

		stored, err := s.upload(ctx, []domain.FileUpload{*featured}, domain.CategoryBlogs)
		if err != nil {
			return domain.BlogPost{}, fmt.Errorf("%s: %w", op, err)
		}

		s.removeImage(ctx, existing.FeaturedImagePath)
		patch.FeaturedImageURL = &stored[0].URL
		patch.FeaturedImagePath = &stored[0].Path
	}

	updated, err := s.store.UpdateBlog(ctx, id, patch)
	if err != nil {
		return domain.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

func (s *Service) DeleteBlog(ctx context.Context, id string) error {
	const op = "Service.DeleteBlog"

	b, err := s.store.GetBlog(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.DeleteBlog(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.removeImage(ctx, b.FeaturedImagePath)
	return nil
}
