package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/google/uuid"
)

const blogColumns = `
	id, title, slug, content, excerpt, featured_image_url,
	featured_image_path, meta_title, meta_description, status, author,
	created_at, updated_at, published_at`

func (s *Store) ListBlogs(ctx context.Context) ([]domain.BlogPost, error) {
	const op = "Store.ListBlogs"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT` + blogColumns + `
		FROM blogs ORDER BY created_at DESC;`

	rows, err := s.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	var blogs []domain.BlogPost
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, mapErr(op, err)
		}
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(op, err)
	}
	return blogs, nil
}

func (s *Store) GetBlog(ctx context.Context, id string) (domain.BlogPost, error) {
	const op = "Store.GetBlog"
	return s.findBlog(ctx, op, `WHERE id = $1`, id)
}

func (s *Store) GetBlogBySlug(ctx context.Context, slug string) (domain.BlogPost, error) {
	const op = "Store.GetBlogBySlug"
	return s.findBlog(ctx, op, `WHERE slug = $1`, slug)
}

func (s *Store) findBlog(
	ctx context.Context, op, where string, arg any,
) (domain.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return domain.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT` + blogColumns + `
		FROM blogs ` + where + `;`

	b, err := scanBlog(s.sqldb.QueryRowContext(ctx, query, arg))
	if err != nil {
		return domain.BlogPost{}, mapErr(op, err)
	}
	return b, nil
}

func (s *Store) CreateBlog(ctx context.Context, b domain.BlogPost) (domain.BlogPost, error) {
	const op = "Store.CreateBlog"

	if err := ctx.Err(); err != nil {
		return domain.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}

	b.ApplyDefaults()
	b.ID = uuid.NewString()

	var publishedAt *time.Time
	if b.Status == domain.BlogStatusPublished {
		now := time.Now().UTC()
		publishedAt = &now
	}

	query := `
		INSERT INTO blogs (
			id, title, slug, content, excerpt, featured_image_url,
			featured_image_path, meta_title, meta_description, status,
			author, published_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at, published_at;`

	err := s.sqldb.QueryRowContext(ctx, query,
		b.ID, b.Title, b.Slug, b.Content, b.Excerpt,
		nullableStr(b.FeaturedImageURL), nullableStr(b.FeaturedImagePath),
		b.MetaTitle, b.MetaDescription, b.Status, b.Author, publishedAt,
	).Scan(&b.CreatedAt, &b.UpdatedAt, &b.PublishedAt)
	if err != nil {
		return domain.BlogPost{}, mapErr(op, err)
	}
	return b, nil
}

func (s *Store) UpdateBlog(
	ctx context.Context, id string, patch domain.BlogPatch,
) (domain.BlogPost, error) {
	const op = "Store.UpdateBlog"

	if err := ctx.Err(); err != nil {
		return domain.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}

	// published_at is written exactly once, on the draft-to-published
	// transition, and never reset.
	query := `
		UPDATE blogs SET
			title = COALESCE($1, title),
			slug = COALESCE($2, slug),
			content = COALESCE($3, content),
			excerpt = COALESCE($4, excerpt),
			featured_image_url = COALESCE($5, featured_image_url),
			featured_image_path = COALESCE($6, featured_image_path),
			meta_title = COALESCE($7, meta_title),
			meta_description = COALESCE($8, meta_description),
			status = COALESCE($9, status),
			published_at = CASE
				WHEN $9 = 'published' AND status = 'draft' AND published_at IS NULL
					THEN CURRENT_TIMESTAMP
				ELSE published_at
			END,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $10
		RETURNING` + blogColumns + `;`

	b, err := scanBlog(s.sqldb.QueryRowContext(ctx, query,
		patch.Title, patch.Slug, patch.Content, patch.Excerpt,
		patch.FeaturedImageURL, patch.FeaturedImagePath,
		patch.MetaTitle, patch.MetaDescription, patch.Status, id,
	))
	if err != nil {
		return domain.BlogPost{}, mapErr(op, err)
	}
	return b, nil
}

func (s *Store) DeleteBlog(ctx context.Context, id string) error {
	const op = "Store.DeleteBlog"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.sqldb.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1;`, id)
	if err != nil {
		return mapErr(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapErr(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

func scanBlog(row rowScanner) (domain.BlogPost, error) {
	var b domain.BlogPost
	var imgURL, imgPath *string
	err := row.Scan(
		&b.ID, &b.Title, &b.Slug, &b.Content, &b.Excerpt,
		&imgURL, &imgPath, &b.MetaTitle, &b.MetaDescription,
		&b.Status, &b.Author, &b.CreatedAt, &b.UpdatedAt, &b.PublishedAt,
	)
	if err != nil {
		return domain.BlogPost{}, err
	}
	if imgURL != nil {
		b.FeaturedImageURL = *imgURL
	}
	if imgPath != nil {
		b.FeaturedImagePath = *imgPath
	}
	return b, nil
}

func nullableStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
