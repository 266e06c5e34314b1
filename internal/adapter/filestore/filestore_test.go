package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateAppliesDefaults", func(t *testing.T) {
		s := newTestStore(t)

		created, err := s.CreateProduct(ctx, domain.Product{
			Name:  "Evening Dress",
			Price: 129.99,
		})
		require.NoError(t, err)

		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Evening Dress", created.Name)
		assert.Equal(t, domain.DefaultSupplier, created.Supplier)
		assert.NotNil(t, created.Specifications)
		assert.Empty(t, created.Specifications)
		assert.NotNil(t, created.Images)
		assert.Empty(t, created.Images)
		assert.Zero(t, created.Stock)
		assert.False(t, created.CreatedAt.IsZero())

		got, err := s.GetProduct(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("ListKeepsInsertionOrder", func(t *testing.T) {
		s := newTestStore(t)

		first, err := s.CreateProduct(ctx, domain.Product{Name: "First"})
		require.NoError(t, err)
		second, err := s.CreateProduct(ctx, domain.Product{Name: "Second"})
		require.NoError(t, err)

		products, err := s.ListProducts(ctx)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, first.ID, products[0].ID)
		assert.Equal(t, second.ID, products[1].ID)
	})

	t.Run("PartialUpdateLeavesOtherFields", func(t *testing.T) {
		s := newTestStore(t)

		created, err := s.CreateProduct(ctx, domain.Product{
			Name:     "Silk Scarf",
			Category: "accessories",
			Price:    49.90,
			Stock:    7,
			IsActive: true,
		})
		require.NoError(t, err)

		newPrice := 39.90
		updated, err := s.UpdateProduct(ctx, created.ID, domain.ProductPatch{
			Price: &newPrice,
		})
		require.NoError(t, err)

		assert.Equal(t, newPrice, updated.Price)
		assert.Equal(t, "Silk Scarf", updated.Name)
		assert.Equal(t, "accessories", updated.Category)
		assert.Equal(t, 7, updated.Stock)
		assert.True(t, updated.IsActive)
	})

	t.Run("UpdateUnknownID", func(t *testing.T) {
		s := newTestStore(t)

		name := "anything"
		_, err := s.UpdateProduct(ctx, "no-such-id", domain.ProductPatch{Name: &name})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		s := newTestStore(t)

		created, err := s.CreateProduct(ctx, domain.Product{Name: "Gone Soon"})
		require.NoError(t, err)

		require.NoError(t, s.DeleteProduct(ctx, created.ID))

		_, err = s.GetProduct(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		err = s.DeleteProduct(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("EmptyDirIsEmptyList", func(t *testing.T) {
		s := newTestStore(t)

		products, err := s.ListProducts(ctx)
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestBlogs(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateAppliesDefaults", func(t *testing.T) {
		s := newTestStore(t)

		created, err := s.CreateBlog(ctx, domain.BlogPost{
			Title:   "Summer Sale",
			Content: "Everything must go.",
		})
		require.NoError(t, err)

		assert.Equal(t, "summer-sale", created.Slug)
		assert.Equal(t, domain.BlogStatusDraft, created.Status)
		assert.Equal(t, domain.DefaultBlogAuthor, created.Author)
		assert.Equal(t, "Everything must go.", created.Excerpt)
		assert.Equal(t, "Summer Sale", created.MetaTitle)
		assert.Nil(t, created.PublishedAt)

		got, err := s.GetBlogBySlug(ctx, "summer-sale")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("CreatePublishedSetsPublishedAt", func(t *testing.T) {
		s := newTestStore(t)

		created, err := s.CreateBlog(ctx, domain.BlogPost{
			Title:  "Launch Day",
			Status: domain.BlogStatusPublished,
		})
		require.NoError(t, err)
		require.NotNil(t, created.PublishedAt)
	})

	t.Run("PublishedAtSetExactlyOnce", func(t *testing.T) {
		s := newTestStore(t)
		s.now = clock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

		created, err := s.CreateBlog(ctx, domain.BlogPost{Title: "Summer Sale"})
		require.NoError(t, err)
		require.Nil(t, created.PublishedAt)

		s.now = clock(time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC))
		published := domain.BlogStatusPublished
		got, err := s.UpdateBlog(ctx, created.ID, domain.BlogPatch{Status: &published})
		require.NoError(t, err)
		require.NotNil(t, got.PublishedAt)
		firstPublish := *got.PublishedAt

		// Unpublish, advance the clock, publish again: the original
		// timestamp survives.
		s.now = clock(time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC))
		draft := domain.BlogStatusDraft
		_, err = s.UpdateBlog(ctx, created.ID, domain.BlogPatch{Status: &draft})
		require.NoError(t, err)

		s.now = clock(time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC))
		got, err = s.UpdateBlog(ctx, created.ID, domain.BlogPatch{Status: &published})
		require.NoError(t, err)
		require.NotNil(t, got.PublishedAt)
		assert.Equal(t, firstPublish, *got.PublishedAt)
	})

	t.Run("PartialUpdateLeavesOtherFields", func(t *testing.T) {
		s := newTestStore(t)

		created, err := s.CreateBlog(ctx, domain.BlogPost{
			Title:   "Care Guide",
			Content: "Wash cold.",
			Author:  "Maya",
		})
		require.NoError(t, err)

		content := "Wash cold. Hang dry."
		updated, err := s.UpdateBlog(ctx, created.ID, domain.BlogPatch{Content: &content})
		require.NoError(t, err)

		assert.Equal(t, content, updated.Content)
		assert.Equal(t, "Care Guide", updated.Title)
		assert.Equal(t, "Maya", updated.Author)
		assert.Equal(t, created.Slug, updated.Slug)
	})

	t.Run("Delete", func(t *testing.T) {
		s := newTestStore(t)

		created, err := s.CreateBlog(ctx, domain.BlogPost{Title: "Ephemeral"})
		require.NoError(t, err)

		require.NoError(t, s.DeleteBlog(ctx, created.ID))

		_, err = s.GetBlog(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		blogs, err := s.ListBlogs(ctx)
		require.NoError(t, err)
		assert.Empty(t, blogs)
	})

	t.Run("UnknownSlug", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.GetBlogBySlug(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAdmins(t *testing.T) {
	ctx := context.Background()

	seed := domain.AdminUser{
		Email:        "admin@babisha.com",
		PasswordHash: "bcrypt-hash",
		Name:         "Admin User",
	}

	t.Run("BootstrapSeedsOnce", func(t *testing.T) {
		s := newTestStore(t)

		require.NoError(t, s.BootstrapAdmin(ctx, seed))

		u, err := s.AdminByEmail(ctx, seed.Email)
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, domain.DefaultAdminRole, u.Role)
		assert.Equal(t, "bcrypt-hash", u.PasswordHash)

		// Second bootstrap must not touch the existing account.
		other := seed
		other.PasswordHash = "different-hash"
		require.NoError(t, s.BootstrapAdmin(ctx, other))

		u2, err := s.AdminByEmail(ctx, seed.Email)
		require.NoError(t, err)
		assert.Equal(t, u, u2)
	})

	t.Run("SetPassword", func(t *testing.T) {
		s := newTestStore(t)
		require.NoError(t, s.BootstrapAdmin(ctx, seed))

		require.NoError(t, s.SetAdminPassword(ctx, seed.Email, "new-hash"))

		u, err := s.AdminByEmail(ctx, seed.Email)
		require.NoError(t, err)
		assert.Equal(t, "new-hash", u.PasswordHash)

		err = s.SetAdminPassword(ctx, "ghost@babisha.com", "x")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("UnknownID", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.AdminByID(ctx, "no-such-id")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.CreateProduct(ctx, domain.Product{Name: "A", Price: 100.50, IsActive: true})
	require.NoError(t, err)
	_, err = s.CreateProduct(ctx, domain.Product{Name: "B", Price: 49.50})
	require.NoError(t, err)

	_, err = s.CreateBlog(ctx, domain.BlogPost{Title: "Draft"})
	require.NoError(t, err)
	_, err = s.CreateBlog(ctx, domain.BlogPost{
		Title: "Live", Status: domain.BlogStatusPublished,
	})
	require.NoError(t, err)

	stats, err := s.DashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalDresses)
	assert.Equal(t, 1, stats.ActiveProducts)
	assert.Equal(t, 2, stats.TotalBlogs)
	assert.Equal(t, 1, stats.PublishedBlogs)
	assert.InDelta(t, 150.0, stats.Revenue, 1e-9)
}

func TestCorruptFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := New(dir)
	require.NoError(t, err)

	err = os.WriteFile(filepath.Join(dir, productsFile), []byte("{not json"), 0o644)
	require.NoError(t, err)

	_, err = s.ListProducts(ctx)
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func clock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
