package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/babisha/storefront-admin/internal/adapter/filestore"
	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/babisha/storefront-admin/internal/core/port"
	"github.com/babisha/storefront-admin/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(
	ctx context.Context, f domain.FileUpload, category string,
) (domain.StoredImage, error) {
	args := m.Called(ctx, f, category)
	return args.Get(0).(domain.StoredImage), args.Error(1)
}

func (m *MockObjectStorage) UploadMany(
	ctx context.Context, fs []domain.FileUpload, category string,
) ([]domain.StoredImage, error) {
	args := m.Called(ctx, fs, category)
	if imgs := args.Get(0); imgs != nil {
		return imgs.([]domain.StoredImage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, path string) bool {
	args := m.Called(ctx, path)
	return args.Bool(0)
}

func (m *MockObjectStorage) PathFromURL(url string) (string, bool) {
	args := m.Called(url)
	return args.String(0), args.Bool(1)
}

type MockTokenAuthority struct {
	mock.Mock
}

func (m *MockTokenAuthority) Issue(u domain.AdminUser) (string, error) {
	args := m.Called(u)
	return args.String(0), args.Error(1)
}

func (m *MockTokenAuthority) Verify(token string) (port.TokenClaims, error) {
	args := m.Called(token)
	return args.Get(0).(port.TokenClaims), args.Error(1)
}

func newTestStore(t *testing.T) *filestore.FileStore {
	t.Helper()
	s, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	return s
}

func seedAdmin(t *testing.T, store port.Store, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	err = store.BootstrapAdmin(context.Background(), domain.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Test Admin",
	})
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("IssuesToken", func(t *testing.T) {
		store := newTestStore(t)
		seedAdmin(t, store, "admin@babisha.com", "admin123")

		tokens := new(MockTokenAuthority)
		tokens.On("Issue", mock.Anything).Return("signed-token", nil)

		images := new(MockObjectStorage)
		svc := service.New(store, images, images, tokens)

		tok, u, err := svc.Login(ctx, "admin@babisha.com", "admin123")
		require.NoError(t, err)
		assert.Equal(t, "signed-token", tok)
		assert.Equal(t, "admin@babisha.com", u.Email)
		tokens.AssertExpectations(t)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		store := newTestStore(t)
		seedAdmin(t, store, "admin@babisha.com", "admin123")

		tokens := new(MockTokenAuthority)
		images := new(MockObjectStorage)
		svc := service.New(store, images, images, tokens)

		_, _, err := svc.Login(ctx, "admin@babisha.com", "letmein")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		tokens.AssertNotCalled(t, "Issue", mock.Anything)
	})

	t.Run("UnknownEmailLooksTheSame", func(t *testing.T) {
		store := newTestStore(t)

		tokens := new(MockTokenAuthority)
		images := new(MockObjectStorage)
		svc := service.New(store, images, images, tokens)

		_, _, err := svc.Login(ctx, "ghost@babisha.com", "whatever")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestCreateProductUploads(t *testing.T) {
	ctx := context.Background()
	uploads := []domain.FileUpload{
		{Name: "front.jpg", ContentType: "image/jpeg", Data: []byte("jpegdata")},
	}

	t.Run("ManagedUpload", func(t *testing.T) {
		store := newTestStore(t)
		managed := new(MockObjectStorage)
		local := new(MockObjectStorage)
		tokens := new(MockTokenAuthority)

		managed.On("UploadMany", mock.Anything, uploads, domain.CategoryProducts).
			Return([]domain.StoredImage{
				{URL: "https://cdn.test/product-images/products/a.jpg", Path: "products/a.jpg"},
			}, nil)

		svc := service.New(store, managed, local, tokens)

		created, err := svc.CreateProduct(ctx, domain.Product{Name: "Dress"}, uploads)
		require.NoError(t, err)
		require.Len(t, created.Images, 1)
		assert.Equal(t, "products/a.jpg", created.Images[0].Path)
		local.AssertNotCalled(t, "UploadMany", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("FallsBackToLocal", func(t *testing.T) {
		store := newTestStore(t)
		managed := new(MockObjectStorage)
		local := new(MockObjectStorage)
		tokens := new(MockTokenAuthority)

		managed.On("UploadMany", mock.Anything, uploads, domain.CategoryProducts).
			Return(nil, errors.New("bucket unreachable"))
		local.On("UploadMany", mock.Anything, uploads, domain.CategoryProducts).
			Return([]domain.StoredImage{
				{URL: "http://localhost:3001/uploads/products/a.jpg", Path: "/uploads/products/a.jpg"},
			}, nil)

		svc := service.New(store, managed, local, tokens)

		created, err := svc.CreateProduct(ctx, domain.Product{Name: "Dress"}, uploads)
		require.NoError(t, err)
		require.Len(t, created.Images, 1)
		assert.Equal(t, "http://localhost:3001/uploads/products/a.jpg", created.Images[0].URL)
		managed.AssertExpectations(t)
		local.AssertExpectations(t)
	})

	t.Run("LocalOnlyFailureIsFatal", func(t *testing.T) {
		store := newTestStore(t)
		local := new(MockObjectStorage)
		tokens := new(MockTokenAuthority)

		local.On("UploadMany", mock.Anything, uploads, domain.CategoryProducts).
			Return(nil, errors.New("disk full"))

		// Same instance for preferred and fallback: no second try.
		svc := service.New(store, local, local, tokens)

		_, err := svc.CreateProduct(ctx, domain.Product{Name: "Dress"}, uploads)
		require.Error(t, err)

		products, listErr := store.ListProducts(ctx)
		require.NoError(t, listErr)
		assert.Empty(t, products)
	})

	t.Run("NoUploadsSkipsObjectStore", func(t *testing.T) {
		store := newTestStore(t)
		managed := new(MockObjectStorage)
		tokens := new(MockTokenAuthority)

		svc := service.New(store, managed, managed, tokens)

		created, err := svc.CreateProduct(ctx, domain.Product{Name: "Plain"}, nil)
		require.NoError(t, err)
		assert.Empty(t, created.Images)
		managed.AssertNotCalled(t, "UploadMany", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteProductCleansImages(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	managed := new(MockObjectStorage)
	local := new(MockObjectStorage)
	tokens := new(MockTokenAuthority)

	created, err := store.CreateProduct(ctx, domain.Product{
		Name: "Dress",
		Images: []domain.ProductImage{
			{URL: "https://cdn.test/product-images/products/a.jpg", Path: "products/a.jpg"},
			{URL: "http://localhost:3001/uploads/products/b.jpg", Path: "/uploads/products/b.jpg"},
		},
	})
	require.NoError(t, err)

	managed.On("Delete", mock.Anything, "products/a.jpg").Return(true)
	local.On("Delete", mock.Anything, "/uploads/products/b.jpg").Return(true)

	svc := service.New(store, managed, local, tokens)

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))

	_, err = store.GetProduct(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	managed.AssertExpectations(t)
	local.AssertExpectations(t)
}

func TestRemoveProductImage(t *testing.T) {
	ctx := context.Background()

	newProduct := func(t *testing.T, store port.Store) domain.Product {
		t.Helper()
		created, err := store.CreateProduct(ctx, domain.Product{
			Name: "Dress",
			Images: []domain.ProductImage{
				{URL: "u0", Path: "products/0.jpg"},
				{URL: "u1", Path: "products/1.jpg"},
			},
		})
		require.NoError(t, err)
		return created
	}

	t.Run("RemovesByIndex", func(t *testing.T) {
		store := newTestStore(t)
		managed := new(MockObjectStorage)
		tokens := new(MockTokenAuthority)
		created := newProduct(t, store)

		managed.On("Delete", mock.Anything, "products/0.jpg").Return(true)

		svc := service.New(store, managed, managed, tokens)

		updated, err := svc.RemoveProductImage(ctx, created.ID, 0)
		require.NoError(t, err)
		require.Len(t, updated.Images, 1)
		assert.Equal(t, "u1", updated.Images[0].URL)
		managed.AssertExpectations(t)
	})

	t.Run("IndexOutOfRange", func(t *testing.T) {
		store := newTestStore(t)
		managed := new(MockObjectStorage)
		tokens := new(MockTokenAuthority)
		created := newProduct(t, store)

		svc := service.New(store, managed, managed, tokens)

		_, err := svc.RemoveProductImage(ctx, created.ID, 2)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		managed.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestPublicCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("ActiveProductsOnly", func(t *testing.T) {
		store := newTestStore(t)
		images := new(MockObjectStorage)
		tokens := new(MockTokenAuthority)

		_, err := store.CreateProduct(ctx, domain.Product{Name: "Visible", IsActive: true})
		require.NoError(t, err)
		_, err = store.CreateProduct(ctx, domain.Product{Name: "Hidden"})
		require.NoError(t, err)

		svc := service.New(store, images, images, tokens)

		active, err := svc.ListActiveProducts(ctx)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "Visible", active[0].Name)
	})

	t.Run("DraftBlogHiddenBySlug", func(t *testing.T) {
		store := newTestStore(t)
		images := new(MockObjectStorage)
		tokens := new(MockTokenAuthority)

		_, err := store.CreateBlog(ctx, domain.BlogPost{Title: "Secret Draft"})
		require.NoError(t, err)
		_, err = store.CreateBlog(ctx, domain.BlogPost{
			Title: "Public Post", Status: domain.BlogStatusPublished,
		})
		require.NoError(t, err)

		svc := service.New(store, images, images, tokens)

		_, err = svc.PublishedBlogBySlug(ctx, "secret-draft")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		got, err := svc.PublishedBlogBySlug(ctx, "public-post")
		require.NoError(t, err)
		assert.Equal(t, "Public Post", got.Title)

		published, err := svc.ListPublishedBlogs(ctx)
		require.NoError(t, err)
		require.Len(t, published, 1)
		assert.Equal(t, "public-post", published[0].Slug)
	})
}

func TestUpdateBlogReplacesFeaturedImage(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	managed := new(MockObjectStorage)
	tokens := new(MockTokenAuthority)

	created, err := store.CreateBlog(ctx, domain.BlogPost{
		Title:             "Lookbook",
		FeaturedImageURL:  "https://cdn.test/blog-images/blogs/old.jpg",
		FeaturedImagePath: "blogs/old.jpg",
	})
	require.NoError(t, err)

	upload := domain.FileUpload{Name: "new.jpg", ContentType: "image/jpeg", Data: []byte("x")}
	managed.On("UploadMany", mock.Anything, []domain.FileUpload{upload}, domain.CategoryBlogs).
		Return([]domain.StoredImage{
			{URL: "https://cdn.test/blog-images/blogs/new.jpg", Path: "blogs/new.jpg"},
		}, nil)
	managed.On("Delete", mock.Anything, "blogs/old.jpg").Return(true)

	svc := service.New(store, managed, managed, tokens)

	updated, err := svc.UpdateBlog(ctx, created.ID, domain.BlogPatch{}, &upload)
	require.NoError(t, err)
	assert.Equal(t, "blogs/new.jpg", updated.FeaturedImagePath)
	assert.Equal(t, "https://cdn.test/blog-images/blogs/new.jpg", updated.FeaturedImageURL)
	managed.AssertExpectations(t)
}
