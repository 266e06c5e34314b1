package port

import (
	"context"

	"github.com/babisha/storefront-admin/internal/core/domain"
)

// Store is the persistent store contract. Two interchangeable
// implementations exist: the relational one (adapter/storage) and the
// JSON-file fallback (adapter/filestore). The backend is selected once at
// startup; callers never branch on it.
type Store interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListBlogs(ctx context.Context) ([]domain.BlogPost, error)
	GetBlog(ctx context.Context, id string) (domain.BlogPost, error)
	GetBlogBySlug(ctx context.Context, slug string) (domain.BlogPost, error)
	CreateBlog(ctx context.Context, b domain.BlogPost) (domain.BlogPost, error)
	UpdateBlog(ctx context.Context, id string, patch domain.BlogPatch) (domain.BlogPost, error)
	DeleteBlog(ctx context.Context, id string) error

	AdminByEmail(ctx context.Context, email string) (domain.AdminUser, error)
	AdminByID(ctx context.Context, id string) (domain.AdminUser, error)
	BootstrapAdmin(ctx context.Context, u domain.AdminUser) error
	SetAdminPassword(ctx context.Context, email, passwordHash string) error

	DashboardStats(ctx context.Context) (domain.DashboardStats, error)
}

// ObjectStorage owns image binaries. The store only keeps URL/path
// references to them.
type ObjectStorage interface {
	Upload(ctx context.Context, f domain.FileUpload, category string) (domain.StoredImage, error)
	UploadMany(ctx context.Context, fs []domain.FileUpload, category string) ([]domain.StoredImage, error)

	// Delete reports success; a missing object is not an error.
	Delete(ctx context.Context, path string) bool

	// PathFromURL recovers the storage path from a public URL, reporting
	// whether the URL belongs to this backend.
	PathFromURL(url string) (string, bool)
}

// TokenAuthority issues and verifies the signed, time-limited bearer
// tokens gating the admin API.
type TokenAuthority interface {
	Issue(u domain.AdminUser) (string, error)
	Verify(token string) (TokenClaims, error)
}

type TokenClaims struct {
	UserID string
	Email  string
	Name   string
	Role   string
}
