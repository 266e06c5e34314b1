package port

import (
	"context"

	"github.com/babisha/storefront-admin/internal/core/domain"
)

// Inbound ports: what the HTTP layer asks of the core.

type AuthService interface {
	// Login checks the password and issues a bearer token.
	Login(ctx context.Context, email, password string) (string, domain.AdminUser, error)
	UserByID(ctx context.Context, id string) (domain.AdminUser, error)
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product, uploads []domain.FileUpload) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch, uploads []domain.FileUpload) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	RemoveProductImage(ctx context.Context, id string, index int) (domain.Product, error)

	// ListActiveProducts is the public catalog view.
	ListActiveProducts(ctx context.Context) ([]domain.Product, error)
}

type BlogService interface {
	ListBlogs(ctx context.Context) ([]domain.BlogPost, error)
	GetBlog(ctx context.Context, id string) (domain.BlogPost, error)
	CreateBlog(ctx context.Context, b domain.BlogPost, featured *domain.FileUpload) (domain.BlogPost, error)
	UpdateBlog(ctx context.Context, id string, patch domain.BlogPatch, featured *domain.FileUpload) (domain.BlogPost, error)
	DeleteBlog(ctx context.Context, id string) error

	// Public catalog views: published posts only.
	ListPublishedBlogs(ctx context.Context) ([]domain.BlogPost, error)
	PublishedBlogBySlug(ctx context.Context, slug string) (domain.BlogPost, error)
}

type StatsService interface {
	DashboardStats(ctx context.Context) (domain.DashboardStats, error)
}
