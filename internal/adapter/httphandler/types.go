package httphandler

import (
	"fmt"
	"time"

	"github.com/babisha/storefront-admin/internal/core/domain"
)

type (
	loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	loginResponse struct {
		Token string    `json:"token"`
		User  adminUser `json:"user"`
	}

	verifyResponse struct {
		User adminUser `json:"user"`
	}

	adminUser struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	}
)

// productRequest carries a create or update body. Pointer fields
// distinguish "absent" from zero values so updates can be partial.
type productRequest struct {
	Name           *string           `json:"name"`
	Category       *string           `json:"category"`
	Description    *string           `json:"description"`
	Price          *float64          `json:"price"`
	OriginalPrice  *float64          `json:"originalPrice"`
	DiscountPrice  *float64          `json:"discountPrice"`
	Stock          *int              `json:"stock"`
	IsActive       *bool             `json:"isActive"`
	Specifications map[string]string `json:"specifications"`
	Supplier       *string           `json:"supplier"`
	Rating         *float64          `json:"rating"`
	Reviews        *int              `json:"reviews"`
	OnSale         *bool             `json:"onSale"`
	Savings        *float64          `json:"savings"`
}

type productResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Category       string            `json:"category"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	OriginalPrice  *float64          `json:"originalPrice"`
	DiscountPrice  *float64          `json:"discountPrice"`
	Stock          int               `json:"stock"`
	IsActive       bool              `json:"isActive"`
	Specifications map[string]string `json:"specifications"`
	Supplier       string            `json:"supplier"`
	Rating         float64           `json:"rating"`
	Reviews        int               `json:"reviews"`
	OnSale         bool              `json:"onSale"`
	Savings        *float64          `json:"savings"`
	Images         []string          `json:"images"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

type blogRequest struct {
	Title           *string `json:"title"`
	Slug            *string `json:"slug"`
	Content         *string `json:"content"`
	Excerpt         *string `json:"excerpt"`
	MetaTitle       *string `json:"metaTitle"`
	MetaDescription *string `json:"metaDescription"`
	Status          *string `json:"status"`
}

type blogResponse struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Slug              string     `json:"slug"`
	Content           string     `json:"content"`
	Excerpt           string     `json:"excerpt"`
	FeaturedImage     string     `json:"featuredImage,omitempty"`
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

// statsResponse mirrors the dashboard widget contract; revenue is a
// two-decimal string and totalDresses is the legacy product count label.
type statsResponse struct {
	TotalDresses   int    `json:"totalDresses"`
	TotalBlogs     int    `json:"totalBlogs"`
	ActiveProducts int    `json:"activeProducts"`
	PublishedBlogs int    `json:"publishedBlogs"`
	Revenue        string `json:"revenue"`
}

type (
	messageResponse struct {
		Message string `json:"message"`
	}

	errorResponse struct {
		Error string `json:"error"`
	}
)

func toAdminUser(u domain.AdminUser) adminUser {
	return adminUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		Description:    p.Description,
		Price:          p.Price,
		OriginalPrice:  p.OriginalPrice,
		DiscountPrice:  p.DiscountPrice,
		Stock:          p.Stock,
		IsActive:       p.IsActive,
		Specifications: p.Specifications,
		Supplier:       p.Supplier,
		Rating:         p.Rating,
		Reviews:        p.Reviews,
		OnSale:         p.OnSale,
		Savings:        p.Savings,
		Images:         p.ImageURLs(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

func toBlogResponse(b domain.BlogPost) blogResponse {
	return blogResponse{
		ID:                b.ID,
		Title:             b.Title,
		Slug:              b.Slug,
		Content:           b.Content,
		Excerpt:           b.Excerpt,
		FeaturedImage:     b.FeaturedImageURL,
		FeaturedImageURL:  b.FeaturedImageURL,
		FeaturedImagePath: b.FeaturedImagePath,
		MetaTitle:         b.MetaTitle,
		MetaDescription:   b.MetaDescription,
		Status:            b.Status,
		Author:            b.Author,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
		PublishedAt:       b.PublishedAt,
	}
}

func toBlogResponses(blogs []domain.BlogPost) []blogResponse {
	out := make([]blogResponse, len(blogs))
	for i, b := range blogs {
		out[i] = toBlogResponse(b)
	}
	return out
}

func toStatsResponse(s domain.DashboardStats) statsResponse {
	return statsResponse{
		TotalDresses:   s.TotalDresses,
		TotalBlogs:     s.TotalBlogs,
		ActiveProducts: s.ActiveProducts,
		PublishedBlogs: s.PublishedBlogs,
		Revenue:        fmt.Sprintf("%.2f", s.Revenue),
	}
}
