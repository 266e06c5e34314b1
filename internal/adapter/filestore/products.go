package filestore

import (
	"context"
	"fmt"
	"time"

	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/google/uuid"
)

type (
	productRecord struct {
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
		Images         []imageRecord     `json:"images"`
		CreatedAt      time.Time         `json:"createdAt"`
		UpdatedAt      time.Time         `json:"updatedAt"`
	}

	imageRecord struct {
		URL  string `json:"url"`
		Path string `json:"path"`
	}
)

func (s *FileStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "FileStore.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readProducts()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products := make([]domain.Product, len(records))
	for i, r := range records {
		products[i] = r.toDomain()
	}
	return products, nil
}

func (s *FileStore) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	const op = "FileStore.GetProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readProducts()
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	for _, r := range records {
		if r.ID == id {
			return r.toDomain(), nil
		}
	}
	return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
}

func (s *FileStore) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	const op = "FileStore.CreateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readProducts()
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p.ApplyDefaults()
	p.ID = uuid.NewString()
	now := s.now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	records = append(records, productFromDomain(p))
	if err := s.writeCollection(productsFile, records); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s *FileStore) UpdateProduct(
	ctx context.Context, id string, patch domain.ProductPatch,
) (domain.Product, error) {
	const op = "FileStore.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readProducts()
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	for i, r := range records {
		if r.ID != id {
			continue
		}
		p := r.toDomain()
		applyProductPatch(&p, patch)
		p.UpdatedAt = s.now().UTC()
		records[i] = productFromDomain(p)
		if err := s.writeCollection(productsFile, records); err != nil {
			return domain.Product{}, fmt.Errorf("%s: %w", op, err)
		}
		return p, nil
	}
	return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
}

func (s *FileStore) DeleteProduct(ctx context.Context, id string) error {
	const op = "FileStore.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readProducts()
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
	if err := s.writeCollection(productsFile, kept); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *FileStore) readProducts() ([]productRecord, error) {
	var records []productRecord
	if err := s.readCollection(productsFile, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func applyProductPatch(p *domain.Product, patch domain.ProductPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.OriginalPrice != nil {
		p.OriginalPrice = patch.OriginalPrice
	}
	if patch.DiscountPrice != nil {
		p.DiscountPrice = patch.DiscountPrice
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	if patch.Specifications != nil {
		p.Specifications = patch.Specifications
	}
	if patch.Supplier != nil {
		p.Supplier = *patch.Supplier
	}
	if patch.Rating != nil {
		p.Rating = *patch.Rating
	}
	if patch.Reviews != nil {
		p.Reviews = *patch.Reviews
	}
	if patch.OnSale != nil {
		p.OnSale = *patch.OnSale
	}
	if patch.Savings != nil {
		p.Savings = patch.Savings
	}
	if patch.Images != nil {
		p.Images = *patch.Images
	}
}

func productFromDomain(p domain.Product) productRecord {
	images := make([]imageRecord, len(p.Images))
	for i, img := range p.Images {
		images[i] = imageRecord(img)
	}
	return productRecord{
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
		Images:         images,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (r productRecord) toDomain() domain.Product {
	images := make([]domain.ProductImage, len(r.Images))
	for i, img := range r.Images {
		images[i] = domain.ProductImage(img)
	}
	specs := r.Specifications
	if specs == nil {
		specs = map[string]string{}
	}
	return domain.Product{
		ID:             r.ID,
		Name:           r.Name,
		Category:       r.Category,
		Description:    r.Description,
		Price:          r.Price,
		OriginalPrice:  r.OriginalPrice,
		DiscountPrice:  r.DiscountPrice,
		Stock:          r.Stock,
		IsActive:       r.IsActive,
		Specifications: specs,
		Supplier:       r.Supplier,
		Rating:         r.Rating,
		Reviews:        r.Reviews,
		OnSale:         r.OnSale,
		Savings:        r.Savings,
		Images:         images,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
