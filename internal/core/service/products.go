package service

import (
	"context"
	"fmt"

	"github.com/babisha/storefront-admin/internal/core/domain"
)

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Service.ListProducts"

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *Service) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Service.ListActiveProducts"

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	active := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	const op = "Service.GetProduct"

	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s *Service) CreateProduct(
	ctx context.Context, p domain.Product, uploads []domain.FileUpload,
) (domain.Product, error) {
	const op = "Service.CreateProduct"

	stored, err := s.upload(ctx, uploads, domain.CategoryProducts)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	for _, img := range stored {
		p.Images = append(p.Images, domain.ProductImage(img))
	}

	created, err := s.store.CreateProduct(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// UpdateProduct merges the patch; freshly uploaded images are appended to
// the product's existing image list.
func (s *Service) UpdateProduct(
	ctx context.Context, id string, patch domain.ProductPatch, uploads []domain.FileUpload,
) (domain.Product, error) {
	const op = "Service.UpdateProduct"

	if len(uploads) > 0 {
		existing, err := s.store.GetProduct(ctx, id)
		if err != nil {
			return domain.Product{}, fmt.Errorf("%s: %w", op, err)
		}

		stored, err := s.upload(ctx, uploads, domain.CategoryProducts)
		if err != nil {
			return domain.Product{}, fmt.Errorf("%s: %w", op, err)
		}

		images := existing.Images
		for _, img := range stored {
			images = append(images, domain.ProductImage(img))
		}
		patch.Images = &images
	}

	updated, err := s.store.UpdateProduct(ctx, id, patch)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteProduct removes the record, then asks the object store to drop the
// referenced binaries. The two are not transactional: a failed binary
// delete leaves an orphaned object, never a dangling record.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	const op = "Service.DeleteProduct"

	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, img := range p.Images {
		s.removeImage(ctx, img.Path)
	}
	return nil
}

// RemoveProductImage drops one image by display index.
func (s *Service) RemoveProductImage(
	ctx context.Context, id string, index int,
) (domain.Product, error) {
	const op = "Service.RemoveProductImage"

	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if index < 0 || index >= len(p.Images) {
		return domain.Product{}, fmt.Errorf("%s: image %d: %w", op, index, domain.ErrNotFound)
	}

	s.removeImage(ctx, p.Images[index].Path)

	images := append(p.Images[:index:index], p.Images[index+1:]...)
	updated, err := s.store.UpdateProduct(ctx, id, domain.ProductPatch{Images: &images})
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}
