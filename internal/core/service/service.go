// Package service orchestrates the persistent store and the object store.
// It owns the managed-to-local upload fallback and best-effort image
// cleanup; entity semantics (defaults, publish-once, partial merges) live
// in the store implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/babisha/storefront-admin/internal/core/port"
	"golang.org/x/crypto/bcrypt"
)

var _ port.AuthService = (*Service)(nil)
var _ port.ProductService = (*Service)(nil)
var _ port.BlogService = (*Service)(nil)
var _ port.StatsService = (*Service)(nil)

type Service struct {
	store  port.Store
	images port.ObjectStorage
	local  port.ObjectStorage
	tokens port.TokenAuthority
}

// New wires the core. images is the preferred object store; local is the
// disk-backed fallback and may be the same instance when no managed store
// is configured.
func New(
	store port.Store,
	images port.ObjectStorage,
	local port.ObjectStorage,
	tokens port.TokenAuthority,
) *Service {
	return &Service{
		store:  store,
		images: images,
		local:  local,
		tokens: tokens,
	}
}

func (s *Service) Login(
	ctx context.Context, email, password string,
) (string, domain.AdminUser, error) {
	const op = "Service.Login"

	if err := ctx.Err(); err != nil {
		return "", domain.AdminUser{}, fmt.Errorf("%s: %w", op, err)
	}

	u, err := s.store.AdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.AdminUser{}, fmt.Errorf("%s: %w", op, domain.ErrInvalidCredentials)
		}
		return "", domain.AdminUser{}, fmt.Errorf("%s: %w", op, err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if err != nil {
		return "", domain.AdminUser{}, fmt.Errorf("%s: %w", op, domain.ErrInvalidCredentials)
	}

	tok, err := s.tokens.Issue(u)
	if err != nil {
		return "", domain.AdminUser{}, fmt.Errorf("%s: %w", op, err)
	}
	return tok, u, nil
}

func (s *Service) UserByID(ctx context.Context, id string) (domain.AdminUser, error) {
	const op = "Service.UserByID"

	u, err := s.store.AdminByID(ctx, id)
	if err != nil {
		return domain.AdminUser{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func (s *Service) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	const op = "Service.DashboardStats"

	stats, err := s.store.DashboardStats(ctx)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// upload stores files in the preferred backend, falling back to local disk
// on failure. A degraded upload succeeds the request with local URLs.
func (s *Service) upload(
	ctx context.Context, files []domain.FileUpload, category string,
) ([]domain.StoredImage, error) {
	if len(files) == 0 {
		return nil, nil
	}

	images, err := s.images.UploadMany(ctx, files, category)
	if err == nil {
		return images, nil
	}
	if s.images == s.local {
		return nil, err
	}

	slog.Warn("managed upload failed, falling back to local storage",
		"category", category, "err", err)
	return s.local.UploadMany(ctx, files, category)
}

// removeImage deletes an image binary, routing by path shape: local upload
// paths are /uploads/-rooted, everything else belongs to the managed
// store. Best effort.
func (s *Service) removeImage(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if strings.HasPrefix(path, "/uploads/") {
		s.local.Delete(ctx, path)
		return
	}
	s.images.Delete(ctx, path)
}
