package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/babisha/storefront-admin/internal/core/port"
)

var _ port.ObjectStorage = (*LocalStorage)(nil)

// LocalStorage writes uploads under dir and returns URLs routed through the
// server's /uploads/ static handler. It doubles as the per-request fallback
// when the managed store rejects an upload.
type LocalStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage prepares the upload directories. baseURL is the public
// origin of this server, without a trailing slash.
func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	const op = "LocalStorage"

	for _, category := range []string{CategoryProducts, CategoryBlogs} {
		if err := os.MkdirAll(filepath.Join(dir, category), 0o755); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return &LocalStorage{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Dir is the root the /uploads/ static handler serves.
func (l *LocalStorage) Dir() string { return l.dir }

func (l *LocalStorage) Upload(
	ctx context.Context, f domain.FileUpload, category string,
) (domain.StoredImage, error) {
	const op = "LocalStorage.Upload"

	if err := ctx.Err(); err != nil {
		return domain.StoredImage{}, fmt.Errorf("%s: %w", op, err)
	}

	name := objectName(f.Name)
	if err := os.MkdirAll(filepath.Join(l.dir, category), 0o755); err != nil {
		return domain.StoredImage{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := os.WriteFile(filepath.Join(l.dir, category, name), f.Data, 0o644); err != nil {
		return domain.StoredImage{}, fmt.Errorf("%s: %w", op, err)
	}

	path := "/uploads/" + category + "/" + name
	return domain.StoredImage{
		URL:  l.baseURL + path,
		Path: path,
	}, nil
}

func (l *LocalStorage) UploadMany(
	ctx context.Context, fs []domain.FileUpload, category string,
) ([]domain.StoredImage, error) {
	images := make([]domain.StoredImage, 0, len(fs))
	for _, f := range fs {
		img, err := l.Upload(ctx, f, category)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func (l *LocalStorage) Delete(ctx context.Context, path string) bool {
	const op = "LocalStorage.Delete"

	rel, ok := strings.CutPrefix(path, "/uploads/")
	if !ok {
		return false
	}
	// Reject traversal out of the upload directory.
	rel = filepath.Clean(rel)
	if strings.HasPrefix(rel, "..") {
		return false
	}

	err := os.Remove(filepath.Join(l.dir, rel))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to delete upload", "op", op, "path", path, "err", err)
		return false
	}
	return true
}

func (l *LocalStorage) PathFromURL(url string) (string, bool) {
	path, ok := strings.CutPrefix(url, l.baseURL+"/uploads/")
	if !ok {
		return "", false
	}
	return "/uploads/" + path, true
}
