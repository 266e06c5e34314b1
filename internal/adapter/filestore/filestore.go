// Package filestore is the fallback Store backend: one JSON array file per
// entity collection, rewritten whole on every mutation. It trades
// durability guarantees for zero external dependencies and is selected at
// startup only when the relational database is unreachable.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/babisha/storefront-admin/internal/core/port"
)

var _ port.Store = (*FileStore)(nil)

const (
	productsFile = "products.json"
	blogsFile    = "blogs.json"
	adminsFile   = "admin.json"
)

// FileStore persists each collection as a JSON file under dir. The mutex
// serializes read-modify-write cycles within this process; concurrent
// processes sharing dir can still lose writes.
type FileStore struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

func New(dir string) (*FileStore, error) {
	const op = "FileStore.New"

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

func (s *FileStore) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	const op = "FileStore.DashboardStats"

	if err := ctx.Err(); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var products []productRecord
	if err := s.readCollection(productsFile, &products); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("%s: %w", op, err)
	}
	var blogs []blogRecord
	if err := s.readCollection(blogsFile, &blogs); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("%s: %w", op, err)
	}

	var stats domain.DashboardStats
	stats.TotalDresses = len(products)
	stats.TotalBlogs = len(blogs)
	for _, p := range products {
		if p.IsActive {
			stats.ActiveProducts++
		}
		stats.Revenue += p.Price
	}
	for _, b := range blogs {
		if b.Status == domain.BlogStatusPublished {
			stats.PublishedBlogs++
		}
	}
	return stats, nil
}

// readCollection decodes the named file into v, treating a missing file as
// an empty collection.
func (s *FileStore) readCollection(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *FileStore) writeCollection(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, name), data, 0o644)
}
