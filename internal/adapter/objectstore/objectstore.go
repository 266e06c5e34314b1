// Package objectstore owns image binaries. Two interchangeable backends
// implement port.ObjectStorage: an S3-compatible managed store and a local
// upload directory served as static files. The persistent store only ever
// sees the URL/path references these return.
package objectstore

import (
	"path/filepath"

	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/google/uuid"
)

// Category aliases, re-exported for wiring code.
const (
	CategoryProducts = domain.CategoryProducts
	CategoryBlogs    = domain.CategoryBlogs
)

// objectName builds a collision-free file name preserving the original
// extension.
func objectName(original string) string {
	return uuid.NewString() + filepath.Ext(original)
}
