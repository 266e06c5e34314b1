package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/babisha/storefront-admin/internal/core/port"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var _ port.ObjectStorage = (*S3Storage)(nil)

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	// Buckets maps an upload category to its bucket. Unknown categories
	// fall back to the products bucket.
	Buckets map[string]string
}

// S3Storage talks to any S3-compatible object store (MinIO, AWS S3,
// Supabase Storage). Buckets are public-read; the object URL is routable
// as-is.
type S3Storage struct {
	client  *minio.Client
	cfg     S3Config
	baseURL string
}

func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	const op = "S3Storage"
	log := slog.With("op", op)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	s := &S3Storage{
		client:  client,
		cfg:     cfg,
		baseURL: scheme + "://" + cfg.Endpoint,
	}

	for category, bucket := range cfg.Buckets {
		ok, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("%s: object store is unavailable: %w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: bucket %q for %s does not exist", op, bucket, category)
		}
	}
	log.Info("object store is available")
	return s, nil
}

func (s *S3Storage) Upload(
	ctx context.Context, f domain.FileUpload, category string,
) (domain.StoredImage, error) {
	const op = "S3Storage.Upload"

	path := category + "/" + objectName(f.Name)
	bucket := s.bucket(category)

	_, err := s.client.PutObject(ctx, bucket, path,
		bytes.NewReader(f.Data), int64(len(f.Data)),
		minio.PutObjectOptions{ContentType: f.ContentType},
	)
	if err != nil {
		return domain.StoredImage{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.StoredImage{
		URL:  fmt.Sprintf("%s/%s/%s", s.baseURL, bucket, path),
		Path: path,
	}, nil
}

func (s *S3Storage) UploadMany(
	ctx context.Context, fs []domain.FileUpload, category string,
) ([]domain.StoredImage, error) {
	images := make([]domain.StoredImage, 0, len(fs))
	for _, f := range fs {
		img, err := s.Upload(ctx, f, category)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

// Delete removes the object at path. A missing object or a backend failure
// is logged, not raised: image cleanup is best effort.
func (s *S3Storage) Delete(ctx context.Context, path string) bool {
	const op = "S3Storage.Delete"

	category, _, _ := strings.Cut(path, "/")
	err := s.client.RemoveObject(ctx, s.bucket(category), path,
		minio.RemoveObjectOptions{})
	if err != nil {
		slog.Warn("failed to delete object", "op", op, "path", path, "err", err)
		return false
	}
	return true
}

// PathFromURL recovers the in-bucket path from a public object URL. URLs
// from other backends report !ok.
func (s *S3Storage) PathFromURL(url string) (string, bool) {
	for category := range s.cfg.Buckets {
		marker := "/" + category + "/"
		if i := strings.LastIndex(url, marker); i >= 0 {
			return category + "/" + url[i+len(marker):], true
		}
	}
	return "", false
}

func (s *S3Storage) bucket(category string) string {
	if b, ok := s.cfg.Buckets[category]; ok {
		return b
	}
	return s.cfg.Buckets[CategoryProducts]
}
