package httphandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/babisha/storefront-admin/internal/core/domain"
)

const (
	maxUploadSize  = 10 << 20 // per file
	maxUploadFiles = 10
	maxFormMemory  = 32 << 20
)

var errBadForm = errors.New("invalid form data")

var allowedImageExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// formUploads buffers the uploaded image files of a multipart request.
// Non-multipart requests carry no files.
func formUploads(r *http.Request, field string, max int) ([]domain.FileUpload, error) {
	if !isMultipart(r) {
		return nil, nil
	}
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadForm, err)
	}

	headers := r.MultipartForm.File[field]
	if len(headers) > max {
		return nil, fmt.Errorf("%w: at most %d files", errBadForm, max)
	}

	uploads := make([]domain.FileUpload, 0, len(headers))
	for _, fh := range headers {
		f, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, f)
	}
	return uploads, nil
}

func readUpload(fh *multipart.FileHeader) (domain.FileUpload, error) {
	if fh.Size > maxUploadSize {
		return domain.FileUpload{}, fmt.Errorf("%w: %s exceeds %d bytes", errBadForm, fh.Filename, maxUploadSize)
	}
	if !allowedImageExts[strings.ToLower(filepath.Ext(fh.Filename))] {
		return domain.FileUpload{}, fmt.Errorf("%w: only image files are allowed", errBadForm)
	}

	f, err := fh.Open()
	if err != nil {
		return domain.FileUpload{}, fmt.Errorf("%w: %w", errBadForm, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize+1))
	if err != nil {
		return domain.FileUpload{}, fmt.Errorf("%w: %w", errBadForm, err)
	}
	if len(data) > maxUploadSize {
		return domain.FileUpload{}, fmt.Errorf("%w: %s exceeds %d bytes", errBadForm, fh.Filename, maxUploadSize)
	}

	return domain.FileUpload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// parseProductRequest accepts either a JSON body or multipart form values.
// formUploads must run first for multipart requests so the form is parsed.
func parseProductRequest(r *http.Request) (productRequest, error) {
	if !isMultipart(r) {
		var req productRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return productRequest{}, fmt.Errorf("%w: %w", errBadForm, err)
		}
		return req, nil
	}

	var req productRequest
	req.Name = formStr(r, "name")
	req.Category = formStr(r, "category")
	req.Description = formStr(r, "description")
	req.Supplier = formStr(r, "supplier")

	var err error
	if req.Price, err = formFloat(r, "price"); err != nil {
		return productRequest{}, err
	}
	if req.OriginalPrice, err = formFloat(r, "originalPrice"); err != nil {
		return productRequest{}, err
	}
	if req.DiscountPrice, err = formFloat(r, "discountPrice"); err != nil {
		return productRequest{}, err
	}
	if req.Rating, err = formFloat(r, "rating"); err != nil {
		return productRequest{}, err
	}
	if req.Savings, err = formFloat(r, "savings"); err != nil {
		return productRequest{}, err
	}
	if req.Stock, err = formInt(r, "stock"); err != nil {
		return productRequest{}, err
	}
	if req.Reviews, err = formInt(r, "reviews"); err != nil {
		return productRequest{}, err
	}
	req.IsActive = formBool(r, "isActive")
	req.OnSale = formBool(r, "onSale")

	if raw := r.FormValue("specifications"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Specifications); err != nil {
			return productRequest{}, fmt.Errorf("%w: invalid specifications", errBadForm)
		}
	}
	return req, nil
}

func parseBlogRequest(r *http.Request) (blogRequest, error) {
	if !isMultipart(r) {
		var req blogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return blogRequest{}, fmt.Errorf("%w: %w", errBadForm, err)
		}
		return req, nil
	}

	var req blogRequest
	req.Title = formStr(r, "title")
	req.Slug = formStr(r, "slug")
	req.Content = formStr(r, "content")
	req.Excerpt = formStr(r, "excerpt")
	req.MetaTitle = formStr(r, "metaTitle")
	req.MetaDescription = formStr(r, "metaDescription")
	req.Status = formStr(r, "status")
	return req, nil
}

func formStr(r *http.Request, key string) *string {
	if _, ok := r.Form[key]; !ok {
		return nil
	}
	v := r.FormValue(key)
	return &v
}

func formFloat(r *http.Request, key string) (*float64, error) {
	raw := r.FormValue(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s", errBadForm, key)
	}
	return &v, nil
}

func formInt(r *http.Request, key string) (*int, error) {
	raw := r.FormValue(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s", errBadForm, key)
	}
	return &v, nil
}

func formBool(r *http.Request, key string) *bool {
	raw := r.FormValue(key)
	if raw == "" {
		return nil
	}
	v := raw == "true" || raw == "1"
	return &v
}
