package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/babisha/storefront-admin/internal/core/port"
)

type BlogsHandler struct {
	blogs port.BlogService
}

func RegisterBlogs(
	mux *http.ServeMux,
	blogs port.BlogService,
	gate func(http.Handler) http.Handler,
) {
	h := BlogsHandler{blogs}
	mux.Handle("GET /api/admin/blogs", gate(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/admin/blogs/{id}", gate(http.HandlerFunc(h.Get)))
	mux.Handle("POST /api/admin/blogs", gate(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /api/admin/blogs/{id}", gate(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/admin/blogs/{id}", gate(http.HandlerFunc(h.Delete)))
}

func (h BlogsHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "BlogsHandler.List"

	blogs, err := h.blogs.ListBlogs(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toBlogResponses(blogs))
}

func (h BlogsHandler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "BlogsHandler.Get"

	b, err := h.blogs.GetBlog(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toBlogResponse(b))
}

func (h BlogsHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "BlogsHandler.Create"
	log := slog.With("op", op)

	featured, err := featuredImage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, err := parseBlogRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == nil || *req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	b := domain.BlogPost{Title: *req.Title}
	if req.Slug != nil {
		b.Slug = *req.Slug
	}
	if req.Content != nil {
		b.Content = *req.Content
	}
	if req.Excerpt != nil {
		b.Excerpt = *req.Excerpt
	}
	if req.MetaTitle != nil {
		b.MetaTitle = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		b.MetaDescription = *req.MetaDescription
	}
	if req.Status != nil {
		b.Status = *req.Status
	}
	if claims, ok := claimsFrom(r.Context()); ok && claims.Name != "" {
		b.Author = claims.Name
	}

	created, err := h.blogs.CreateBlog(r.Context(), b, featured)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}

	log.Info("blog created", "id", created.ID, "slug", created.Slug)
	writeJSON(w, http.StatusCreated, toBlogResponse(created))
}

func (h BlogsHandler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "BlogsHandler.Update"

	featured, err := featuredImage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, err := parseBlogRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := domain.BlogPatch{
		Title:           req.Title,
		Slug:            req.Slug,
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		Status:          req.Status,
	}

	updated, err := h.blogs.UpdateBlog(r.Context(), r.PathValue("id"), patch, featured)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toBlogResponse(updated))
}

func (h BlogsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "BlogsHandler.Delete"
	log := slog.With("op", op)

	id := r.PathValue("id")
	if err := h.blogs.DeleteBlog(r.Context(), id); err != nil {
		writeServiceError(w, op, err)
		return
	}

	log.Info("blog deleted", "id", id)
	writeJSON(w, http.StatusOK, messageResponse{Message: "blog deleted successfully"})
}

func featuredImage(r *http.Request) (*domain.FileUpload, error) {
	uploads, err := formUploads(r, "featuredImage", 1)
	if err != nil {
		return nil, err
	}
	if len(uploads) == 0 {
		return nil, nil
	}
	return &uploads[0], nil
}
