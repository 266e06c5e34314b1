package httphandler

import (
	"net/http"

	"github.com/babisha/storefront-admin/internal/core/port"
)

// PublicHandler serves the unauthenticated read-only catalog: active
// products and published posts.
type PublicHandler struct {
	products port.ProductService
	blogs    port.BlogService
}

func RegisterPublic(
	mux *http.ServeMux,
	products port.ProductService,
	blogs port.BlogService,
) {
	h := PublicHandler{products, blogs}
	mux.HandleFunc("GET /api/products", h.Products)
	mux.HandleFunc("GET /api/blogs", h.Blogs)
	mux.HandleFunc("GET /api/blogs/{slug}", h.BlogBySlug)
}

// RegisterUploads serves locally stored images under /uploads/.
func RegisterUploads(mux *http.ServeMux, dir string) {
	fileServer := http.FileServer(http.Dir(dir))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", fileServer))
}

func (h PublicHandler) Products(w http.ResponseWriter, r *http.Request) {
	const op = "PublicHandler.Products"

	products, err := h.products.ListActiveProducts(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h PublicHandler) Blogs(w http.ResponseWriter, r *http.Request) {
	const op = "PublicHandler.Blogs"

	blogs, err := h.blogs.ListPublishedBlogs(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toBlogResponses(blogs))
}

func (h PublicHandler) BlogBySlug(w http.ResponseWriter, r *http.Request) {
	const op = "PublicHandler.BlogBySlug"

	b, err := h.blogs.PublishedBlogBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toBlogResponse(b))
}
