package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/babisha/storefront-admin/internal/core/port"
)

type ProductsHandler struct {
	products port.ProductService
}

func RegisterProducts(
	mux *http.ServeMux,
	products port.ProductService,
	gate func(http.Handler) http.Handler,
) {
	h := ProductsHandler{products}
	mux.Handle("GET /api/admin/products", gate(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/admin/products/{id}", gate(http.HandlerFunc(h.Get)))
	mux.Handle("POST /api/admin/products", gate(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /api/admin/products/{id}", gate(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/admin/products/{id}", gate(http.HandlerFunc(h.Delete)))
	mux.Handle("DELETE /api/admin/products/{id}/images/{index}",
		gate(http.HandlerFunc(h.DeleteImage)))
}

func (h ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.List"

	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Get"

	p, err := h.products.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

func (h ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Create"
	log := slog.With("op", op)

	uploads, err := formUploads(r, "images", maxUploadFiles)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, err := parseProductRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == nil || *req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Price != nil && *req.Price < 0 {
		writeError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	p := domain.Product{
		Name:           *req.Name,
		Specifications: req.Specifications,
		IsActive:       true,
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	p.OriginalPrice = req.OriginalPrice
	p.DiscountPrice = req.DiscountPrice
	p.Savings = req.Savings
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.Supplier != nil {
		p.Supplier = *req.Supplier
	}
	if req.Rating != nil {
		p.Rating = *req.Rating
	}
	if req.Reviews != nil {
		p.Reviews = *req.Reviews
	}
	if req.OnSale != nil {
		p.OnSale = *req.OnSale
	}

	created, err := h.products.CreateProduct(r.Context(), p, uploads)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}

	log.Info("product created", "id", created.ID, "name", created.Name)
	writeJSON(w, http.StatusCreated, toProductResponse(created))
}

func (h ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Update"

	uploads, err := formUploads(r, "images", maxUploadFiles)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, err := parseProductRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Price != nil && *req.Price < 0 {
		writeError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	patch := domain.ProductPatch{
		Name:           req.Name,
		Category:       req.Category,
		Description:    req.Description,
		Price:          req.Price,
		OriginalPrice:  req.OriginalPrice,
		DiscountPrice:  req.DiscountPrice,
		Stock:          req.Stock,
		IsActive:       req.IsActive,
		Specifications: req.Specifications,
		Supplier:       req.Supplier,
		Rating:         req.Rating,
		Reviews:        req.Reviews,
		OnSale:         req.OnSale,
		Savings:        req.Savings,
	}

	updated, err := h.products.UpdateProduct(r.Context(), r.PathValue("id"), patch, uploads)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(updated))
}

func (h ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Delete"
	log := slog.With("op", op)

	id := r.PathValue("id")
	if err := h.products.DeleteProduct(r.Context(), id); err != nil {
		writeServiceError(w, op, err)
		return
	}

	log.Info("product deleted", "id", id)
	writeJSON(w, http.StatusOK, messageResponse{Message: "product deleted successfully"})
}

func (h ProductsHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.DeleteImage"

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image index")
		return
	}

	updated, err := h.products.RemoveProductImage(r.Context(), r.PathValue("id"), index)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "image not found")
			return
		}
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(updated))
}
