// Package http provides HTTP handlers for the catalog API: product
// listing and mutation, facet lists, share links, and admin login.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"

	"github.com/disenos/catalogo/internal/models"
	"github.com/disenos/catalogo/internal/repository"
	"github.com/disenos/catalogo/internal/share"
	"github.com/disenos/catalogo/internal/validation"
)

// CatalogService defines the catalog operations required by the HTTP
// handlers.
type CatalogService interface {
	// Products lists the catalog, optionally filtered, sorted by views.
	Products(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error)
	// Product fetches one record without side effects.
	Product(ctx context.Context, id string) (*models.Product, error)
	// View fetches one record and counts the visit.
	View(ctx context.Context, id string) (*models.Product, error)
	// Create validates and stores a new product.
	Create(ctx context.Context, p *models.CreateProduct) (*models.Product, error)
	// Update validates and merges a partial payload into a record.
	Update(ctx context.Context, id string, p *models.UpdateProduct) (*models.Product, error)
	// Delete removes a record, reporting whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
	// Duplicate copies a record under a fresh id.
	Duplicate(ctx context.Context, id string) (*models.Product, error)
	// Categories, Styles and Colors list distinct facet values.
	Categories(ctx context.Context) ([]string, error)
	Styles(ctx context.Context) ([]string, error)
	Colors(ctx context.Context) ([]string, error)
}

// ProductHandler handles HTTP requests for catalog products.
type ProductHandler struct {
	// Catalog performs the underlying catalog operations.
	Catalog CatalogService
	// BaseURL is the public storefront address used in share links.
	BaseURL string
}

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// List handles GET /api/products. Filters come from the query string;
// colors and tags accept either repeated keys or one comma-delimited value.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter models.ProductFilter
	if err := queryDecoder.Decode(&filter, r.URL.Query()); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid filter parameters")
		return
	}
	filter.Colors = splitMulti(filter.Colors)
	filter.Tags = splitMulti(filter.Tags)

	products, err := h.Catalog.Products(r.Context(), &filter)
	if err != nil {
		writeStorageError(w, err, "Error fetching products")
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id}, counting the visit on a hit.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.Catalog.View(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repository.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		writeStorageError(w, err, "Error fetching product")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.CreateProduct
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	product, err := h.Catalog.Create(r.Context(), &payload)
	if err != nil {
		writeCatalogError(w, err, "Error creating product")
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/products/{id} with a partial payload.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload models.UpdateProduct
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	product, err := h.Catalog.Update(r.Context(), chi.URLParam(r, "id"), &payload)
	if errors.Is(err, repository.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		writeCatalogError(w, err, "Error updating product")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Catalog.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStorageError(w, err, "Error deleting product")
		return
	}
	if !deleted {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	writeMessage(w, http.StatusOK, "Product deleted successfully")
}

// Duplicate handles POST /api/products/{id}/duplicate.
func (h *ProductHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	product, err := h.Catalog.Duplicate(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repository.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		writeStorageError(w, err, "Error duplicating product")
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// Share handles GET /api/products/{id}/share?platform=…, returning the
// platform share URL for the product.
func (h *ProductHandler) Share(w http.ResponseWriter, r *http.Request) {
	product, err := h.Catalog.Product(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repository.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		writeStorageError(w, err, "Error fetching product")
		return
	}
	platform := share.Platform(r.URL.Query().Get("platform"))
	link, err := share.ProductLink(h.BaseURL, product, platform)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "unknown share platform")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": link})
}

// ShareCatalog handles GET /api/share?platform=…, returning a share URL
// for the current catalog selection. The same filter parameters as the
// list endpoint narrow which products the share text names.
func (h *ProductHandler) ShareCatalog(w http.ResponseWriter, r *http.Request) {
	var filter models.ProductFilter
	if err := queryDecoder.Decode(&filter, r.URL.Query()); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid filter parameters")
		return
	}
	filter.Colors = splitMulti(filter.Colors)
	filter.Tags = splitMulti(filter.Tags)

	products, err := h.Catalog.Products(r.Context(), &filter)
	if err != nil {
		writeStorageError(w, err, "Error fetching products")
		return
	}
	platform := share.Platform(r.URL.Query().Get("platform"))
	link, err := share.CatalogLink(h.BaseURL, products, platform)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "unknown share platform")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": link})
}

// Categories handles GET /api/categories.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	h.facets(w, r, h.Catalog.Categories, "Error fetching categories")
}

// Styles handles GET /api/styles.
func (h *ProductHandler) Styles(w http.ResponseWriter, r *http.Request) {
	h.facets(w, r, h.Catalog.Styles, "Error fetching styles")
}

// Colors handles GET /api/colors.
func (h *ProductHandler) Colors(w http.ResponseWriter, r *http.Request) {
	h.facets(w, r, h.Catalog.Colors, "Error fetching colors")
}

func (h *ProductHandler) facets(w http.ResponseWriter, r *http.Request, list func(context.Context) ([]string, error), failMsg string) {
	values, err := list(r.Context())
	if err != nil {
		writeStorageError(w, err, failMsg)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

// splitMulti expands comma-delimited entries of a multi-value query
// parameter, so colors=red,blue and colors=red&colors=blue are equivalent.
func splitMulti(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return models.SplitList(strings.Join(values, ","))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeCatalogError maps validation failures to a 400 with field detail,
// then falls back to the storage mapping.
func writeCatalogError(w http.ResponseWriter, err error, failMsg string) {
	var fieldErrs validation.FieldErrors
	if errors.As(err, &fieldErrs) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Invalid product data",
			"errors":  fieldErrs,
		})
		return
	}
	writeStorageError(w, err, failMsg)
}

// writeStorageError maps storage failures: an unreachable backend is a
// retryable 503, anything else is a 500 with a generic message.
func writeStorageError(w http.ResponseWriter, err error, failMsg string) {
	if errors.Is(err, repository.ErrUnavailable) {
		writeMessage(w, http.StatusServiceUnavailable, "Storage temporarily unavailable")
		return
	}
	writeMessage(w, http.StatusInternalServerError, failMsg)
}
