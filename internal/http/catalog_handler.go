package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/JackHouche/cbdproject/internal/catalog"
	"github.com/JackHouche/cbdproject/internal/domain"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	repo    *catalog.Repository
	timeout time.Duration
}

func NewCatalogHandler(repo *catalog.Repository, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		repo:    repo,
		timeout: timeout,
	}
}

// ListProducts serves the storefront browse view. Filtering, search and
// sorting are the pure helpers applied over the full list; the catalog is
// small enough that a linear scan beats query plumbing.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.repo.ListProducts(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	q := r.URL.Query()
	switch {
	case q.Get("q") != "":
		products = catalog.Search(products, q.Get("q"))
	case q.Get("category") != "":
		products = catalog.FilterByCategory(products, q.Get("category"))
	case q.Get("featured") == "true":
		products = catalog.Featured(products)
	case q.Get("promo") == "true":
		products = catalog.Promo(products)
	default:
		products = catalog.Active(products)
	}

	if sortField := q.Get("sort"); sortField != "" {
		products = catalog.SortBy(products, catalog.SortField(sortField), q.Get("order") == "desc")
	}

	respondJSON(w, http.StatusOK, products)
}

// ListCategories serves the storefront navigation: the distinct categories
// of the active catalog.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.repo.ListProducts(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, catalog.Categories(products))
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	product, err := h.repo.GetProduct(ctx, id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	slug := chi.URLParam(r, "slug")
	product, err := h.repo.GetProductBySlug(ctx, slug)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

type ProductRequestDTO struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Price         string  `json:"price"`
	OriginalPrice *string `json:"original_price,omitempty"`
	Stock         int     `json:"stock"`
	Active        *bool   `json:"active,omitempty"`
	Featured      bool    `json:"featured"`
	Promo         bool    `json:"promo"`
}

func (dto *ProductRequestDTO) toProduct() (*domain.Product, error) {
	price, err := domain.ParseCents(dto.Price)
	if err != nil {
		return nil, err
	}

	p := &domain.Product{
		Name:        dto.Name,
		Description: dto.Description,
		Category:    dto.Category,
		Price:       price,
		Stock:       dto.Stock,
		Active:      true,
		Featured:    dto.Featured,
		Promo:       dto.Promo,
	}
	if dto.Active != nil {
		p.Active = *dto.Active
	}
	if dto.OriginalPrice != nil {
		op, err := domain.ParseCents(*dto.OriginalPrice)
		if err != nil {
			return nil, err
		}
		p.OriginalPrice = &op
	}
	return p, nil
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var dto ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if dto.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	if dto.Stock < 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "stock must not be negative")
		return
	}

	product, err := dto.toProduct()
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_price", err.Error())
		return
	}

	if err := h.repo.CreateProduct(ctx, product); err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	existing, err := h.repo.GetProduct(ctx, id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	var dto ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	updated, err := dto.toProduct()
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_price", err.Error())
		return
	}

	updated.ID = existing.ID
	updated.Slug = catalog.Slugify(updated.Name)
	updated.Rating = existing.Rating
	updated.ReviewCount = existing.ReviewCount
	updated.CreatedAt = existing.CreatedAt

	if err := h.repo.UpdateProduct(ctx, updated); err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

type UpdateStockRequestDTO struct {
	Stock int `json:"stock"`
}

func (h *CatalogHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")

	var dto UpdateStockRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if dto.Stock < 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "stock must not be negative")
		return
	}

	if err := h.repo.UpdateStock(ctx, id, dto.Stock); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.repo.DeleteProduct(ctx, id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.repo.ListProducts(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, catalog.ComputeStats(products))
}
