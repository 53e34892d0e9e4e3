package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/JackHouche/cbdproject/internal/cart"
	"github.com/JackHouche/cbdproject/internal/domain"
	"github.com/JackHouche/cbdproject/internal/pricing"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	carts    *cart.Service
	products ProductGetter
	timeout  time.Duration
}

// ProductGetter is what the cart surface needs from the catalog: price and
// name lookup when an item is added.
type ProductGetter interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

func NewCartHandler(carts *cart.Service, products ProductGetter, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:    carts,
		products: products,
		timeout:  timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items     []domain.LineItem       `json:"items"`
	Subtotal  domain.Cents            `json:"subtotal"`
	ItemCount int                     `json:"item_count"`
	Shipping  []domain.ShippingOption `json:"shipping_options"`
}

func cartResponse(c *domain.Cart) CartResponseDTO {
	subtotal := c.Subtotal()
	return CartResponseDTO{
		Items:     c.Items,
		Subtotal:  subtotal,
		ItemCount: c.ItemCount(),
		Shipping:  pricing.Options(subtotal),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	c, err := h.carts.GetCart(ctx, sessionID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(c))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity < 1 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, err := h.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if !product.Active {
		respondError(w, http.StatusBadRequest, "product_inactive", "product is no longer available")
		return
	}

	err = h.carts.AddItem(ctx, sessionID, domain.LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  req.Quantity,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	c, err := h.carts.GetCart(ctx, sessionID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, cartResponse(c))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at most 99")
		return
	}

	// Quantities below 1 are a documented no-op, not an error
	if err := h.carts.UpdateQuantity(ctx, sessionID, productID, req.Quantity); err != nil {
		handleServiceError(w, r, err)
		return
	}

	c, err := h.carts.GetCart(ctx, sessionID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(c))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	if err := h.carts.RemoveItem(ctx, sessionID, productID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	c, err := h.carts.GetCart(ctx, sessionID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(c))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	if err := h.carts.ClearCart(ctx, sessionID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	c, err := h.carts.GetCart(ctx, sessionID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(c))
}
