package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/JackHouche/cbdproject/internal/checkout"
	"github.com/JackHouche/cbdproject/internal/domain"
	"github.com/JackHouche/cbdproject/internal/pricing"
)

type CheckoutHandler struct {
	checkout *checkout.Service
	timeout  time.Duration
}

func NewCheckoutHandler(svc *checkout.Service, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: svc,
		timeout:  timeout,
	}
}

type CheckoutRequestDTO struct {
	Customer       domain.CustomerInfo `json:"customer"`
	ShippingMethod string              `json:"shipping_method"`
	Notes          string              `json:"notes,omitempty"`
	IdempotencyKey string              `json:"idempotency_key,omitempty"`
}

// Submit turns the session's cart into an order. The idempotency key, when
// sent, makes retried submissions collide instead of double-charging.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var dto CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if dto.IdempotencyKey == "" {
		dto.IdempotencyKey = r.Header.Get("Idempotency-Key")
	}

	order, err := h.checkout.Submit(ctx, &checkout.Request{
		UserID:         sessionID,
		IdempotencyKey: dto.IdempotencyKey,
		Customer:       dto.Customer,
		ShippingMethod: domain.ShippingMethod(dto.ShippingMethod),
		Notes:          dto.Notes,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, orderView(order))
}

// ShippingOptions quotes all methods against a given subtotal so the client
// can show delivery choices before checkout.
func (h *CheckoutHandler) ShippingOptions(w http.ResponseWriter, r *http.Request) {
	subtotal, err := domain.ParseCents(r.URL.Query().Get("subtotal"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_subtotal", "subtotal must be a decimal amount")
		return
	}

	respondJSON(w, http.StatusOK, pricing.Options(subtotal))
}
