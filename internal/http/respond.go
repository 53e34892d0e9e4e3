package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/JackHouche/cbdproject/internal/cart"
	"github.com/JackHouche/cbdproject/internal/catalog"
	"github.com/JackHouche/cbdproject/internal/checkout"
	"github.com/JackHouche/cbdproject/internal/orders"
	"github.com/JackHouche/cbdproject/internal/pricing"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps sentinel errors from the service layer to HTTP
// status codes. Anything unrecognized is a 500, logged with the request id
// so the log line can be tied back to the failing call.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, orders.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrInvalidCustomer),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, pricing.ErrUnknownShippingMethod):
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, checkout.ErrPaymentRefused):
		respondError(w, http.StatusPaymentRequired, "payment_refused", err.Error())
	case errors.Is(err, orders.ErrDuplicateCheckout),
		errors.Is(err, orders.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "conflict", err.Error())
	default:
		log.Printf("internal error [request %s]: %v", getRequestID(r.Context()), err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
