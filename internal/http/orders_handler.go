package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/JackHouche/cbdproject/internal/domain"
	"github.com/JackHouche/cbdproject/internal/orders"
	"github.com/JackHouche/cbdproject/internal/payment"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type OrdersHandler struct {
	repo     orders.OrderRepository
	provider payment.Provider
	timeout  time.Duration
}

func NewOrdersHandler(repo orders.OrderRepository, provider payment.Provider, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		repo:     repo,
		provider: provider,
		timeout:  timeout,
	}
}

// OrderViewDTO decorates an order with its display labels so the UI does not
// re-implement the lookup tables.
type OrderViewDTO struct {
	*domain.Order
	StatusLabel        string `json:"status_label"`
	StatusColor        string `json:"status_color"`
	PaymentStatusLabel string `json:"payment_status_label"`
	PaymentStatusColor string `json:"payment_status_color"`
}

func orderView(o *domain.Order) OrderViewDTO {
	return OrderViewDTO{
		Order:              o,
		StatusLabel:        orders.StatusLabel(o.Status),
		StatusColor:        orders.StatusColor(o.Status),
		PaymentStatusLabel: orders.PaymentStatusLabel(o.PaymentStatus),
		PaymentStatusColor: orders.PaymentStatusColor(o.PaymentStatus),
	}
}

func orderViews(list []*domain.Order) []OrderViewDTO {
	out := make([]OrderViewDTO, 0, len(list))
	for _, o := range list {
		out = append(out, orderView(o))
	}
	return out
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a UUID")
		return
	}

	order, err := h.repo.GetOrderByID(ctx, id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, orderView(order))
}

// ListOrders is the back-office view: everything, optionally narrowed by
// status, payment status or free-text search.
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	list, err := h.repo.ListOrders(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	q := r.URL.Query()
	if status := q.Get("status"); status != "" {
		list = orders.FilterByStatus(list, domain.OrderStatus(status))
	}
	if payment := q.Get("payment_status"); payment != "" {
		list = orders.FilterByPaymentStatus(list, domain.PaymentStatus(payment))
	}
	if term := q.Get("q"); term != "" {
		list = orders.Search(list, term)
	}

	respondJSON(w, http.StatusOK, orderViews(list))
}

func (h *OrdersHandler) ListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	email := r.URL.Query().Get("email")
	if email == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email is required")
		return
	}

	list, err := h.repo.ListOrdersByEmail(ctx, email)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, orderViews(list))
}

func (h *OrdersHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	list, err := h.repo.ListOrders(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, orders.ComputeStats(list))
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

// UpdateStatus applies one fulfillment transition. Illegal moves come back
// as 409, the order untouched.
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a UUID")
		return
	}

	var dto UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.repo.GetOrderByID(ctx, id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if err := orders.Transition(order, domain.OrderStatus(dto.Status), time.Now()); err != nil {
		handleServiceError(w, r, err)
		return
	}

	if err := h.repo.SaveOrder(ctx, order); err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, orderView(order))
}

type TrackingRequestDTO struct {
	TrackingNumber string `json:"tracking_number"`
}

func (h *OrdersHandler) AddTracking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a UUID")
		return
	}

	var dto TrackingRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if dto.TrackingNumber == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "tracking_number is required")
		return
	}

	order, err := h.repo.GetOrderByID(ctx, id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	orders.AddTracking(order, dto.TrackingNumber, time.Now())

	if err := h.repo.SaveOrder(ctx, order); err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, orderView(order))
}

// Refund gives the money back through the payment provider and marks the
// order refunded. Only paid orders can be refunded.
func (h *OrdersHandler) Refund(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a UUID")
		return
	}

	order, err := h.repo.GetOrderByID(ctx, id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if order.PaymentStatus != domain.PaymentStatusPaid {
		respondError(w, http.StatusConflict, "not_refundable", "only paid orders can be refunded")
		return
	}

	if err := h.provider.Refund(ctx, payment.RefundRequest{
		TransactionID: order.PaymentRef,
		Amount:        order.Pricing.Total,
	}); err != nil {
		handleServiceError(w, r, err)
		return
	}

	orders.MarkRefunded(order, time.Now())

	if err := h.repo.SaveOrder(ctx, order); err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, orderView(order))
}

func (h *OrdersHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a UUID")
		return
	}

	if err := h.repo.DeleteOrder(ctx, id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
