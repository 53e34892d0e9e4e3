package orders

import (
	"sort"
	"strings"

	"github.com/JackHouche/cbdproject/internal/domain"
)

// Pure helpers over an order slice, mirroring the back-office views:
// filter, search, recency, stats, and display lookup tables.

func FilterByStatus(orders []*domain.Order, status domain.OrderStatus) []*domain.Order {
	var out []*domain.Order
	for _, o := range orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

func FilterByPaymentStatus(orders []*domain.Order, status domain.PaymentStatus) []*domain.Order {
	var out []*domain.Order
	for _, o := range orders {
		if o.PaymentStatus == status {
			out = append(out, o)
		}
	}
	return out
}

// Search matches order id, customer email/name and tracking number.
func Search(orders []*domain.Order, query string) []*domain.Order {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return orders
	}

	var out []*domain.Order
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.ID.String()), term) ||
			strings.Contains(strings.ToLower(o.Customer.Email), term) ||
			strings.Contains(strings.ToLower(o.Customer.FirstName), term) ||
			strings.Contains(strings.ToLower(o.Customer.LastName), term) ||
			(o.TrackingNumber != "" && strings.Contains(strings.ToLower(o.TrackingNumber), term)) {
			out = append(out, o)
		}
	}
	return out
}

// Recent returns up to limit orders, newest first.
func Recent(orders []*domain.Order, limit int) []*domain.Order {
	out := make([]*domain.Order, len(orders))
	copy(out, orders)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type Stats struct {
	TotalOrders       int          `json:"total_orders"`
	PendingOrders     int          `json:"pending_orders"`
	ConfirmedOrders   int          `json:"confirmed_orders"`
	ShippedOrders     int          `json:"shipped_orders"`
	DeliveredOrders   int          `json:"delivered_orders"`
	CancelledOrders   int          `json:"cancelled_orders"`
	PaidOrders        int          `json:"paid_orders"`
	TotalRevenue      domain.Cents `json:"total_revenue"`
	AverageOrderValue domain.Cents `json:"average_order_value"`
}

// ComputeStats aggregates counts and revenue. Revenue only counts paid orders.
func ComputeStats(orders []*domain.Order) Stats {
	var s Stats
	s.TotalOrders = len(orders)

	var grandTotal domain.Cents
	for _, o := range orders {
		switch o.Status {
		case domain.OrderStatusPending:
			s.PendingOrders++
		case domain.OrderStatusConfirmed:
			s.ConfirmedOrders++
		case domain.OrderStatusShipped:
			s.ShippedOrders++
		case domain.OrderStatusDelivered:
			s.DeliveredOrders++
		case domain.OrderStatusCancelled:
			s.CancelledOrders++
		}
		if o.PaymentStatus == domain.PaymentStatusPaid {
			s.PaidOrders++
			s.TotalRevenue += o.Pricing.Total
		}
		grandTotal += o.Pricing.Total
	}

	if len(orders) > 0 {
		s.AverageOrderValue = grandTotal / domain.Cents(len(orders))
	}
	return s
}

var statusLabels = map[domain.OrderStatus]string{
	domain.OrderStatusPending:   "Pending",
	domain.OrderStatusConfirmed: "Confirmed",
	domain.OrderStatusShipped:   "Shipped",
	domain.OrderStatusDelivered: "Delivered",
	domain.OrderStatusCancelled: "Cancelled",
}

// Severity tags match the UI palette: warning/info/primary/success/error.
var statusColors = map[domain.OrderStatus]string{
	domain.OrderStatusPending:   "warning",
	domain.OrderStatusConfirmed: "info",
	domain.OrderStatusShipped:   "primary",
	domain.OrderStatusDelivered: "success",
	domain.OrderStatusCancelled: "error",
}

var paymentStatusLabels = map[domain.PaymentStatus]string{
	domain.PaymentStatusPending:  "Awaiting payment",
	domain.PaymentStatusPaid:     "Paid",
	domain.PaymentStatusFailed:   "Failed",
	domain.PaymentStatusRefunded: "Refunded",
}

var paymentStatusColors = map[domain.PaymentStatus]string{
	domain.PaymentStatusPending:  "warning",
	domain.PaymentStatusPaid:     "success",
	domain.PaymentStatusFailed:   "error",
	domain.PaymentStatusRefunded: "info",
}

// StatusLabel returns the display string for a status; unknown values come
// back verbatim.
func StatusLabel(s domain.OrderStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

func StatusColor(s domain.OrderStatus) string {
	if color, ok := statusColors[s]; ok {
		return color
	}
	return "default"
}

func PaymentStatusLabel(s domain.PaymentStatus) string {
	if label, ok := paymentStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

func PaymentStatusColor(s domain.PaymentStatus) string {
	if color, ok := paymentStatusColors[s]; ok {
		return color
	}
	return "default"
}
