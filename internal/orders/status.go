package orders

import (
	"errors"
	"time"

	"github.com/JackHouche/cbdproject/internal/domain"
)

var ErrIllegalTransition = errors.New("illegal order status transition")

// transitions holds the allowed fulfillment moves. The chain is
// pending -> confirmed -> shipped -> delivered; cancellation is only
// possible before shipment. Nothing moves backward.
var transitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderStatusPending:   {domain.OrderStatusConfirmed, domain.OrderStatusCancelled},
	domain.OrderStatusConfirmed: {domain.OrderStatusShipped, domain.OrderStatusCancelled},
	domain.OrderStatusShipped:   {domain.OrderStatusDelivered},
	domain.OrderStatusDelivered: {},
	domain.OrderStatusCancelled: {},
}

func CanTransition(from, to domain.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the order to the target status and stamps the matching
// timestamp. The order is mutated in place; callers persist it afterwards.
func Transition(order *domain.Order, to domain.OrderStatus, now time.Time) error {
	if !CanTransition(order.Status, to) {
		return ErrIllegalTransition
	}

	order.Status = to
	order.UpdatedAt = now

	switch to {
	case domain.OrderStatusConfirmed:
		order.ConfirmedAt = &now
	case domain.OrderStatusShipped:
		order.ShippedAt = &now
	case domain.OrderStatusDelivered:
		order.DeliveredAt = &now
	case domain.OrderStatusCancelled:
		order.CancelledAt = &now
	}
	return nil
}

// MarkPaid records a successful charge with its transaction reference.
func MarkPaid(order *domain.Order, transactionID string, now time.Time) {
	order.PaymentStatus = domain.PaymentStatusPaid
	order.PaymentRef = transactionID
	order.PaidAt = &now
	order.UpdatedAt = now
}

func MarkPaymentFailed(order *domain.Order, now time.Time) {
	order.PaymentStatus = domain.PaymentStatusFailed
	order.UpdatedAt = now
}

func MarkRefunded(order *domain.Order, now time.Time) {
	order.PaymentStatus = domain.PaymentStatusRefunded
	order.UpdatedAt = now
}

// AddTracking sets the tracking number. A confirmed order is promoted to
// shipped at the same time; other statuses keep theirs.
func AddTracking(order *domain.Order, trackingNumber string, now time.Time) {
	order.TrackingNumber = trackingNumber
	if order.Status == domain.OrderStatusConfirmed {
		order.Status = domain.OrderStatusShipped
		order.ShippedAt = &now
	}
	order.UpdatedAt = now
}
