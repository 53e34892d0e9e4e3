package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) String() string { return string(s) }

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) String() string { return string(s) }

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type CustomerInfo struct {
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     string  `json:"phone,omitempty"`
	Address   Address `json:"address"`
}

// OrderItem is a line item snapshot taken at checkout time. The unit price and
// extended total are captured; later catalog price changes do not touch it.
type OrderItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   Cents  `json:"unit_price"`
	Total       Cents  `json:"total"`
}

type OrderPricing struct {
	Subtotal Cents `json:"subtotal"`
	Shipping Cents `json:"shipping"`
	Total    Cents `json:"total"`
}

type Order struct {
	ID             uuid.UUID      `json:"id"`
	CheckoutID     uuid.UUID      `json:"checkout_id"`
	Customer       CustomerInfo   `json:"customer"`
	Items          []OrderItem    `json:"items"`
	Pricing        OrderPricing   `json:"pricing"`
	Currency       string         `json:"currency"`
	ShippingMethod ShippingMethod `json:"shipping_method"`
	Status         OrderStatus    `json:"status"`
	PaymentStatus  PaymentStatus  `json:"payment_status"`
	PaymentRef     string         `json:"payment_ref,omitempty"`
	TrackingNumber string         `json:"tracking_number,omitempty"`
	Notes          string         `json:"notes,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	ConfirmedAt    *time.Time     `json:"confirmed_at,omitempty"`
	ShippedAt      *time.Time     `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time     `json:"delivered_at,omitempty"`
	CancelledAt    *time.Time     `json:"cancelled_at,omitempty"`
	PaidAt         *time.Time     `json:"paid_at,omitempty"`
}
