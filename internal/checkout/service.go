package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/JackHouche/cbdproject/internal/domain"
	"github.com/JackHouche/cbdproject/internal/orders"
	"github.com/JackHouche/cbdproject/internal/payment"
	"github.com/JackHouche/cbdproject/internal/pricing"
	"github.com/google/uuid"
)

var (
	ErrEmptyCart       = errors.New("cart is empty, nothing to checkout")
	ErrInvalidCustomer = errors.New("invalid customer info")
	ErrPaymentRefused  = errors.New("payment refused")
)

// Consumers define these interfaces, not the implementations.

type CartReader interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	ClearCart(ctx context.Context, userID string) error
}

type ProductReader interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type OrderWriter interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
}

type Request struct {
	UserID         string
	IdempotencyKey string
	Customer       domain.CustomerInfo
	ShippingMethod domain.ShippingMethod
	Notes          string
}

type Service struct {
	cart     CartReader
	products ProductReader
	orders   OrderWriter
	provider payment.Provider
	now      func() time.Time
}

func NewService(cart CartReader, products ProductReader, orderRepo OrderWriter, provider payment.Provider) *Service {
	return &Service{
		cart:     cart,
		products: products,
		orders:   orderRepo,
		provider: provider,
		now:      time.Now,
	}
}

// Submit runs the whole checkout: snapshot the cart at current catalog
// prices, compute totals, charge, persist the order, then clear the cart.
// The cart survives every failure before the order is written.
func (s *Service) Submit(ctx context.Context, req *Request) (*domain.Order, error) {
	if err := validateCustomer(req.Customer); err != nil {
		return nil, err
	}
	if !req.ShippingMethod.Valid() {
		return nil, pricing.ErrUnknownShippingMethod
	}

	cart, err := s.cart.GetCart(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items, subtotal, err := s.buildSnapshot(ctx, cart.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to build cart snapshot: %w", err)
	}

	totals, err := pricing.ComputeTotals(subtotal, req.ShippingMethod)
	if err != nil {
		return nil, err
	}

	checkoutID, err := checkoutIDFor(req.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	result, err := s.provider.Charge(ctx, payment.ChargeRequest{
		CheckoutID: checkoutID.String(),
		Amount:     totals.Total,
		Currency:   "EUR",
	})
	if err != nil {
		return nil, fmt.Errorf("payment provider: %w", err)
	}
	if !result.Succeeded() {
		return nil, fmt.Errorf("%w: %s", ErrPaymentRefused, result.RefusalMessage())
	}

	now := s.now()
	order := &domain.Order{
		ID:         uuid.New(),
		CheckoutID: checkoutID,
		Customer:   req.Customer,
		Items:      items,
		Pricing: domain.OrderPricing{
			Subtotal: totals.Subtotal,
			Shipping: totals.Shipping,
			Total:    totals.Total,
		},
		Currency:       "EUR",
		ShippingMethod: req.ShippingMethod,
		Status:         domain.OrderStatusPending,
		PaymentStatus:  domain.PaymentStatusPending,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	orders.MarkPaid(order, result.TransactionID, now)

	if errCreate := s.orders.CreateOrder(ctx, order); errCreate != nil {
		// The charge went through but the order did not. Give the money
		// back before surfacing the failure.
		if errRefund := s.provider.Refund(ctx, payment.RefundRequest{
			TransactionID: result.TransactionID,
			Amount:        totals.Total,
		}); errRefund != nil {
			log.Printf("refund after failed order create: %v", errRefund)
		}
		return nil, fmt.Errorf("failed to create order: %w", errCreate)
	}

	// The order exists; an unreachable cart store must not fail the checkout.
	if errClear := s.cart.ClearCart(ctx, req.UserID); errClear != nil {
		log.Printf("clear cart after checkout: %v", errClear)
	}

	return order, nil
}

func (s *Service) buildSnapshot(ctx context.Context, lineItems []domain.LineItem) ([]domain.OrderItem, domain.Cents, error) {
	items := make([]domain.OrderItem, 0, len(lineItems))
	var subtotal domain.Cents

	for _, li := range lineItems {
		// Prices are captured fresh from the catalog at checkout time, not
		// from the cart entry
		product, err := s.products.GetProduct(ctx, li.ProductID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to get product %s: %w", li.ProductID, err)
		}

		total := product.Price.Times(li.Quantity)
		items = append(items, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    li.Quantity,
			UnitPrice:   product.Price,
			Total:       total,
		})
		subtotal += total
	}

	return items, subtotal, nil
}

func validateCustomer(c domain.CustomerInfo) error {
	switch {
	case c.Email == "":
		return fmt.Errorf("%w: missing email", ErrInvalidCustomer)
	case c.FirstName == "" || c.LastName == "":
		return fmt.Errorf("%w: missing name", ErrInvalidCustomer)
	case c.Address.Street == "" || c.Address.City == "" || c.Address.PostalCode == "" || c.Address.Country == "":
		return fmt.Errorf("%w: incomplete address", ErrInvalidCustomer)
	}
	return nil
}

// checkoutIDFor derives the checkout id from the idempotency key when the
// client sends one, so a retried submission collides on the unique
// checkout_id instead of creating a second order.
func checkoutIDFor(idempotencyKey string) (uuid.UUID, error) {
	if idempotencyKey == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(idempotencyKey)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid idempotency key: %w", err)
	}
	return id, nil
}
