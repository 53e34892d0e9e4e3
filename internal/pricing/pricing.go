// Package pricing derives shipping costs and order totals from a cart
// subtotal. Everything here is a pure function over minor-unit amounts.
package pricing

import (
	"errors"

	"github.com/JackHouche/cbdproject/internal/domain"
)

const (
	// FreeShippingThreshold waives the standard fee when the subtotal is
	// strictly above it. 50.00 exactly still pays the fee.
	FreeShippingThreshold domain.Cents = 5000

	StandardFee domain.Cents = 490
	ExpressFee  domain.Cents = 990
	PickupFee   domain.Cents = 0
)

var ErrUnknownShippingMethod = errors.New("unknown shipping method")

type Totals struct {
	Subtotal domain.Cents `json:"subtotal"`
	Shipping domain.Cents `json:"shipping"`
	Total    domain.Cents `json:"total"`
}

// QuoteShipping returns the shipping cost for the given method at the given
// subtotal. Only the standard method depends on the subtotal.
func QuoteShipping(subtotal domain.Cents, method domain.ShippingMethod) (domain.Cents, error) {
	switch method {
	case domain.ShippingStandard:
		if subtotal > FreeShippingThreshold {
			return 0, nil
		}
		return StandardFee, nil
	case domain.ShippingExpress:
		return ExpressFee, nil
	case domain.ShippingPickup:
		return PickupFee, nil
	}
	return 0, ErrUnknownShippingMethod
}

// ComputeTotals builds order totals for a subtotal and shipping method.
func ComputeTotals(subtotal domain.Cents, method domain.ShippingMethod) (Totals, error) {
	shipping, err := QuoteShipping(subtotal, method)
	if err != nil {
		return Totals{}, err
	}
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}, nil
}

// Options returns the full shipping option set quoted at the given subtotal,
// in the order the checkout presents them.
func Options(subtotal domain.Cents) []domain.ShippingOption {
	standard, _ := QuoteShipping(subtotal, domain.ShippingStandard)
	return []domain.ShippingOption{
		{
			ID:          domain.ShippingStandard,
			DisplayName: "Standard delivery",
			ETA:         "3-5 business days",
			Price:       standard,
		},
		{
			ID:          domain.ShippingExpress,
			DisplayName: "Express delivery",
			ETA:         "24-48h",
			Price:       ExpressFee,
		},
		{
			ID:          domain.ShippingPickup,
			DisplayName: "Store pickup",
			ETA:         "Ready within 2h",
			Price:       PickupFee,
		},
	}
}
