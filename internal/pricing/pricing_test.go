package pricing

import (
	"testing"

	"github.com/JackHouche/cbdproject/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteShipping_StandardThreshold(t *testing.T) {
	tests := []struct {
		name     string
		subtotal domain.Cents
		want     domain.Cents
	}{
		{"zero subtotal pays the fee", 0, StandardFee},
		{"below threshold pays the fee", 2500, StandardFee},
		{"exactly 50.00 still pays the fee", 5000, StandardFee},
		{"50.01 ships free", 5001, 0},
		{"well above threshold ships free", 9998, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QuoteShipping(tt.subtotal, domain.ShippingStandard)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuoteShipping_FixedMethods(t *testing.T) {
	// Express and pickup ignore the subtotal entirely.
	for _, subtotal := range []domain.Cents{0, 4999, 5000, 5001, 100000} {
		express, err := QuoteShipping(subtotal, domain.ShippingExpress)
		require.NoError(t, err)
		assert.Equal(t, ExpressFee, express)

		pickup, err := QuoteShipping(subtotal, domain.ShippingPickup)
		require.NoError(t, err)
		assert.Equal(t, domain.Cents(0), pickup)
	}
}

func TestQuoteShipping_UnknownMethod(t *testing.T) {
	_, err := QuoteShipping(1000, domain.ShippingMethod("drone"))
	assert.ErrorIs(t, err, ErrUnknownShippingMethod)
}

func TestComputeTotals(t *testing.T) {
	// Product A 10.00 x3 plus product B 25.00 x1 -> 55.00, free standard shipping.
	totals, err := ComputeTotals(5500, domain.ShippingStandard)
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(5500), totals.Subtotal)
	assert.Equal(t, domain.Cents(0), totals.Shipping)
	assert.Equal(t, domain.Cents(5500), totals.Total)

	// After removing A: 25.00 -> 4.90 standard fee -> 29.90.
	totals, err = ComputeTotals(2500, domain.ShippingStandard)
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(490), totals.Shipping)
	assert.Equal(t, domain.Cents(2990), totals.Total)
	assert.Equal(t, "29.90", totals.Total.String())
}

func TestComputeTotals_EmptyCart(t *testing.T) {
	// Zero subtotal sits below the threshold, so the fixed fee applies.
	totals, err := ComputeTotals(0, domain.ShippingStandard)
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(0), totals.Subtotal)
	assert.Equal(t, StandardFee, totals.Shipping)
	assert.Equal(t, StandardFee, totals.Total)
}

func TestOptions_QuotedAtSubtotal(t *testing.T) {
	opts := Options(2000)
	require.Len(t, opts, 3)
	assert.Equal(t, domain.ShippingStandard, opts[0].ID)
	assert.Equal(t, StandardFee, opts[0].Price)
	assert.Equal(t, ExpressFee, opts[1].Price)
	assert.Equal(t, domain.Cents(0), opts[2].Price)

	free := Options(5001)
	assert.Equal(t, domain.Cents(0), free[0].Price)
	// Express stays fixed even when standard is free.
	assert.Equal(t, ExpressFee, free[1].Price)
}
