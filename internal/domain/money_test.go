package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCents(t *testing.T) {
	tests := []struct {
		in   string
		want Cents
	}{
		{"49.99", 4999},
		{"50", 5000},
		{"4.9", 490},
		{"0.05", 5},
		{".5", 50},
		{"-12.34", -1234},
		{" 8.99 ", 899},
	}
	for _, tt := range tests {
		got, err := ParseCents(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseCents_Invalid(t *testing.T) {
	invalid := []string{
		"", "abc", "1.999", "1,50",
		// A sign is only valid once, at the front; neither part may smuggle
		// its own into ParseInt.
		"1.-5", "2.+5", "--5", "+5", "-",
		"1.2.3", "1e2", " ", ".",
	}
	for _, in := range invalid {
		_, err := ParseCents(in)
		assert.Error(t, err, in)
	}
}

func TestCentsString(t *testing.T) {
	assert.Equal(t, "49.99", Cents(4999).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "0.00", Cents(0).String())
	assert.Equal(t, "-4.90", Cents(-490).String())
}

func TestLineItemExtended(t *testing.T) {
	li := LineItem{UnitPrice: 1099, Quantity: 3}
	assert.Equal(t, Cents(3297), li.Extended())
}
