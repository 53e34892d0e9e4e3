package domain

import "time"

type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"-"`
	UserID    string     `bson:"user_id" json:"user_id"`
	Items     []LineItem `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// LineItem pairs a product with a quantity. The unit price is captured when
// the item enters the cart so the subtotal can be derived without a lookup.
type LineItem struct {
	ProductID string    `bson:"product_id" json:"product_id"`
	Name      string    `bson:"name" json:"name"`
	UnitPrice Cents     `bson:"unit_price" json:"unit_price"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	AddedAt   time.Time `bson:"added_at" json:"added_at"`
}

// Extended returns unit price times quantity.
func (li LineItem) Extended() Cents {
	return li.UnitPrice.Times(li.Quantity)
}

// Subtotal recomputes the sum of extended line prices from the items.
// It is never cached; every read walks the items.
func (c *Cart) Subtotal() Cents {
	var sum Cents
	for _, li := range c.Items {
		sum += li.Extended()
	}
	return sum
}

// ItemCount returns the total number of units across all line items.
func (c *Cart) ItemCount() int {
	n := 0
	for _, li := range c.Items {
		n += li.Quantity
	}
	return n
}
