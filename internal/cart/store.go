package cart

import (
	"sync"
	"time"

	"github.com/JackHouche/cbdproject/internal/domain"
)

// Store is a single cart held in memory. It is an explicit state container:
// callers construct one and pass it around, nothing global. All mutation
// rules live here so they can be tested without any storage behind them.
type Store struct {
	mu    sync.RWMutex
	items []domain.LineItem
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// AddItem merges on product ID: adding a product already in the cart
// increments its quantity instead of appending a duplicate entry.
// Quantities below 1 are ignored.
func (s *Store) AddItem(p domain.Product, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == p.ID {
			s.items[i].Quantity += quantity
			return
		}
	}

	s.items = append(s.items, domain.LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  quantity,
		AddedAt:   s.now(),
	})
}

// UpdateQuantity sets the quantity exactly. Values below 1 leave the item
// unchanged; removal is explicit via RemoveItem.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem deletes the matching entry. Removing an absent product is a
// benign no-op, not an error.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, li := range s.items {
		if li.ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Load replaces the cart contents with a previously snapshotted item list,
// dropping entries that would not survive AddItem validation. Used to
// rehydrate a session cart from wherever it was persisted.
func (s *Store) Load(items []domain.LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = s.items[:0]
	for _, li := range items {
		if li.ProductID == "" || li.Quantity < 1 {
			continue
		}
		s.items = append(s.items, li)
	}
}

// Snapshot returns the cart as a domain.Cart for persistence or checkout.
func (s *Store) Snapshot() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.LineItem, len(s.items))
	copy(items, s.items)
	return domain.Cart{Items: items, UpdatedAt: s.now()}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Subtotal walks the items on every call; there is no cached total to drift.
func (s *Store) Subtotal() domain.Cents {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum domain.Cents
	for _, li := range s.items {
		sum += li.Extended()
	}
	return sum
}

// ItemCount returns the total number of units in the cart.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, li := range s.items {
		n += li.Quantity
	}
	return n
}
