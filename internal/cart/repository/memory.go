package repository

import (
	"context"
	"sync"
	"time"

	"github.com/JackHouche/cbdproject/internal/domain"
)

// MemoryRepository keeps carts in a mutex-guarded map. It backs tests and
// storage-free deployments with the same semantics as the mongo repository.
type MemoryRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		carts: make(map[string]*domain.Cart),
	}
}

func (m *MemoryRepository) GetCart(_ context.Context, userID string) (*domain.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cart, ok := m.carts[userID]
	if !ok {
		return nil, ErrCartNotFound
	}
	return copyCart(cart), nil
}

func (m *MemoryRepository) AddItem(_ context.Context, userID string, item domain.LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	item.AddedAt = now

	cart, ok := m.carts[userID]
	if !ok {
		m.carts[userID] = &domain.Cart{
			UserID:    userID,
			Items:     []domain.LineItem{item},
			CreatedAt: now,
			UpdatedAt: now,
		}
		return nil
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			cart.Items[i].AddedAt = now
			cart.UpdatedAt = now
			return nil
		}
	}

	cart.Items = append(cart.Items, item)
	cart.UpdatedAt = now
	return nil
}

func (m *MemoryRepository) UpdateItemQuantity(_ context.Context, userID string, productID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, ok := m.carts[userID]
	if !ok {
		return ErrItemNotFound
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			cart.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrItemNotFound
}

func (m *MemoryRepository) RemoveItem(_ context.Context, userID string, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, ok := m.carts[userID]
	if !ok {
		return ErrCartNotFound
	}

	for i, li := range cart.Items {
		if li.ProductID == productID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			cart.UpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}

func (m *MemoryRepository) DeleteCart(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.carts[userID]; !ok {
		return ErrCartNotFound
	}
	delete(m.carts, userID)
	return nil
}

func copyCart(c *domain.Cart) *domain.Cart {
	out := *c
	out.Items = make([]domain.LineItem, len(c.Items))
	copy(out.Items, c.Items)
	return &out
}
