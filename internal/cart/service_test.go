package cart

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/JackHouche/cbdproject/internal/cart/cache"
	"github.com/JackHouche/cbdproject/internal/cart/repository"
	"github.com/JackHouche/cbdproject/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	m    sync.RWMutex
	cart *domain.Cart
	err  error
}

func (m *mockRepository) GetCart(context.Context, string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func (m *mockRepository) AddItem(_ context.Context, _ string, item domain.LineItem) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.cart.Items {
		if m.cart.Items[i].ProductID == item.ProductID {
			m.cart.Items[i].Quantity += item.Quantity
			return nil
		}
	}
	m.cart.Items = append(m.cart.Items, item)
	return nil
}

func (m *mockRepository) UpdateItemQuantity(_ context.Context, _ string, productID string, quantity int) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.cart.Items {
		if m.cart.Items[i].ProductID == productID {
			m.cart.Items[i].Quantity = quantity
			return nil
		}
	}
	return repository.ErrItemNotFound
}

func (m *mockRepository) RemoveItem(_ context.Context, _ string, productID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, item := range m.cart.Items {
		if item.ProductID == productID {
			m.cart.Items = append(m.cart.Items[:i], m.cart.Items[i+1:]...)
			return nil
		}
	}
	return repository.ErrItemNotFound
}

func (m *mockRepository) DeleteCart(_ context.Context, _ string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.cart.Items = []domain.LineItem{}
	return nil
}

type mockCache struct {
	m    sync.RWMutex
	cart *domain.Cart
	err  error
}

func (m *mockCache) Get(context.Context, string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.cart, nil
}

func (m *mockCache) Set(_ context.Context, _ string, cart *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = cart
	return m.err
}

func (m *mockCache) Delete(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = nil
	return m.err
}

func (m *mockCache) getCart() *domain.Cart {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.cart
}

func TestGetCart_Success(t *testing.T) {
	cartData := &domain.Cart{
		Items: []domain.LineItem{
			{ProductID: "p1", UnitPrice: 4999, Quantity: 5},
			{ProductID: "p2", UnitPrice: 899, Quantity: 10},
		},
		UserID:    "123",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	mockRepo := &mockRepository{cart: cartData}
	mockC := &mockCache{cart: nil}

	sut := NewService(mockRepo, mockC)
	ret, err := sut.GetCart(context.Background(), "123")
	require.NoError(t, err)
	require.NotNil(t, ret)
	assert.Len(t, ret.Items, 2)
	assert.Equal(t, "p1", ret.Items[0].ProductID)
	assert.Equal(t, 5, ret.Items[0].Quantity)
	assert.Equal(t, domain.Cents(4999*5+899*10), ret.Subtotal())

	require.Eventually(t, func() bool {
		return mockC.getCart() != nil
	}, 100*time.Millisecond, 10*time.Millisecond, "cart was not set in cache")
}

func TestGetCart_RepoError(t *testing.T) {
	mockRepo := &mockRepository{err: fmt.Errorf("database error")}
	mockC := &mockCache{cart: nil}

	sut := NewService(mockRepo, mockC)
	ret, err := sut.GetCart(context.Background(), "123")
	require.ErrorContains(t, err, "database error")
	assert.Nil(t, ret)
	assert.Nil(t, mockC.getCart())
}

func TestGetCart_CacheHit(t *testing.T) {
	cartData := &domain.Cart{
		Items:  []domain.LineItem{{ProductID: "p1", Quantity: 3}},
		UserID: "123",
	}
	mockRepo := &mockRepository{cart: nil} // repo should NOT be called
	mockC := &mockCache{cart: cartData}

	sut := NewService(mockRepo, mockC)
	ret, err := sut.GetCart(context.Background(), "123")
	require.NoError(t, err)
	assert.Len(t, ret.Items, 1)
	assert.Equal(t, "p1", ret.Items[0].ProductID)
}

func TestGetCart_NotFound_ReturnsEmptyCart(t *testing.T) {
	mockRepo := &mockRepository{err: repository.ErrCartNotFound}
	mockC := &mockCache{cart: nil}

	sut := NewService(mockRepo, mockC)
	ret, err := sut.GetCart(context.Background(), "123")
	require.NoError(t, err)
	require.NotNil(t, ret)
	assert.Equal(t, "123", ret.UserID)
	assert.Empty(t, ret.Items)
	assert.Equal(t, domain.Cents(0), ret.Subtotal())
}

func TestAddItem_Success(t *testing.T) {
	cartData := &domain.Cart{Items: []domain.LineItem{}, UserID: "123"}
	mockRepo := &mockRepository{cart: cartData}
	mockC := &mockCache{cart: cartData}

	sut := NewService(mockRepo, mockC)
	err := sut.AddItem(context.Background(), "123", domain.LineItem{
		ProductID: "p1",
		UnitPrice: 4999,
		Quantity:  5,
	})
	require.NoError(t, err)
	assert.Len(t, mockRepo.cart.Items, 1)
	assert.Equal(t, 5, mockRepo.cart.Items[0].Quantity)

	// Verify cache was invalidated
	require.Eventually(t, func() bool {
		return mockC.getCart() == nil
	}, 100*time.Millisecond, 10*time.Millisecond, "cache was not invalidated")
}

func TestAddItem_SameProductAccumulates(t *testing.T) {
	cartData := &domain.Cart{Items: []domain.LineItem{}, UserID: "123"}
	mockRepo := &mockRepository{cart: cartData}
	mockC := &mockCache{}

	sut := NewService(mockRepo, mockC)
	for _, q := range []int{2, 1, 4} {
		require.NoError(t, sut.AddItem(context.Background(), "123", domain.LineItem{ProductID: "p1", Quantity: q}))
	}
	require.Len(t, mockRepo.cart.Items, 1)
	assert.Equal(t, 7, mockRepo.cart.Items[0].Quantity)
}

func TestAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	mockRepo := &mockRepository{cart: &domain.Cart{}}
	sut := NewService(mockRepo, &mockCache{})

	err := sut.AddItem(context.Background(), "123", domain.LineItem{ProductID: "p1", Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, mockRepo.cart.Items)
}

func TestUpdateQuantity_BelowOneIsNoOp(t *testing.T) {
	cartData := &domain.Cart{Items: []domain.LineItem{{ProductID: "p1", Quantity: 3}}}
	mockRepo := &mockRepository{cart: cartData}
	sut := NewService(mockRepo, &mockCache{})

	require.NoError(t, sut.UpdateQuantity(context.Background(), "123", "p1", 0))
	assert.Equal(t, 3, mockRepo.cart.Items[0].Quantity)

	require.NoError(t, sut.UpdateQuantity(context.Background(), "123", "p1", -1))
	assert.Equal(t, 3, mockRepo.cart.Items[0].Quantity)
}

func TestUpdateQuantity_MissingItemIsBenign(t *testing.T) {
	mockRepo := &mockRepository{cart: &domain.Cart{}}
	sut := NewService(mockRepo, &mockCache{})

	assert.NoError(t, sut.UpdateQuantity(context.Background(), "123", "ghost", 2))
}

func TestRemoveItem_MissingIsBenign(t *testing.T) {
	mockRepo := &mockRepository{cart: &domain.Cart{}}
	sut := NewService(mockRepo, &mockCache{})

	assert.NoError(t, sut.RemoveItem(context.Background(), "123", "ghost"))
}

func TestClearCart(t *testing.T) {
	cartData := &domain.Cart{Items: []domain.LineItem{{ProductID: "p1", Quantity: 3}}}
	mockRepo := &mockRepository{cart: cartData}
	mockC := &mockCache{cart: cartData}

	sut := NewService(mockRepo, mockC)
	require.NoError(t, sut.ClearCart(context.Background(), "123"))
	assert.Empty(t, mockRepo.cart.Items)

	require.Eventually(t, func() bool {
		return mockC.getCart() == nil
	}, 100*time.Millisecond, 10*time.Millisecond, "cache was not invalidated")
}
