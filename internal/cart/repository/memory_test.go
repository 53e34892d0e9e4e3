package repository

import (
	"context"
	"testing"

	"github.com/JackHouche/cbdproject/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_AddItem_CreatesCart(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	err := repo.AddItem(ctx, "u1", domain.LineItem{ProductID: "p1", Name: "oil", UnitPrice: 4999, Quantity: 2})
	require.NoError(t, err)

	cart, err := repo.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", cart.UserID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.False(t, cart.CreatedAt.IsZero())
}

func TestMemoryRepository_AddItem_IncrementsExisting(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.AddItem(ctx, "u1", domain.LineItem{ProductID: "p1", Quantity: 2}))
	require.NoError(t, repo.AddItem(ctx, "u1", domain.LineItem{ProductID: "p1", Quantity: 3}))

	cart, err := repo.GetCart(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestMemoryRepository_GetCart_NotFound(t *testing.T) {
	repo := NewMemoryRepository()
	_, err := repo.GetCart(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestMemoryRepository_GetCart_ReturnsCopy(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.AddItem(ctx, "u1", domain.LineItem{ProductID: "p1", Quantity: 1}))

	cart, err := repo.GetCart(ctx, "u1")
	require.NoError(t, err)
	cart.Items[0].Quantity = 99

	again, err := repo.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].Quantity)
}

func TestMemoryRepository_UpdateItemQuantity(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.AddItem(ctx, "u1", domain.LineItem{ProductID: "p1", Quantity: 1}))

	require.NoError(t, repo.UpdateItemQuantity(ctx, "u1", "p1", 4))
	cart, _ := repo.GetCart(ctx, "u1")
	assert.Equal(t, 4, cart.Items[0].Quantity)

	err := repo.UpdateItemQuantity(ctx, "u1", "missing", 2)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestMemoryRepository_RemoveItem(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.AddItem(ctx, "u1", domain.LineItem{ProductID: "p1", Quantity: 1}))
	require.NoError(t, repo.AddItem(ctx, "u1", domain.LineItem{ProductID: "p2", Quantity: 1}))

	require.NoError(t, repo.RemoveItem(ctx, "u1", "p1"))
	cart, _ := repo.GetCart(ctx, "u1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)

	// Removing an item that is not there is not an error
	require.NoError(t, repo.RemoveItem(ctx, "u1", "p1"))

	// But removing from a cart that does not exist is
	err := repo.RemoveItem(ctx, "ghost", "p1")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestMemoryRepository_DeleteCart(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.AddItem(ctx, "u1", domain.LineItem{ProductID: "p1", Quantity: 1}))

	require.NoError(t, repo.DeleteCart(ctx, "u1"))
	_, err := repo.GetCart(ctx, "u1")
	assert.ErrorIs(t, err, ErrCartNotFound)

	assert.ErrorIs(t, repo.DeleteCart(ctx, "u1"), ErrCartNotFound)
}
