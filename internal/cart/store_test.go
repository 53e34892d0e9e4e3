package cart

import (
	"testing"

	"github.com/JackHouche/cbdproject/internal/domain"
	"github.com/stretchr/testify/assert"
)

var (
	oilA    = domain.Product{ID: "a", Name: "CBD oil 10%", Price: 1000}
	flowerB = domain.Product{ID: "b", Name: "CBD flowers", Price: 2500}
)

func TestStore_AddItem_MergesOnProductID(t *testing.T) {
	s := NewStore()
	s.AddItem(oilA, 1)
	s.AddItem(flowerB, 2)
	s.AddItem(oilA, 3)

	items := s.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ProductID)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, 2, items[1].Quantity)
}

func TestStore_AddItem_QuantitiesAccumulate(t *testing.T) {
	s := NewStore()
	for _, q := range []int{1, 2, 5, 1} {
		s.AddItem(oilA, q)
	}
	items := s.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 9, items[0].Quantity)
}

func TestStore_AddItem_IgnoresNonPositiveQuantity(t *testing.T) {
	s := NewStore()
	s.AddItem(oilA, 0)
	s.AddItem(oilA, -2)
	assert.Empty(t, s.Items())
}

func TestStore_UpdateQuantity_BelowOneIsNoOp(t *testing.T) {
	s := NewStore()
	s.AddItem(oilA, 2)

	s.UpdateQuantity("a", 0)
	assert.Equal(t, 2, s.Items()[0].Quantity)

	s.UpdateQuantity("a", -1)
	assert.Equal(t, 2, s.Items()[0].Quantity)

	s.UpdateQuantity("a", 7)
	assert.Equal(t, 7, s.Items()[0].Quantity)
}

func TestStore_RemoveItem_AbsentIsNoOp(t *testing.T) {
	s := NewStore()
	s.AddItem(oilA, 1)
	s.RemoveItem("missing")
	assert.Len(t, s.Items(), 1)

	s.RemoveItem("a")
	assert.Empty(t, s.Items())
}

func TestStore_Subtotal_RecomputedAfterEveryMutation(t *testing.T) {
	s := NewStore()
	s.AddItem(oilA, 3)    // 30.00
	s.AddItem(flowerB, 1) // 25.00
	assert.Equal(t, domain.Cents(5500), s.Subtotal())

	s.RemoveItem("a")
	assert.Equal(t, domain.Cents(2500), s.Subtotal())

	s.UpdateQuantity("b", 2)
	assert.Equal(t, domain.Cents(5000), s.Subtotal())

	// Recompute-from-scratch equality against the item data.
	var want domain.Cents
	for _, li := range s.Items() {
		want += li.Extended()
	}
	assert.Equal(t, want, s.Subtotal())
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	s.AddItem(oilA, 2)
	s.AddItem(flowerB, 1)

	s.Clear()
	assert.Empty(t, s.Items())
	assert.Equal(t, domain.Cents(0), s.Subtotal())
	assert.Equal(t, 0, s.ItemCount())
}

func TestStore_SnapshotAndLoad_RoundTrip(t *testing.T) {
	s := NewStore()
	s.AddItem(oilA, 3)
	s.AddItem(flowerB, 1)

	snap := s.Snapshot()

	restored := NewStore()
	restored.Load(snap.Items)

	assert.Equal(t, s.Items(), restored.Items())
	assert.Equal(t, s.Subtotal(), restored.Subtotal())
}

func TestStore_Load_DropsInvalidEntries(t *testing.T) {
	s := NewStore()
	s.Load([]domain.LineItem{
		{ProductID: "a", UnitPrice: 1000, Quantity: 2},
		{ProductID: "", UnitPrice: 500, Quantity: 1},
		{ProductID: "b", UnitPrice: 2500, Quantity: 0},
	})

	items := s.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ProductID)
}

func TestStore_ItemCount(t *testing.T) {
	s := NewStore()
	s.AddItem(oilA, 2)
	s.AddItem(flowerB, 3)
	assert.Equal(t, 5, s.ItemCount())
}
