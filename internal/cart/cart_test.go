package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quickcart/internal/store"
)

const session = "guest:test"

func newTestManager() *Manager {
	return NewManager(store.NewMemoryStore(), zap.NewNop())
}

func TestGetCartEmptyByDefault(t *testing.T) {
	m := newTestManager()

	items, err := m.GetCart(context.Background(), session)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddItemMergesQuantityKeepsFirstPrice(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	_, err := m.AddItem(ctx, session, "1", 2, 10.00)
	require.NoError(t, err)

	// Later add at a different catalog price: quantity sums, the
	// first-add snapshot wins.
	items, err := m.AddItem(ctx, session, "1", 3, 12.00)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ProductID)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 10.00, items[0].PriceAtAdd)
}

func TestAddItemQuantitySumsOverManyCalls(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := m.AddItem(ctx, session, "7", 2, 3.50)
		require.NoError(t, err)
	}

	items, err := m.GetCart(ctx, session)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 8, items[0].Quantity)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	m := newTestManager()

	_, err := m.AddItem(context.Background(), session, "1", 0, 10.00)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = m.AddItem(context.Background(), session, "1", -2, 10.00)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestUpdateQuantitySetsAbsoluteValue(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	_, err := m.AddItem(ctx, session, "1", 2, 10.00)
	require.NoError(t, err)

	items, err := m.UpdateQuantity(ctx, session, "1", 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
	assert.Equal(t, 10.00, items[0].PriceAtAdd)
}

func TestUpdateQuantityZeroRemovesItem(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	_, err := m.AddItem(ctx, session, "1", 2, 10.00)
	require.NoError(t, err)

	items, err := m.UpdateQuantity(ctx, session, "1", 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateQuantityMissingItemFails(t *testing.T) {
	m := newTestManager()

	_, err := m.UpdateQuantity(context.Background(), session, "99", 5)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	_, err := m.AddItem(ctx, session, "1", 1, 10.00)
	require.NoError(t, err)
	_, err = m.AddItem(ctx, session, "2", 1, 20.00)
	require.NoError(t, err)

	items, err := m.RemoveItem(ctx, session, "1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ProductID)

	// Removing an absent product is a no-op, unlike UpdateQuantity.
	items, err = m.RemoveItem(ctx, session, "1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestClearCart(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	_, err := m.AddItem(ctx, session, "1", 3, 10.00)
	require.NoError(t, err)

	items, err := m.ClearCart(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = m.GetCart(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemCountAndTotal(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	_, err := m.AddItem(ctx, session, "1", 2, 10.00)
	require.NoError(t, err)
	_, err = m.AddItem(ctx, session, "2", 3, 5.50)
	require.NoError(t, err)

	count, err := m.ItemCount(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	total, err := m.Total(ctx, session)
	require.NoError(t, err)
	assert.InDelta(t, 2*10.00+3*5.50, total, 1e-9)
}

func TestCartRoundTripThroughStore(t *testing.T) {
	backing := store.NewMemoryStore()
	ctx := context.Background()

	m1 := NewManager(backing, zap.NewNop())
	_, err := m1.AddItem(ctx, session, "1", 2, 10.00)
	require.NoError(t, err)
	_, err = m1.AddItem(ctx, session, "2", 1, 4.25)
	require.NoError(t, err)

	// A fresh manager over the same store sees the identical
	// collection, insertion order included.
	m2 := NewManager(backing, zap.NewNop())
	items, err := m2.GetCart(ctx, session)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ProductID)
	assert.Equal(t, "2", items[1].ProductID)
	assert.Equal(t, 10.00, items[0].PriceAtAdd)
}

func TestSessionsAreIsolated(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	_, err := m.AddItem(ctx, "guest:a", "1", 1, 10.00)
	require.NoError(t, err)

	items, err := m.GetCart(ctx, "guest:b")
	require.NoError(t, err)
	assert.Empty(t, items)
}
