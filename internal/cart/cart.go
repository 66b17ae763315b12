package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"quickcart/internal/models"
	"quickcart/internal/store"
)

var (
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
)

// Manager owns the per-session cart collection. Every mutation runs as
// a read-entire / modify / write-entire sequence against the store; the
// mutex serializes those sequences so concurrent handlers cannot lose
// updates.
type Manager struct {
	mu     sync.Mutex
	store  store.Store
	logger *zap.Logger
}

func NewManager(s store.Store, logger *zap.Logger) *Manager {
	return &Manager{store: s, logger: logger}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// GetCart returns the current line items. An empty or never-written
// cart is an empty slice, not an error.
func (m *Manager) GetCart(ctx context.Context, sessionID string) ([]models.CartLineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx, sessionID)
}

// AddItem merges quantity into an existing line item or appends a new
// one. The price snapshot is taken on the first add only; later adds of
// the same product never rewrite it.
func (m *Manager) AddItem(ctx context.Context, sessionID, productID string, quantity int, unitPrice float64) ([]models.CartLineItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	items, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, models.CartLineItem{
			ProductID:  productID,
			Quantity:   quantity,
			PriceAtAdd: unitPrice,
		})
	}

	if err := m.persist(ctx, sessionID, items); err != nil {
		return nil, err
	}

	m.logger.Info("cart item added",
		zap.String("productId", productID),
		zap.Int("quantity", quantity),
		zap.Bool("merged", merged))

	return items, nil
}

// UpdateQuantity sets the quantity to an absolute value. Zero or less
// removes the line item. Unlike RemoveItem, a missing product is an
// error here.
func (m *Manager) UpdateQuantity(ctx context.Context, sessionID, productID string, newQuantity int) ([]models.CartLineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	index := -1
	for i := range items {
		if items[i].ProductID == productID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, ErrItemNotFound
	}

	if newQuantity <= 0 {
		items = append(items[:index], items[index+1:]...)
	} else {
		items[index].Quantity = newQuantity
	}

	if err := m.persist(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveItem filters out the product. Removing something that is not
// there is a no-op, not an error.
func (m *Manager) RemoveItem(ctx context.Context, sessionID, productID string) ([]models.CartLineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.CartLineItem, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}

	if err := m.persist(ctx, sessionID, filtered); err != nil {
		return nil, err
	}
	return filtered, nil
}

// ClearCart unconditionally empties the collection.
func (m *Manager) ClearCart(ctx context.Context, sessionID string) ([]models.CartLineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx, cartKey(sessionID)); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}
	return []models.CartLineItem{}, nil
}

// ItemCount is the sum of all line item quantities.
func (m *Manager) ItemCount(ctx context.Context, sessionID string) (int, error) {
	items, err := m.GetCart(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count, nil
}

// Total is the subtotal over captured prices. It never consults the
// live catalog, so the figure cannot drift between add and checkout.
func (m *Manager) Total(ctx context.Context, sessionID string) (float64, error) {
	items, err := m.GetCart(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, item := range items {
		total += float64(item.Quantity) * item.PriceAtAdd
	}
	return total, nil
}

func (m *Manager) load(ctx context.Context, sessionID string) ([]models.CartLineItem, error) {
	data, err := m.store.Load(ctx, cartKey(sessionID))
	if errors.Is(err, store.ErrKeyNotFound) {
		return []models.CartLineItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var items []models.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

func (m *Manager) persist(ctx context.Context, sessionID string, items []models.CartLineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := m.store.Save(ctx, cartKey(sessionID), data); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
