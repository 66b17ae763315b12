package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"quickcart/internal/store"
)

// Manager tracks the set of liked product ids for a session. Existence
// alone is the signal; the persisted form is a JSON array in insertion
// order.
type Manager struct {
	mu     sync.Mutex
	store  store.Store
	logger *zap.Logger
}

func NewManager(s store.Store, logger *zap.Logger) *Manager {
	return &Manager{store: s, logger: logger}
}

func wishlistKey(sessionID string) string {
	return "wishlist:" + sessionID
}

func (m *Manager) GetAll(ctx context.Context, sessionID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx, sessionID)
}

// Add inserts the product id if it is not already present.
func (m *Manager) Add(ctx context.Context, sessionID, productID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if contains(ids, productID) {
		return ids, nil
	}

	ids = append(ids, productID)
	if err := m.persist(ctx, sessionID, ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Remove filters out the product id; removing an absent id is a no-op.
func (m *Manager) Remove(ctx context.Context, sessionID, productID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !contains(ids, productID) {
		return ids, nil
	}

	filtered := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != productID {
			filtered = append(filtered, id)
		}
	}

	if err := m.persist(ctx, sessionID, filtered); err != nil {
		return nil, err
	}
	return filtered, nil
}

// Toggle removes the id if present, adds it otherwise. Two toggles of
// the same id return the set to its original state.
func (m *Manager) Toggle(ctx context.Context, sessionID, productID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	wishlisted := contains(ids, productID)
	if wishlisted {
		filtered := make([]string, 0, len(ids))
		for _, id := range ids {
			if id != productID {
				filtered = append(filtered, id)
			}
		}
		ids = filtered
	} else {
		ids = append(ids, productID)
	}

	if err := m.persist(ctx, sessionID, ids); err != nil {
		return nil, err
	}

	m.logger.Info("wishlist toggled",
		zap.String("productId", productID),
		zap.Bool("wishlisted", !wishlisted))

	return ids, nil
}

func contains(ids []string, productID string) bool {
	for _, id := range ids {
		if id == productID {
			return true
		}
	}
	return false
}

func (m *Manager) load(ctx context.Context, sessionID string) ([]string, error) {
	data, err := m.store.Load(ctx, wishlistKey(sessionID))
	if errors.Is(err, store.ErrKeyNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode wishlist: %w", err)
	}
	return ids, nil
}

func (m *Manager) persist(ctx context.Context, sessionID string, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode wishlist: %w", err)
	}
	if err := m.store.Save(ctx, wishlistKey(sessionID), data); err != nil {
		return fmt.Errorf("persist wishlist: %w", err)
	}
	return nil
}
