package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"quickcart/internal/models"
	"quickcart/internal/store"
)

const ordersKey = "orders"

type NotFoundError struct {
	ID int
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("order %d not found", e.ID)
}

type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("order status cannot move from %s to %s", e.From, e.To)
}

// CreateInput carries everything an order snapshot is built from. Items
// and payment details must already be frozen copies: the manager stores
// them as-is and never looks at the live catalog or the cart again.
type CreateInput struct {
	SessionID       string
	Items           []models.OrderItem
	Total           float64
	ShippingAddress models.ShippingAddress
	BillingInfo     models.BillingInfo
	PaymentInfo     models.PaymentInfo
}

// Manager owns the order collection. Orders are immutable after
// creation except for their status.
type Manager struct {
	mu     sync.Mutex
	store  store.Store
	logger *zap.Logger
}

func NewManager(s store.Store, logger *zap.Logger) *Manager {
	return &Manager{store: s, logger: logger}
}

// GetAll returns the full collection in insertion order. Newest-first
// display ordering is the consumer's concern.
func (m *Manager) GetAll(ctx context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx)
}

func (m *Manager) GetByID(ctx context.Context, id int) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	orders, err := m.load(ctx)
	if err != nil {
		return models.Order{}, err
	}

	for _, ord := range orders {
		if ord.ID == id {
			return ord, nil
		}
	}
	return models.Order{}, NotFoundError{ID: id}
}

// Create appends a new order with the next sequential identifier
// (max existing + 1, starting at 1), status Confirmed and the creation
// time stamped. Clearing the submitting cart is the orchestrator's job.
func (m *Manager) Create(ctx context.Context, input CreateInput) (models.Order, error) {
	if len(input.Items) == 0 {
		return models.Order{}, errors.New("at least one item is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	orders, err := m.load(ctx)
	if err != nil {
		return models.Order{}, err
	}

	items := make([]models.OrderItem, len(input.Items))
	copy(items, input.Items)

	ord := models.Order{
		ID:              nextID(orders),
		SessionID:       input.SessionID,
		Items:           items,
		Total:           input.Total,
		Status:          models.StatusConfirmed,
		OrderDate:       time.Now().UTC(),
		ShippingAddress: input.ShippingAddress,
		BillingInfo:     input.BillingInfo,
		PaymentInfo:     input.PaymentInfo,
	}

	orders = append(orders, ord)
	if err := m.persist(ctx, orders); err != nil {
		return models.Order{}, err
	}

	m.logger.Info("order created",
		zap.Int("orderId", ord.ID),
		zap.Int("itemCount", len(ord.Items)),
		zap.Float64("total", ord.Total))

	return ord, nil
}

// UpdateStatus replaces the status field only, subject to the lifecycle
// graph in status.go.
func (m *Manager) UpdateStatus(ctx context.Context, id int, newStatus models.OrderStatus) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	orders, err := m.load(ctx)
	if err != nil {
		return models.Order{}, err
	}

	for i := range orders {
		if orders[i].ID != id {
			continue
		}

		if !canTransition(orders[i].Status, newStatus) {
			return models.Order{}, InvalidTransitionError{From: orders[i].Status, To: newStatus}
		}

		orders[i].Status = newStatus
		if err := m.persist(ctx, orders); err != nil {
			return models.Order{}, err
		}

		m.logger.Info("order status updated",
			zap.Int("orderId", id),
			zap.String("status", string(newStatus)))

		return orders[i], nil
	}

	return models.Order{}, NotFoundError{ID: id}
}

// Delete removes the order and reports whether one was actually found.
func (m *Manager) Delete(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	orders, err := m.load(ctx)
	if err != nil {
		return false, err
	}

	filtered := make([]models.Order, 0, len(orders))
	found := false
	for _, ord := range orders {
		if ord.ID == id {
			found = true
			continue
		}
		filtered = append(filtered, ord)
	}

	if !found {
		return false, nil
	}

	if err := m.persist(ctx, filtered); err != nil {
		return false, err
	}
	return true, nil
}

func nextID(orders []models.Order) int {
	next := 1
	for _, ord := range orders {
		if ord.ID >= next {
			next = ord.ID + 1
		}
	}
	return next
}

func (m *Manager) load(ctx context.Context) ([]models.Order, error) {
	data, err := m.store.Load(ctx, ordersKey)
	if errors.Is(err, store.ErrKeyNotFound) {
		return []models.Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	var orders []models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (m *Manager) persist(ctx context.Context, orders []models.Order) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	if err := m.store.Save(ctx, ordersKey, data); err != nil {
		return fmt.Errorf("persist orders: %w", err)
	}
	return nil
}
