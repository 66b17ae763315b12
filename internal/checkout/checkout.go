package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"quickcart/internal/cart"
	"quickcart/internal/models"
	"quickcart/internal/order"
)

// Pricing policy: orders over the threshold ship free, tax is a flat
// rate on the subtotal.
const (
	freeShippingThreshold = 50.0
	shippingFee           = 5.99
	taxRate               = 0.08
)

var ErrEmptyCart = errors.New("cart is empty")

// Totals breaks the charged amount down the way the cart summary and
// the order record both present it.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// CalculateTotals derives all monetary figures from the captured
// line-item prices. Live catalog prices are never consulted here.
func CalculateTotals(items []models.CartLineItem) Totals {
	subtotal := 0.0
	for _, item := range items {
		subtotal += float64(item.Quantity) * item.PriceAtAdd
	}

	shipping := shippingFee
	if subtotal > freeShippingThreshold {
		shipping = 0
	}
	if subtotal == 0 {
		shipping = 0
	}

	tax := subtotal * taxRate

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// PaymentDetails is the raw card input from the checkout form. It is a
// sensitive pass-through: only the masked remainder survives into the
// order record and nothing here is ever logged.
type PaymentDetails struct {
	CardNumber string
	ExpiryDate string
	NameOnCard string
}

// Submission is a validated checkout form.
type Submission struct {
	ShippingAddress models.ShippingAddress
	BillingInfo     models.BillingInfo
	Payment         PaymentDetails
}

// Service sequences order creation and cart clearing as one operation.
type Service struct {
	carts  *cart.Manager
	orders *order.Manager
	logger *zap.Logger
}

func NewService(carts *cart.Manager, orders *order.Manager, logger *zap.Logger) *Service {
	return &Service{carts: carts, orders: orders, logger: logger}
}

// PlaceOrder freezes the session's cart into an order and clears the
// cart. If clearing fails the created order is deleted again, so a
// caller never observes an order alongside a residual cart.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, sub Submission) (models.Order, error) {
	items, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return models.Order{}, err
	}
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	totals := CalculateTotals(items)

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtAdd,
		})
	}

	ord, err := s.orders.Create(ctx, order.CreateInput{
		SessionID:       sessionID,
		Items:           orderItems,
		Total:           totals.Total,
		ShippingAddress: sub.ShippingAddress,
		BillingInfo:     sub.BillingInfo,
		PaymentInfo: models.PaymentInfo{
			CardLast4:  lastFour(sub.Payment.CardNumber),
			ExpiryDate: sub.Payment.ExpiryDate,
			NameOnCard: sub.Payment.NameOnCard,
		},
	})
	if err != nil {
		return models.Order{}, err
	}

	if _, err := s.carts.ClearCart(ctx, sessionID); err != nil {
		// Roll the order back rather than leaving an order next to a
		// still-populated cart.
		if _, delErr := s.orders.Delete(ctx, ord.ID); delErr != nil {
			s.logger.Error("order rollback failed",
				zap.Int("orderId", ord.ID),
				zap.Error(delErr))
		}
		return models.Order{}, fmt.Errorf("clear cart after order: %w", err)
	}

	s.logger.Info("order placed",
		zap.Int("orderId", ord.ID),
		zap.Float64("total", ord.Total))

	return ord, nil
}

// lastFour keeps only the trailing four digits of a card number.
func lastFour(cardNumber string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, cardNumber)

	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}
