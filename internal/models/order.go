package models

import "time"

type OrderStatus string

const (
	StatusConfirmed  OrderStatus = "Confirmed"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// ParseOrderStatus maps a raw string onto a known status value.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	switch OrderStatus(raw) {
	case StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return OrderStatus(raw), true
	}
	return "", false
}

// OrderItem is a frozen copy of a cart line item taken at submission time.
type OrderItem struct {
	ProductID       string  `json:"productId"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}

type ShippingAddress struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

type BillingInfo struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// PaymentInfo holds only the masked remainder of the submitted card.
// The raw number is reduced to its last four digits before it reaches
// the order manager and is never persisted or logged in full.
type PaymentInfo struct {
	CardLast4  string `json:"cardLast4"`
	ExpiryDate string `json:"expiryDate"`
	NameOnCard string `json:"nameOnCard"`
}

// Order is the persisted order record. Everything except Status is
// immutable after creation; Total is computed once at creation and
// never rederived.
type Order struct {
	ID              int             `json:"id"`
	SessionID       string          `json:"sessionId,omitempty"`
	Items           []OrderItem     `json:"items"`
	Total           float64         `json:"total"`
	Status          OrderStatus     `json:"status"`
	OrderDate       time.Time       `json:"orderDate"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	BillingInfo     BillingInfo     `json:"billingInfo"`
	PaymentInfo     PaymentInfo     `json:"paymentInfo"`
}
