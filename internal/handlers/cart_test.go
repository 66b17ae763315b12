package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"quickcart/internal/cart"
	"quickcart/internal/catalog"
	"quickcart/internal/checkout"
	"quickcart/internal/middleware"
	"quickcart/internal/models"
	"quickcart/internal/order"
	"quickcart/internal/store"
	"quickcart/internal/wishlist"
)

type fakeCatalog struct {
	products map[string]models.Product
}

func (f *fakeCatalog) GetAll(context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalog) GetByID(_ context.Context, id string) (models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return models.Product{}, catalog.ProductNotFoundError{ID: id}
	}
	return p, nil
}

func (f *fakeCatalog) GetByCategory(_ context.Context, category string) ([]models.Product, error) {
	out := make([]models.Product, 0)
	for _, p := range f.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

type testEnv struct {
	router *gin.Engine
	carts  *cart.Manager
	orders *order.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	backing := store.NewMemoryStore()
	carts := cart.NewManager(backing, logger)
	orders := order.NewManager(backing, logger)
	wishlists := wishlist.NewManager(backing, logger)
	svc := checkout.NewService(carts, orders, logger)

	productID := primitive.NewObjectID()
	products := &fakeCatalog{products: map[string]models.Product{
		"1": {ID: productID, Name: "Widget", Price: 12.00, Category: "Gadgets", Stock: 5, InStock: true},
		"2": {Name: "Brick", Price: 3.00, Category: "Building", Stock: 0, InStock: false},
	}}

	r := gin.New()
	session := r.Group("/")
	session.Use(middleware.Session("test-secret", logger))
	{
		session.GET("/cart", GetCart(carts, logger))
		session.POST("/cart/items", AddCartItem(carts, products, logger))
		session.PUT("/cart/items/:productId", UpdateCartItem(carts, logger))
		session.DELETE("/cart/items/:productId", RemoveCartItem(carts, logger))
		session.DELETE("/cart", ClearCart(carts, logger))
		session.GET("/cart/summary", CartSummary(carts, logger))
		session.POST("/checkout", PlaceOrder(svc, logger))
		session.GET("/orders", GetOrders(orders, logger))
		session.GET("/orders/:id", GetOrder(orders, logger))
		session.GET("/wishlist", GetWishlist(wishlists, logger))
		session.POST("/wishlist/toggle", ToggleWishlistItem(wishlists, logger))
	}

	return &testEnv{router: r, carts: carts, orders: orders}
}

// do performs a request pinned to one guest session.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", "test-session")

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestAddCartItemUsesCatalogPrice(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/cart/items", gin.H{"productId": "1", "quantity": 2})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var items []models.CartLineItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 || items[0].PriceAtAdd != 12.00 {
		t.Fatalf("unexpected cart: %+v", items)
	}
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/cart/items", gin.H{"productId": "99"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestAddCartItemOutOfStock(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/cart/items", gin.H{"productId": "2"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateCartItemMissing(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "PUT", "/cart/items/99", gin.H{"quantity": 5})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestUpdateCartItemZeroRemoves(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, "POST", "/cart/items", gin.H{"productId": "1"})
	w := env.do(t, "PUT", "/cart/items/1", gin.H{"quantity": 0})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var items []models.CartLineItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}

func TestCartSummaryTotals(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, "POST", "/cart/items", gin.H{"productId": "1", "quantity": 2})

	w := env.do(t, "GET", "/cart/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var summary struct {
		ItemCount int             `json:"itemCount"`
		Totals    checkout.Totals `json:"totals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if summary.ItemCount != 2 {
		t.Fatalf("expected itemCount=2, got %d", summary.ItemCount)
	}
	if summary.Totals.Subtotal != 24.00 || summary.Totals.Shipping != 5.99 {
		t.Fatalf("unexpected totals: %+v", summary.Totals)
	}
}

func checkoutBody() gin.H {
	return gin.H{
		"shippingAddress": gin.H{
			"firstName": "Ada", "lastName": "Lovelace",
			"address": "1 Analytical Way", "city": "London",
			"state": "LDN", "zipCode": "E1 6AN", "country": "UK",
		},
		"billingInfo": gin.H{
			"email": "ada@example.com", "address": "1 Analytical Way",
			"city": "London", "state": "LDN", "zipCode": "E1 6AN",
		},
		"paymentInfo": gin.H{
			"cardNumber": "4111 1111 1111 4242",
			"expiryDate": "12/27",
			"nameOnCard": "Ada Lovelace",
		},
	}
}

func TestPlaceOrderEndToEnd(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, "POST", "/cart/items", gin.H{"productId": "1", "quantity": 2})

	w := env.do(t, "POST", "/checkout", checkoutBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		OrderID int          `json:"orderId"`
		Order   models.Order `json:"order"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.OrderID != 1 || resp.Order.Status != models.StatusConfirmed {
		t.Fatalf("unexpected order: %+v", resp.Order)
	}
	if resp.Order.PaymentInfo.CardLast4 != "4242" {
		t.Fatalf("expected masked card, got %q", resp.Order.PaymentInfo.CardLast4)
	}

	// The cart is cleared as part of placing the order.
	w = env.do(t, "GET", "/cart", nil)
	var items []models.CartLineItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected cleared cart, got %+v", items)
	}

	// And the order shows up in the session's history.
	w = env.do(t, "GET", "/orders", nil)
	var orders []models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &orders); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != 1 {
		t.Fatalf("unexpected order history: %+v", orders)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/checkout", checkoutBody())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetOrderHiddenFromOtherSessions(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, "POST", "/cart/items", gin.H{"productId": "1"})
	env.do(t, "POST", "/checkout", checkoutBody())

	req := httptest.NewRequest("GET", "/orders/1", nil)
	req.Header.Set("X-Session-Id", "someone-else")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign session, got %d", w.Code)
	}
}

func TestWishlistToggleRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/wishlist/toggle", gin.H{"productId": "1"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var ids []string
	if err := json.Unmarshal(w.Body.Bytes(), &ids); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(ids) != 1 || ids[0] != "1" {
		t.Fatalf("unexpected wishlist: %+v", ids)
	}

	w = env.do(t, "POST", "/wishlist/toggle", gin.H{"productId": "1"})
	if err := json.Unmarshal(w.Body.Bytes(), &ids); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty wishlist after second toggle, got %+v", ids)
	}
}
