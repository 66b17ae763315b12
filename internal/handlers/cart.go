package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quickcart/internal/cart"
	"quickcart/internal/catalog"
	"quickcart/internal/checkout"
	"quickcart/internal/middleware"
)

/* =========================
   REQUEST DTOs
========================= */

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

/* =========================
   CART
========================= */

func GetCart(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart"
		defer handlePanic(c, logger, route)

		items, err := carts.GetCart(c.Request.Context(), middleware.SessionID(c))
		if err != nil {
			if respondStorageFailure(c, logger, route, err) {
				return
			}
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not load cart")
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

// AddCartItem resolves the unit price from the catalog at add time, so
// the snapshot the cart keeps is the price the shopper actually saw.
func AddCartItem(carts *cart.Manager, products catalog.Provider, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/items"
		defer handlePanic(c, logger, route)

		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, logger, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		if req.Quantity < 0 {
			respondWithError(c, logger, http.StatusBadRequest, route, "quantity must be greater than zero")
			return
		}

		product, err := products.GetByID(c.Request.Context(), req.ProductID)
		if err != nil {
			var notFound catalog.ProductNotFoundError
			if errors.As(err, &notFound) {
				respondWithError(c, logger, http.StatusNotFound, route, "product not found")
				return
			}
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not resolve product")
			return
		}
		if !product.InStock {
			respondWithError(c, logger, http.StatusBadRequest, route, "product out of stock")
			return
		}

		items, err := carts.AddItem(c.Request.Context(), middleware.SessionID(c), req.ProductID, req.Quantity, product.Price)
		if err != nil {
			if respondStorageFailure(c, logger, route, err) {
				return
			}
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not add item")
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

func UpdateCartItem(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /cart/items/:productId"
		defer handlePanic(c, logger, route)

		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
			respondWithError(c, logger, http.StatusBadRequest, route, "invalid request body")
			return
		}

		items, err := carts.UpdateQuantity(c.Request.Context(), middleware.SessionID(c), c.Param("productId"), *req.Quantity)
		if err != nil {
			if errors.Is(err, cart.ErrItemNotFound) {
				respondWithError(c, logger, http.StatusNotFound, route, "item not found in cart")
				return
			}
			if respondStorageFailure(c, logger, route, err) {
				return
			}
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not update item")
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

func RemoveCartItem(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart/items/:productId"
		defer handlePanic(c, logger, route)

		items, err := carts.RemoveItem(c.Request.Context(), middleware.SessionID(c), c.Param("productId"))
		if err != nil {
			if respondStorageFailure(c, logger, route, err) {
				return
			}
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not remove item")
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

func ClearCart(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart"
		defer handlePanic(c, logger, route)

		items, err := carts.ClearCart(c.Request.Context(), middleware.SessionID(c))
		if err != nil {
			if respondStorageFailure(c, logger, route, err) {
				return
			}
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not clear cart")
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

// CartSummary reports the item count plus the same totals breakdown
// checkout will charge.
func CartSummary(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart/summary"
		defer handlePanic(c, logger, route)

		items, err := carts.GetCart(c.Request.Context(), middleware.SessionID(c))
		if err != nil {
			if respondStorageFailure(c, logger, route, err) {
				return
			}
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not load cart")
			return
		}

		count := 0
		for _, item := range items {
			count += item.Quantity
		}

		c.JSON(http.StatusOK, gin.H{
			"itemCount": count,
			"totals":    checkout.CalculateTotals(items),
		})
	}
}
