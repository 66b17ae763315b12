package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quickcart/internal/middleware"
	"quickcart/internal/wishlist"
)

type toggleWishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func GetWishlist(wishlists *wishlist.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /wishlist"
		defer handlePanic(c, logger, route)

		ids, err := wishlists.GetAll(c.Request.Context(), middleware.SessionID(c))
		if err != nil {
			if respondStorageFailure(c, logger, route, err) {
				return
			}
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not load wishlist")
			return
		}

		c.JSON(http.StatusOK, ids)
	}
}

func AddWishlistItem(wishlists *wishlist.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /wishlist/:productId"
		defer handlePanic(c, logger, route)

		ids, err := wishlists.Add(c.Request.Context(), middleware.SessionID(c), c.Param("productId"))
		if err != nil {
			if respondStorageFailure(c, logger, route, err) {
				return
			}
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not update wishlist")
			return
		}

		c.JSON(http.StatusOK, ids)
	}
}

func RemoveWishlistItem(wishlists *wishlist.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /wishlist/:productId"
		defer handlePanic(c, logger, route)

		ids, err := wishlists.Remove(c.Request.Context(), middleware.SessionID(c), c.Param("productId"))
		if err != nil {
			if respondStorageFailure(c, logger, route, err) {
				return
			}
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not update wishlist")
			return
		}

		c.JSON(http.StatusOK, ids)
	}
}

func ToggleWishlistItem(wishlists *wishlist.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /wishlist/toggle"
		defer handlePanic(c, logger, route)

		var req toggleWishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, logger, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ids, err := wishlists.Toggle(c.Request.Context(), middleware.SessionID(c), req.ProductID)
		if err != nil {
			if respondStorageFailure(c, logger, route, err) {
				return
			}
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not update wishlist")
			return
		}

		c.JSON(http.StatusOK, ids)
	}
}
