package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quickcart/internal/middleware"
	"quickcart/internal/models"
	"quickcart/internal/order"
)

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetOrders lists the caller's order history, newest first. The manager
// itself keeps insertion order; sorting is applied here, at the edge.
func GetOrders(orders *order.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, logger, route)

		all, err := orders.GetAll(c.Request.Context())
		if err != nil {
			if respondStorageFailure(c, logger, route, err) {
				return
			}
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not load orders")
			return
		}

		session := middleware.SessionID(c)
		mine := make([]models.Order, 0, len(all))
		for _, ord := range all {
			if ord.SessionID == session {
				mine = append(mine, ord)
			}
		}

		sort.Slice(mine, func(i, j int) bool { return mine[i].ID > mine[j].ID })

		c.JSON(http.StatusOK, mine)
	}
}

func GetOrder(orders *order.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id"
		defer handlePanic(c, logger, route)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondWithError(c, logger, http.StatusBadRequest, route, "invalid id")
			return
		}

		ord, err := orders.GetByID(c.Request.Context(), id)
		if err != nil {
			var notFound order.NotFoundError
			if errors.As(err, &notFound) {
				respondWithError(c, logger, http.StatusNotFound, route, "order not found")
				return
			}
			if respondStorageFailure(c, logger, route, err) {
				return
			}
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not load order")
			return
		}

		// Orders are only visible to the session that placed them.
		if ord.SessionID != middleware.SessionID(c) {
			respondWithError(c, logger, http.StatusNotFound, route, "order not found")
			return
		}

		c.JSON(http.StatusOK, ord)
	}
}

/* =========================
   ADMIN
========================= */

func GetAllOrders(orders *order.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders"
		defer handlePanic(c, logger, route)

		all, err := orders.GetAll(c.Request.Context())
		if err != nil {
			if respondStorageFailure(c, logger, route, err) {
				return
			}
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not load orders")
			return
		}

		c.JSON(http.StatusOK, all)
	}
}

func UpdateOrderStatus(orders *order.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/orders/:id/status"
		defer handlePanic(c, logger, route)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondWithError(c, logger, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, logger, http.StatusBadRequest, route, "invalid request body")
			return
		}

		status, ok := models.ParseOrderStatus(req.Status)
		if !ok {
			respondWithError(c, logger, http.StatusBadRequest, route, "unknown status")
			return
		}

		ord, err := orders.UpdateStatus(c.Request.Context(), id, status)
		if err != nil {
			var notFound order.NotFoundError
			if errors.As(err, &notFound) {
				respondWithError(c, logger, http.StatusNotFound, route, "order not found")
				return
			}
			var invalid order.InvalidTransitionError
			if errors.As(err, &invalid) {
				respondWithError(c, logger, http.StatusConflict, route, invalid.Error())
				return
			}
			if respondStorageFailure(c, logger, route, err) {
				return
			}
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not update order")
			return
		}

		c.JSON(http.StatusOK, ord)
	}
}

func DeleteOrder(orders *order.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/orders/:id"
		defer handlePanic(c, logger, route)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondWithError(c, logger, http.StatusBadRequest, route, "invalid id")
			return
		}

		found, err := orders.Delete(c.Request.Context(), id)
		if err != nil {
			if respondStorageFailure(c, logger, route, err) {
				return
			}
			respondWithError(c, logger, http.StatusInternalServerError, route, "could not delete order")
			return
		}
		if !found {
			respondWithError(c, logger, http.StatusNotFound, route, "order not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}
