package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quickcart/internal/store"
)

func handlePanic(c *gin.Context, logger *zap.Logger, route string) {
	if r := recover(); r != nil {
		logger.Error("panic recovered", zap.String("route", route), zap.Any("panic", r))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondWithError(c *gin.Context, logger *zap.Logger, status int, route, message string) {
	logger.Warn("request failed",
		zap.String("route", route),
		zap.Int("status", status),
		zap.String("message", message))
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondStorageFailure distinguishes a broken store from plain domain
// errors so the client can decide between "retry" and "give up".
func respondStorageFailure(c *gin.Context, logger *zap.Logger, route string, err error) bool {
	var storageErr *store.StorageError
	if errors.As(err, &storageErr) {
		logger.Error("storage failure",
			zap.String("route", route),
			zap.String("key", storageErr.Key),
			zap.Error(storageErr.Err))
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable, retry"})
		return true
	}
	return false
}
