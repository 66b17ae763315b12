package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sessionContextKey = "sessionId"
	sessionHeader     = "X-Session-Id"
)

// Session resolves the storage namespace for cart, order, and wishlist
// state. Authentication itself lives in an external service; this
// middleware only consumes its bearer token. Signed-in callers are
// keyed by the token's userId claim, anonymous callers by a generated
// guest id echoed back in the X-Session-Id header so the client can
// keep presenting it.
func Session(jwtSecret string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw != "" {
			userID, err := userIDFromBearer(raw, jwtSecret)
			if err != nil {
				logger.Warn("session token rejected", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			c.Set(sessionContextKey, "user:"+userID)
			c.Next()
			return
		}

		guestID := strings.TrimSpace(c.GetHeader(sessionHeader))
		if guestID == "" {
			guestID = uuid.NewString()
		}
		c.Header(sessionHeader, guestID)
		c.Set(sessionContextKey, "guest:"+guestID)
		c.Next()
	}
}

// SessionID returns the namespace set by Session for the request.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}

func userIDFromBearer(header, secret string) (string, error) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", jwt.ErrTokenMalformed
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}

	userID, _ := claims["userId"].(string)
	if strings.TrimSpace(userID) == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return userID, nil
}
