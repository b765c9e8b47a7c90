package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	// userIDKey holds the authenticated owner id in the request context.
	userIDKey = contextKey("userID")
	// authMethodKey records which middleware authenticated the request.
	authMethodKey = contextKey("authMethod")
)

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, ok := c.Request.Context().Value(userIDKey).(string); ok && userID != "" {
		return userID, true
	}
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		return "", false
	}
	userID, ok := userIDVal.(string)
	return userID, ok && userID != ""
}

// authenticate stores the user in both contexts and enriches the request logger.
func authenticate(c *gin.Context, userID string, method string) {
	logger := GetLoggerFromCtx(c.Request.Context()).With("user_id", userID, "auth_method", method)
	ctx := WithLogger(WithUserID(c.Request.Context(), userID), logger)
	c.Request = c.Request.WithContext(ctx)
	c.Set(string(userIDKey), userID)
	c.Set(string(authMethodKey), method)
}
