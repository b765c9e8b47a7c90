package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// APIKeyHeader carries the legacy ingestion key.
const APIKeyHeader = "x-api-key"

// IngestAPIKeyAuth authenticates the legacy import feed. The presented key is
// checked against a bcrypt hash and, when it matches, the request acts as ownerID.
func IngestAPIKeyAuth(keyHash string, ownerID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		if keyHash == "" || ownerID == "" {
			logger.Warn("Legacy ingestion called but not configured")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Ingestion is not enabled"})
			return
		}

		apiKey := c.GetHeader(APIKeyHeader)
		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(apiKey)); err != nil {
			logger.Warn("Invalid ingestion API key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		authenticate(c, ownerID, "api_key")
		c.Next()
	}
}
