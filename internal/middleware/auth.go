package middleware

import (
	"crypto/subtle"
	"net/http"

	"notigate/internal/common"

	"github.com/gin-gonic/gin"
)

// Auth returns middleware enforcing the X-API-Key header against the
// configured key set. Keys identify calling services, not end users; every
// /v2 route sits behind this guard.
func Auth(validKeys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			common.Error(c, http.StatusUnauthorized, "missing X-API-Key header")
			c.Abort()
			return
		}

		if !isValidKey(apiKey, validKeys) {
			common.Error(c, http.StatusUnauthorized, "invalid API key")
			c.Abort()
			return
		}

		c.Next()
	}
}

// isValidKey compares the presented key against each configured key in
// constant time.
func isValidKey(key string, validKeys []string) bool {
	for _, valid := range validKeys {
		if subtle.ConstantTimeCompare([]byte(key), []byte(valid)) == 1 {
			return true
		}
	}
	return false
}
