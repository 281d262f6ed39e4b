package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// DeviceKey guards location ingest: X-Device-Key must match the bcrypt
// hash. With no hash configured every request is refused.
func DeviceKey(hash string) gin.HandlerFunc {
	hashed := []byte(strings.TrimSpace(hash))
	return func(c *gin.Context) {
		if len(hashed) == 0 {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "location ingest disabled",
				"code":  "ingest_disabled",
			})
			return
		}
		key := strings.TrimSpace(c.GetHeader("X-Device-Key"))
		if key == "" || bcrypt.CompareHashAndPassword(hashed, []byte(key)) != nil {
			abortUnauthorized(c, "invalid device key")
			return
		}
		c.Next()
	}
}
