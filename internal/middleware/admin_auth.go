package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminTokenHeader carries the shared moderator credential.
const AdminTokenHeader = "X-Admin-Token"

// AdminAuthMiddleware guards moderation routes with a single shared static
// credential. The comparison is constant time; there are no sessions or
// per-admin identities.
func AdminAuthMiddleware(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader(AdminTokenHeader)
		if supplied == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin token is required"})
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(supplied), []byte(adminToken)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin token"})
			c.Abort()
			return
		}

		c.Next()
	}
}
