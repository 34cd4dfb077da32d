package middleware

import (
	"net/http"

	"github.com/yzhyun/askmate/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminAuth guards admin endpoints. The admin secret rides every request —
// there are no server-side sessions — in the X-Admin-Password header or a
// password query parameter.
func AdminAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		candidate := c.GetHeader("X-Admin-Password")
		if candidate == "" {
			candidate = c.Query("password")
		}
		if candidate == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin password required"})
			return
		}

		ok, err := auth.VerifyAdmin(candidate)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin password"})
			return
		}

		c.Next()
	}
}
