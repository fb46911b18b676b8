package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// getClientIP resolves the caller's address, preferring forwarding headers
// set by the load balancer.
func getClientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	if real := c.GetHeader("X-Real-IP"); real != "" {
		return real
	}
	return c.ClientIP()
}
