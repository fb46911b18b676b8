package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"lavellh/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// JWTAuthMiddleware validates the bearer token, requires the given role claim
// and sets the actor id on the context. Revoked tokens are rejected via the
// auth cache denylist.
func JWTAuthMiddleware(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			abortUnauthorized(c)
			return
		}

		actorID, role, err := utils.ExtractActorFromToken(tokenString)
		if err != nil || actorID == "" {
			abortUnauthorized(c)
			return
		}
		if role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.Envelope{
				Success: false,
				Error:   &utils.APIError{Code: "Unauthorized", Message: "Insufficient role"},
			})
			return
		}

		if tokenRevoked(c, tokenString) {
			abortUnauthorized(c)
			return
		}

		c.Set("actorID", actorID)
		c.Set("actorRole", role)
		c.Next()
	}
}

// tokenRevoked checks the denylist in the auth cache. An uninitialised cache
// or a cache outage lets the validly signed token through.
func tokenRevoked(c *gin.Context, tokenString string) bool {
	authCache := utils.AuthCacheClient
	if authCache == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	key := utils.AuthCachePrefix + utils.HashToken(tokenString)
	if err := authCache.Get(ctx, key).Err(); err == nil {
		return true
	} else if err != redis.Nil {
		utils.GetLogger().Warn("auth cache lookup failed", zap.Error(err))
	}
	return false
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, utils.Envelope{
		Success: false,
		Error:   &utils.APIError{Code: "Unauthorized", Message: "Insufficient authorization"},
	})
}
