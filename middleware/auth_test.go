package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lavellh/models"
	"lavellh/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", JWTAuthMiddleware(role), func(c *gin.Context) {
		c.String(http.StatusOK, "%v", c.MustGet("actorID"))
	})
	return r
}

func doAuthRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	router := authTestRouter(models.ActorUser)

	userToken, err := utils.GenerateToken("user-1", models.ActorUser, time.Hour)
	require.NoError(t, err)
	providerToken, err := utils.GenerateToken("prov-1", models.ActorProvider, time.Hour)
	require.NoError(t, err)
	expiredToken, err := utils.GenerateToken("user-1", models.ActorUser, -time.Minute)
	require.NoError(t, err)

	t.Run("valid token sets the actor", func(t *testing.T) {
		w := doAuthRequest(router, "Bearer "+userToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := doAuthRequest(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := doAuthRequest(router, "Token "+userToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doAuthRequest(router, "Bearer not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		w := doAuthRequest(router, "Bearer "+providerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		w := doAuthRequest(router, "Bearer "+expiredToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
