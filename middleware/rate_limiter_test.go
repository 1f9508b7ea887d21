package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Real-IP", "203.0.113.7")
		r.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusOK, do().Code)

	// Burn through the burst allowance; the bucket holds 120 tokens and
	// refills far slower than this loop runs.
	var last *httptest.ResponseRecorder
	for i := 0; i < 130; i++ {
		last = do()
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)

	var body struct {
		Message string `json:"message"`
		Details string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(last.Body.Bytes(), &body))
	assert.Equal(t, "Rate limit exceeded", body.Message)
	assert.Contains(t, body.Details, "203.0.113.7")
}

func TestRateLimitMiddlewarePerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	do := func(ip string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Real-IP", ip)
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 131; i++ {
		do("198.51.100.1")
	}
	assert.Equal(t, http.StatusTooManyRequests, do("198.51.100.1"))
	assert.Equal(t, http.StatusOK, do("198.51.100.2"), "a different client keeps its own bucket")
}
