package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// professionalID reads the authenticated professional id set by the auth
// middleware. It aborts with 401 when the id is missing.
func professionalID(c *gin.Context) (string, bool) {
	val, exists := c.Get("professionalID")
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return "", false
	}
	id, ok := val.(string)
	if !ok || id == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return "", false
	}
	return id, true
}
