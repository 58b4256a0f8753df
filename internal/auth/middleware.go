package auth

import (
	"net/http"

	"call-console/internal/credentials"
	"call-console/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequireSession lets a request through only while an orchestrator token is
// stored. Without one the console answers 401 with the login path so the caller
// can redirect the operator.
func RequireSession(store credentials.Store, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := store.Token(c.Request.Context())
		if err != nil {
			logger.FromGin(c).Error("session lookup failed", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}
		if tok == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "redirect": loginPath})
			return
		}
		c.Next()
	}
}
