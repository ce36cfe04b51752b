package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/config"
)

// APIKeyMiddleware protege o endpoint conversacional. A chave é única por
// deployment e viaja no header x-api-key.
func APIKeyMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("x-api-key")
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(cfg.BotAPIKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid_api_key"})
			return
		}
		c.Next()
	}
}
