package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// SessionRateLimit limits requests per session and route. It must run after
// SessionMiddleware. The limiter is kept on the session, so it goes away when
// the session is swept.
func SessionRateLimit(limit rate.Limit, burst int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := GetSessionFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no session"})
			return
		}

		if !sess.Limiter(c.FullPath(), limit, burst).Allow() {
			logger.Warn("Rate limit exceeded",
				zap.String("session_id", sess.ID),
				zap.String("path", c.FullPath()),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
