package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jafarshop/fastpizza/internal/service"
)

const (
	SessionCookie = "fastpizza_session"
	SessionHeader = "X-Session-ID"

	sessionContextKey = "session"
)

// SessionMiddleware attaches the caller's session, minting a new id when the
// request carries none or an invalid one
func SessionMiddleware(sessions *service.SessionRegistry, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id, _ = c.Cookie(SessionCookie)
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		sess := sessions.GetOrCreate(id)

		c.SetCookie(SessionCookie, id, 0, "/", "", secureCookie, true)
		c.Header(SessionHeader, id)
		c.Set(sessionContextKey, sess)

		c.Next()
	}
}

// GetSessionFromContext returns the session attached by SessionMiddleware
func GetSessionFromContext(c *gin.Context) (*service.Session, bool) {
	val, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	sess, ok := val.(*service.Session)
	return sess, ok
}
