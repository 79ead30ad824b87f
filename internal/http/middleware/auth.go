package middleware

import (
	"net/http"
	"strings"

	"shuttle/internal/domain"

	"github.com/gin-gonic/gin"
)

const sessionKey = "admin_session"

// Authenticator resolves a bearer token to a live admin session.
type Authenticator func(token string) (domain.Session, error)

// RequireAdmin rejects requests without a live admin session and stores the
// session on the context for handlers.
func RequireAdmin(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		sess, err := auth(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "unauthorized: sesi admin tidak aktif",
				"code":       "unauthorized",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// OptionalAdmin stores the admin session when the request carries a valid
// token and lets anonymous requests through.
func OptionalAdmin(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c.GetHeader("Authorization")); token != "" {
			if sess, err := auth(token); err == nil {
				c.Set(sessionKey, sess)
			}
		}
		c.Next()
	}
}

// GetSession returns the admin session set by RequireAdmin, or a zero
// (logged out) session.
func GetSession(c *gin.Context) domain.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(domain.Session); ok {
			return s
		}
	}
	return domain.Session{}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
