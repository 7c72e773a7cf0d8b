package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type sessionKey struct{}

// Session makes sure every request carries a session id. The id is read from the
// session cookie, or minted and set on the response when missing.
func (m Middleware) Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(m.cookieConfig.Name)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetSameSite(parseSameSite(m.cookieConfig.SameSite))
			c.SetCookie(m.cookieConfig.Name, sid, m.cookieConfig.MaxAge, "/", m.cookieConfig.Domain, m.cookieConfig.Secure, true)
		}

		c.Request = c.Request.WithContext(SetSessionID(c.Request.Context(), sid))
		c.Next()
	}
}

// SetSessionID stores sid in ctx.
func SetSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sid)
}

// GetSessionID returns the session id set by Session, or "" outside a session.
func GetSessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionKey{}).(string)
	return sid
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	default:
		return http.SameSiteDefaultMode
	}
}
