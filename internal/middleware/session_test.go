package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporting-srv/config"
	"reporting-srv/pkg/log"
)

func newSessionRouter(t *testing.T) (*gin.Engine, *string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seen string
	mw := New(log.NewNop(), config.CookieConfig{Name: "report_session", MaxAge: 60, SameSite: "Lax"})
	r := gin.New()
	r.Use(mw.Session())
	r.GET("/", func(c *gin.Context) {
		seen = GetSessionID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return r, &seen
}

func TestSession_MintsCookieWhenMissing(t *testing.T) {
	r, seen := newSessionRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, *seen)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "report_session", cookies[0].Name)
	assert.Equal(t, *seen, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSession_ReusesExistingCookie(t *testing.T) {
	r, seen := newSessionRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "report_session", Value: "abc"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc", *seen)
	assert.Empty(t, w.Result().Cookies())
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(log.NewNop()))
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
