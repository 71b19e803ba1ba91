// internal/middleware/middleware_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/phonemarket/backend/internal/config"
	"github.com/phonemarket/backend/internal/i18n"
)

func newEngine(t *testing.T, handlers ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, i18n.Initialize())

	cfg := &config.Config{Admin: config.AdminConfig{IDs: []int64{9}}}
	r := gin.New()
	r.Use(UserIdentity(cfg))
	r.GET("/", append(handlers, func(c *gin.Context) { c.Status(http.StatusNoContent) })...)
	return r
}

func get(r *gin.Engine, userID string) int {
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	if userID != "" {
		req.Header.Set(UserIDHeader, userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestAdminRequired(t *testing.T) {
	r := newEngine(t, AdminRequired())

	assert.Equal(t, http.StatusUnauthorized, get(r, ""))
	assert.Equal(t, http.StatusUnauthorized, get(r, "-4"))
	assert.Equal(t, http.StatusForbidden, get(r, "4"))
	assert.Equal(t, http.StatusNoContent, get(r, "9"))
}

func TestUserRequired(t *testing.T) {
	r := newEngine(t, UserRequired())

	assert.Equal(t, http.StatusUnauthorized, get(r, ""))
	assert.Equal(t, http.StatusNoContent, get(r, "4"))
}

func TestRateLimiterKeysByUser(t *testing.T) {
	limiter := NewRateLimiter(rate.Every(time.Hour), 2)
	r := newEngine(t, limiter.Middleware())

	assert.Equal(t, http.StatusNoContent, get(r, "1"))
	assert.Equal(t, http.StatusNoContent, get(r, "1"))
	assert.Equal(t, http.StatusTooManyRequests, get(r, "1"))

	assert.Equal(t, http.StatusNoContent, get(r, "2"))
}

func TestExtractResourceType(t *testing.T) {
	assert.Equal(t, "markup", extractResourceType("/v1/admin/markup/users/5"))
	assert.Equal(t, "pricelists", extractResourceType("/v1/admin/pricelists"))
	assert.Equal(t, "cart", extractResourceType("/v1/cart/items"))
	assert.Equal(t, "unknown", extractResourceType("/"))
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"https://shop.example"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://shop.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "https://shop.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNegotiateLanguage(t *testing.T) {
	assert.Equal(t, "en", negotiateLanguage(""))
	assert.Equal(t, "ru", negotiateLanguage("ru-RU,ru;q=0.9,en;q=0.8"))
	assert.Equal(t, "ru", negotiateLanguage("kk"))
	assert.Equal(t, "en", negotiateLanguage("en-GB,en;q=0.9"))
	assert.Equal(t, "en", negotiateLanguage("de-DE"))
	assert.Equal(t, "en", negotiateLanguage(";;;"))
}
