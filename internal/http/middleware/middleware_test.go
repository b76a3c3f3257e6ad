package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumenstore.com/app/internal/http/flash"
	"lumenstore.com/app/internal/shared/apperr"
	"lumenstore.com/app/pkg/view"
)

func init() { gin.SetMode(gin.TestMode) }

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(discard), ErrorHandler(discard, nil), Recovery(discard))
	r.Use(mw...)
	return r
}

func TestRequestID(t *testing.T) {
	r := newEngine()
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123_X")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123_X", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Len(t, w.Body.String(), 32)
	assert.Equal(t, w.Body.String(), w.Header().Get(HeaderRequestID))
}

func TestErrorHandler_JSON(t *testing.T) {
	r := newEngine()
	r.GET("/api/x", func(c *gin.Context) {
		Fail(c, apperr.InvalidErr("Bad input.", map[string]string{"email": "Required."}))
	})
	r.GET("/api/boom", func(c *gin.Context) { Fail(c, errors.New("db down")) })
	r.GET("/api/panic", func(c *gin.Context) { panic("oops") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/x", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"Required."`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireAuth(t *testing.T) {
	codec := flash.NewCodec([]byte("0123456789abcdef0123456789abcdef"), "lumen_flash", false)
	r := newEngine()
	r.GET("/account", RequireAuth(codec), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/admin", func(c *gin.Context) {
		c.Set(ctxKeyUser, ContextUser{ID: "u1", Role: "customer"})
	}, RequireAdmin(codec), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/account?tab=1", nil))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/account/login?return_to=%2Faccount%3Ftab%3D1", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	req.Header.Set("Accept", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Accept", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestFlashIsReadOnce(t *testing.T) {
	codec := flash.NewCodec([]byte("0123456789abcdef0123456789abcdef"), "lumen_flash", false)
	r := newEngine(FlashMiddleware(codec))
	r.GET("/read", func(c *gin.Context) {
		if f := GetFlash(c); f != nil {
			c.String(http.StatusOK, f.Message)
			return
		}
		c.String(http.StatusOK, "none")
	})

	val, err := codec.Encode(view.Flash{Kind: view.FlashSuccess, Message: "Saved."})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/read", nil)
	req.AddCookie(&http.Cookie{Name: "lumen_flash", Value: val})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "Saved.", w.Body.String())
	require.Len(t, w.Result().Cookies(), 1)
	assert.Equal(t, -1, w.Result().Cookies()[0].MaxAge)

	req = httptest.NewRequest(http.MethodGet, "/read", nil)
	req.AddCookie(&http.Cookie{Name: "lumen_flash", Value: val + "x"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "none", w.Body.String())
}
