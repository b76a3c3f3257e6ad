package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"lumenstore.com/app/internal/shared/apperr"
)

const (
	CSRFField  = "csrf_token"
	CSRFHeader = "X-CSRF-Token"
	ctxKeyCSRF = "csrf_token"
)

type CSRFCfg struct {
	CookieName string
	Secure     bool
}

// CSRF is a double-submit check: unsafe requests must echo the token from the
// cookie in a form field or header.
func CSRF(cfg CSRFCfg) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.CookieName)
		if err != nil || len(token) < 32 {
			token = newCSRFToken()
			setCookie(c, cfg.CookieName, token, 0, cfg.Secure)
		}
		c.Set(ctxKeyCSRF, token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		sent := c.GetHeader(CSRFHeader)
		if sent == "" {
			sent = c.PostForm(CSRFField)
		}
		if subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
			Fail(c, apperr.ForbiddenErr("Your session expired. Please reload the page and try again."))
			return
		}
		c.Next()
	}
}

func GetCSRFToken(c *gin.Context) string { return c.GetString(ctxKeyCSRF) }

func newCSRFToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
