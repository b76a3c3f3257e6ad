package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumenstore.com/app/internal/http/flash"
	"lumenstore.com/app/pkg/view"
)

// setCookie writes a site-wide HttpOnly Lax cookie. maxAge < 0 deletes it.
func setCookie(c *gin.Context, name, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", secure, true)
}

const ctxKeyFlash = "flash"

// FlashMiddleware consumes the flash cookie. It is deleted on the first read
// even when the signature does not verify.
func FlashMiddleware(codec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(codec.CookieName)
		if err == nil && raw != "" {
			setCookie(c, codec.CookieName, "", -1, codec.Secure)
			if f, err := codec.Decode(raw); err == nil {
				c.Set(ctxKeyFlash, f)
			}
		}
		c.Next()
	}
}

func GetFlash(c *gin.Context) *view.Flash {
	v, _ := c.Get(ctxKeyFlash)
	f, _ := v.(*view.Flash)
	return f
}

// SetFlashCookie queues f for the next page load. An unencodable flash is
// dropped.
func SetFlashCookie(c *gin.Context, codec *flash.Codec, f view.Flash) {
	if val, err := codec.Encode(f); err == nil {
		setCookie(c, codec.CookieName, val, codec.CookieMaxAge(), codec.Secure)
	}
}
