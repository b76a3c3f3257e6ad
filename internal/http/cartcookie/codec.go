// Package cartcookie keeps the shopper's cart id in a signed cookie.
package cartcookie

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lumenstore.com/app/internal/http/signed"
)

const maxAge = 30 * 24 * time.Hour

type Codec struct {
	signer     signed.Signer
	CookieName string
	Secure     bool
}

func New(secret []byte, name string, secure bool) *Codec {
	return &Codec{signer: signed.New(secret), CookieName: name, Secure: secure}
}

func (c *Codec) Encode(cartID string) string { return c.signer.Sign(cartID) }

func (c *Codec) Decode(v string) (string, error) { return c.signer.Verify(v) }

// CartID reads the cart id. A tampered cookie is cleared.
func (c *Codec) CartID(ctx *gin.Context) (string, bool) {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return "", false
	}
	id, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return "", false
	}
	return id, true
}

func (c *Codec) Set(ctx *gin.Context, cartID string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, c.Encode(cartID), int(maxAge.Seconds()), "/", "", c.Secure, true)
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}
