package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumenstore.com/app/internal/http/flash"
	"lumenstore.com/app/internal/http/middleware"
	"lumenstore.com/app/pkg/view"
)

// RedirectWithFlash uses 303 so a POST is never replayed.
func RedirectWithFlash(c *gin.Context, codec *flash.Codec, location string, kind view.FlashKind, msg string) {
	middleware.SetFlashCookie(c, codec, view.Flash{Kind: kind, Message: msg})
	c.Redirect(http.StatusSeeOther, location)
}
