package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"lumenstore.com/app/internal/http/flash"
	"lumenstore.com/app/internal/shared/apperr"
	"lumenstore.com/app/pkg/view"
)

const LoginPath = "/account/login"

// RequireAuth admits any signed-in user. Browsers are sent to the login page
// and come back afterwards.
func RequireAuth(flashCodec *flash.Codec) gin.HandlerFunc {
	return requireUser(flashCodec, "Please sign in to continue.", nil)
}

// RequireAdmin admits users with the admin role.
func RequireAdmin(flashCodec *flash.Codec) gin.HandlerFunc {
	return requireUser(flashCodec, "Please sign in as an administrator.", ContextUser.IsAdmin)
}

func requireUser(codec *flash.Codec, signInMsg string, allow func(ContextUser) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		switch {
		case !ok:
			back := LoginPath + "?return_to=" + url.QueryEscape(c.Request.URL.RequestURI())
			deny(c, codec, apperr.UnauthorizedErr(signInMsg), view.FlashWarning, back)
		case allow != nil && !allow(u):
			deny(c, codec, apperr.ForbiddenErr("You do not have access to that page."), view.FlashError, "/")
		default:
			c.Next()
		}
	}
}

// deny leaves JSON clients to ErrorHandler and redirects browsers with the
// error as a flash.
func deny(c *gin.Context, codec *flash.Codec, err *apperr.AppError, kind view.FlashKind, location string) {
	if WantsJSON(c) {
		Fail(c, err)
		return
	}
	SetFlashCookie(c, codec, view.Flash{Kind: kind, Message: err.PublicMsg})
	c.Redirect(http.StatusFound, location)
	c.Abort()
}
