// Package render fills the shared page layout from the request context and
// writes HTML or redirect responses.
package render

import (
	"github.com/gin-gonic/gin"

	"lumenstore.com/app/internal/http/middleware"
	"lumenstore.com/app/pkg/view"
)

// Layout collects what the header needs: flash, cart badge, user and the
// CSRF token for inline forms.
func Layout(c *gin.Context, title string) view.Layout {
	l := view.Layout{
		Title:     title,
		Flash:     middleware.GetFlash(c),
		CartCount: middleware.GetCartCount(c),
		CSRFToken: middleware.GetCSRFToken(c),
		RequestID: middleware.GetRequestID(c),
	}
	if u, ok := middleware.CurrentUser(c); ok {
		l.User = u.View()
	}
	return l
}

// HTML renders the named template with the layout around data.
func HTML(c *gin.Context, status int, name, title string, data any) {
	c.HTML(status, name, view.Page{Layout: Layout(c, title), Data: data})
}
