package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumenstore.com/app/internal/http/middleware"
	"lumenstore.com/app/pkg/view"
)

// ErrorPage satisfies middleware.ErrorPageFunc.
func ErrorPage(c *gin.Context, status int, msg string) {
	HTML(c, status, "error", http.StatusText(status), view.ErrorPage{
		Status:    status,
		Message:   msg,
		RequestID: middleware.GetRequestID(c),
	})
}
