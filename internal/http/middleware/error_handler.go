package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"lumenstore.com/app/internal/shared/apperr"
)

// WantsJSON is true for /api/ routes and for clients that send or ask for
// JSON.
func WantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return true
	}
	if strings.HasPrefix(c.ContentType(), "application/json") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

// Fail records err for ErrorHandler and stops the chain.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorPageFunc renders the HTML error page.
type ErrorPageFunc func(c *gin.Context, status int, publicMsg string)

// ErrorHandler turns the last recorded error into a response unless the
// handler already wrote one. Client errors log at warn, the rest at error.
func ErrorHandler(l *slog.Logger, page ErrorPageFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperr.HTTPStatus(err)
		publicMsg := apperr.PublicMessage(err)
		rid := GetRequestID(c)

		level := slog.LevelError
		if status < 500 {
			level = slog.LevelWarn
		}
		Log(c, l).LogAttrs(c.Request.Context(), level, "request_failed",
			slog.Int("status", status),
			slog.Any("err", err),
		)

		if WantsJSON(c) || page == nil {
			payload := gin.H{"error": publicMsg, "request_id": rid}
			if ae, ok := apperr.As(err); ok && len(ae.Fields) > 0 {
				payload["fields"] = ae.Fields
			}
			c.AbortWithStatusJSON(status, payload)
			return
		}
		c.Abort()
		page(c, status, publicMsg)
	}
}
