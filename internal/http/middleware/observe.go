package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	"lumenstore.com/app/internal/shared/apperr"
)

const (
	HeaderRequestID = "X-Request-ID"

	ctxKeyRequestID = "request_id"
	ctxKeyLogger    = "logger"
)

// RequestID keeps an incoming X-Request-ID only when it is short and made of
// [A-Za-z0-9_-].
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if !validRequestID(rid) {
			var b [16]byte
			if _, err := rand.Read(b[:]); err != nil {
				rid = "rid_fallback"
			} else {
				rid = hex.EncodeToString(b[:])
			}
		}
		c.Set(ctxKeyRequestID, rid)
		c.Header(HeaderRequestID, rid)
		c.Next()
	}
}

func GetRequestID(c *gin.Context) string { return c.GetString(ctxKeyRequestID) }

func validRequestID(s string) bool {
	if s == "" || len(s) > 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		ok := b == '-' || b == '_' ||
			('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
		if !ok {
			return false
		}
	}
	return true
}

// Logger attaches a request-scoped logger (see Log) and writes one
// http_request line when the handler chain returns.
func Logger(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rl := l.With(slog.String("request_id", GetRequestID(c)))
		c.Set(ctxKeyLogger, rl)

		c.Next()

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("uri", c.Request.URL.RequestURI()),
			slog.String("route", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.Int("bytes", c.Writer.Size()),
			slog.String("client_ip", c.ClientIP()),
		}
		if u, ok := CurrentUser(c); ok {
			attrs = append(attrs, slog.String("user_id", u.ID))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}
		rl.LogAttrs(c.Request.Context(), statusLevel(status), "http_request", attrs...)
	}
}

func statusLevel(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Log returns the request-scoped logger, or fallback outside Logger.
func Log(c *gin.Context, fallback *slog.Logger) *slog.Logger {
	if l, ok := c.Value(ctxKeyLogger).(*slog.Logger); ok {
		return l
	}
	return fallback
}

// Recovery logs the panic with its stack and hands a generic internal error
// to ErrorHandler.
func Recovery(l *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		Log(c, l).LogAttrs(c.Request.Context(), slog.LevelError, "panic_recovered",
			slog.Any("panic", recovered),
			slog.String("stack", string(debug.Stack())),
		)
		Fail(c, apperr.Wrap(fmt.Errorf("panic: %v", recovered)))
	})
}
