package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lumenstore.com/app/internal/http/cartcookie"
)

const cartCountKey = "cart_count"

type CartCounter interface {
	Count(ctx context.Context, cartID string) (int, error)
}

// CartCount loads the header badge number for HTML page loads. API calls and
// form posts skip the query.
func CartCount(codec *cartcookie.Codec, counter CartCounter, l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Next()
			return
		}
		if id, ok := codec.CartID(c); ok {
			n, err := counter.Count(c.Request.Context(), id)
			if err != nil {
				Log(c, l).LogAttrs(c.Request.Context(), slog.LevelWarn, "cart_count_failed", slog.Any("err", err))
			}
			c.Set(cartCountKey, n)
		}
		c.Next()
	}
}

func GetCartCount(c *gin.Context) int {
	return c.GetInt(cartCountKey)
}
