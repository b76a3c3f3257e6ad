package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"lumenstore.com/app/internal/modules/accounts"
	"lumenstore.com/app/pkg/view"
)

const ctxKeyUser = "user"

// SessionResolver maps a session cookie token to its user.
type SessionResolver interface {
	SessionUser(ctx context.Context, token string) (accounts.User, bool, error)
}

type SessionCfg struct {
	Accounts   SessionResolver
	CookieName string
	Secure     bool
	TTL        time.Duration
}

// ContextUser is the signed-in user as seen by handlers.
type ContextUser struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Role      string
}

func (u ContextUser) IsAdmin() bool { return u.Role == accounts.RoleAdmin }

func (u ContextUser) View() *view.UserView {
	return &view.UserView{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName, IsAdmin: u.IsAdmin()}
}

// SessionMiddleware resolves the session cookie. A stale cookie is cleared;
// a lookup failure is logged and the request continues signed out.
func SessionMiddleware(cfg SessionCfg, l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}
		u, ok, err := cfg.Accounts.SessionUser(c.Request.Context(), token)
		switch {
		case err != nil:
			Log(c, l).LogAttrs(c.Request.Context(), slog.LevelError, "session_lookup_failed", slog.Any("err", err))
		case !ok:
			ClearSessionCookie(c, cfg)
		default:
			c.Set(ctxKeyUser, ContextUser{
				ID:        u.ID,
				Email:     u.Email,
				FirstName: u.FirstName,
				LastName:  u.LastName,
				Role:      u.Role,
			})
		}
		c.Next()
	}
}

func SessionToken(c *gin.Context, cfg SessionCfg) string {
	v, _ := c.Cookie(cfg.CookieName)
	return v
}

func SetSessionCookie(c *gin.Context, cfg SessionCfg, token string, expires time.Time) {
	setCookie(c, cfg.CookieName, token, int(time.Until(expires).Seconds()), cfg.Secure)
}

func ClearSessionCookie(c *gin.Context, cfg SessionCfg) {
	setCookie(c, cfg.CookieName, "", -1, cfg.Secure)
}

func CurrentUser(c *gin.Context) (ContextUser, bool) {
	v, ok := c.Get(ctxKeyUser)
	if !ok {
		return ContextUser{}, false
	}
	u, ok := v.(ContextUser)
	return u, ok && u.ID != ""
}

// CurrentUserID is nil for anonymous requests.
func CurrentUserID(c *gin.Context) *string {
	if u, ok := CurrentUser(c); ok {
		return &u.ID
	}
	return nil
}
