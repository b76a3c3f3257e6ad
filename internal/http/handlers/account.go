package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"lumenstore.com/app/internal/http/cartcookie"
	"lumenstore.com/app/internal/http/flash"
	"lumenstore.com/app/internal/http/middleware"
	"lumenstore.com/app/internal/http/render"
	"lumenstore.com/app/internal/http/validation"
	"lumenstore.com/app/internal/modules/accounts"
	"lumenstore.com/app/internal/modules/cart"
	"lumenstore.com/app/internal/shared/apperr"
	"lumenstore.com/app/pkg/view"
)

type AccountHandler struct {
	accounts *accounts.Service
	carts    *cart.Service
	ck       *cartcookie.Codec
	flash    *flash.Codec
	sessCfg  middleware.SessionCfg
	log      *slog.Logger
}

func NewAccountHandler(acc *accounts.Service, carts *cart.Service, ck *cartcookie.Codec, flashCodec *flash.Codec, sessCfg middleware.SessionCfg, l *slog.Logger) *AccountHandler {
	return &AccountHandler{accounts: acc, carts: carts, ck: ck, flash: flashCodec, sessCfg: sessCfg, log: l}
}

func (h *AccountHandler) LoginGet(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/account")
		return
	}
	render.HTML(c, http.StatusOK, "login", "Sign in", view.LoginForm{
		ReturnTo: normalizeReturnTo(c.Query("return_to")),
	})
}

// loginInput has no binding rules: an incomplete form gets the service's
// message, not per-field errors.
type loginInput struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	ReturnTo string `form:"return_to"`
}

func (h *AccountHandler) LoginPost(c *gin.Context) {
	var in loginInput
	_ = c.ShouldBind(&in)
	form := view.LoginForm{Email: in.Email, ReturnTo: normalizeReturnTo(in.ReturnTo)}

	u, err := h.accounts.Authenticate(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		status := apperr.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			middleware.Fail(c, err)
			return
		}
		form.Error = apperr.PublicMessage(err)
		render.HTML(c, status, "login", "Sign in", form)
		return
	}
	if !h.signIn(c, u) {
		return
	}
	render.RedirectWithFlash(c, h.flash, orDefault(form.ReturnTo, "/account"), view.FlashSuccess, "Welcome back.")
}

func (h *AccountHandler) RegisterGet(c *gin.Context) {
	render.HTML(c, http.StatusOK, "register", "Create account", view.RegisterForm{
		ReturnTo: normalizeReturnTo(c.Query("return_to")),
	})
}

type registerInput struct {
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required,min=8"`
	PasswordConfirm string `form:"password_confirm" binding:"required,eqfield=Password"`
	FirstName       string `form:"first_name" binding:"max=80"`
	LastName        string `form:"last_name" binding:"max=80"`
	ReturnTo        string `form:"return_to"`
}

func (h *AccountHandler) RegisterPost(c *gin.Context) {
	var in registerInput
	bindErr := c.ShouldBind(&in)
	form := view.RegisterForm{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		ReturnTo:  normalizeReturnTo(in.ReturnTo),
	}
	if bindErr != nil {
		form.Fields = validation.FromBindError(bindErr, &in)
		form.Error = "Please check the highlighted fields."
		render.HTML(c, http.StatusBadRequest, "register", "Create account", form)
		return
	}

	u, err := h.accounts.Register(c.Request.Context(), accounts.RegisterInput{
		Email:     in.Email,
		Password:  in.Password,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
	if err != nil {
		ae, ok := apperr.As(err)
		if !ok || ae.Kind.Status() >= http.StatusInternalServerError {
			middleware.Fail(c, err)
			return
		}
		form.Error = ae.PublicMsg
		form.Fields = ae.Fields
		render.HTML(c, ae.Kind.Status(), "register", "Create account", form)
		return
	}
	if !h.signIn(c, u) {
		return
	}
	render.RedirectWithFlash(c, h.flash, orDefault(form.ReturnTo, "/account"), view.FlashSuccess, "Your account is ready.")
}

// signIn starts a session and hands the anonymous cart over to the user.
// It reports false after writing an error response.
func (h *AccountHandler) signIn(c *gin.Context, u accounts.User) bool {
	ctx := c.Request.Context()
	token, expires, err := h.accounts.StartSession(ctx, u.ID)
	if err != nil {
		middleware.Fail(c, err)
		return false
	}
	middleware.SetSessionCookie(c, h.sessCfg, token, expires)

	anon, _ := h.ck.CartID(c)
	kept, err := h.carts.Claim(ctx, anon, u.ID)
	if err != nil {
		// the user is signed in either way; the cart can be re-claimed later
		middleware.Log(c, h.log).LogAttrs(ctx, slog.LevelWarn, "cart_claim_failed",
			slog.String("user_id", u.ID),
			slog.Any("err", err),
		)
		return true
	}
	if kept != "" && kept != anon {
		h.ck.Set(c, kept)
	}
	return true
}

// Logout: POST /account/logout
func (h *AccountHandler) Logout(c *gin.Context) {
	if err := h.accounts.EndSession(c.Request.Context(), middleware.SessionToken(c, h.sessCfg)); err != nil {
		middleware.Log(c, h.log).LogAttrs(c.Request.Context(), slog.LevelWarn, "session_end_failed", slog.Any("err", err))
	}
	middleware.ClearSessionCookie(c, h.sessCfg)
	// the cart belongs to the account now
	h.ck.Clear(c)
	render.RedirectWithFlash(c, h.flash, "/", view.FlashInfo, "You have been signed out.")
}

// Show: GET /account
func (h *AccountHandler) Show(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	render.HTML(c, http.StatusOK, "account", "Your account", view.AccountPage{User: *u.View()})
}

type passwordInput struct {
	Current         string `form:"current_password" binding:"required"`
	Password        string `form:"password" binding:"required,min=8"`
	PasswordConfirm string `form:"password_confirm" binding:"required,eqfield=Password"`
}

// ChangePassword: POST /account/password
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	var in passwordInput
	if err := c.ShouldBind(&in); err != nil {
		render.RedirectWithFlash(c, h.flash, "/account", view.FlashError, validation.FromBindError(err, &in).First())
		return
	}
	err := h.accounts.ChangePassword(c.Request.Context(), u.ID, in.Current, in.Password, middleware.SessionToken(c, h.sessCfg))
	if err != nil {
		if apperr.Is(err, apperr.Invalid) {
			render.RedirectWithFlash(c, h.flash, "/account", view.FlashError, apperr.PublicMessage(err))
			return
		}
		middleware.Fail(c, err)
		return
	}
	render.RedirectWithFlash(c, h.flash, "/account", view.FlashSuccess, "Password updated. Other devices have been signed out.")
}
