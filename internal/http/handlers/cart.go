package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lumenstore.com/app/internal/http/cartcookie"
	"lumenstore.com/app/internal/http/flash"
	"lumenstore.com/app/internal/http/middleware"
	"lumenstore.com/app/internal/http/render"
	"lumenstore.com/app/internal/modules/cart"
	"lumenstore.com/app/internal/shared/apperr"
	"lumenstore.com/app/pkg/view"
)

const maxCartBody = 64 << 10

type CartHandler struct {
	svc   *cart.Service
	ck    *cartcookie.Codec
	flash *flash.Codec
}

func NewCartHandler(svc *cart.Service, ck *cartcookie.Codec, flashCodec *flash.Codec) *CartHandler {
	return &CartHandler{svc: svc, ck: ck, flash: flashCodec}
}

// Show: GET /cart
func (h *CartHandler) Show(c *gin.Context) {
	page, err := h.page(c)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.HTML(c, http.StatusOK, "cart", "Cart", page)
}

// API: GET /api/cart
func (h *CartHandler) API(c *gin.Context) {
	page, err := h.page(c)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *CartHandler) page(c *gin.Context) (view.CartPage, error) {
	id, _ := h.ck.CartID(c)
	page, err := h.svc.Page(c.Request.Context(), id)
	if err != nil {
		return view.CartPage{}, err
	}
	page.CSRFToken = middleware.GetCSRFToken(c)
	return page, nil
}

// Post: POST /cart. The action arrives either as a JSON body or in the
// cartFormInput form field; plain forms may send action=NoteUpdate with a
// note field instead.
func (h *CartHandler) Post(c *gin.Context) {
	ctx := c.Request.Context()
	jsonReq := middleware.WantsJSON(c)

	in, redirectTo, err := readCartInput(c)
	if err != nil {
		h.fail(c, jsonReq, redirectTo, err)
		return
	}

	current, _ := h.ck.CartID(c)
	cartID, changed, err := h.svc.Ensure(ctx, current, middleware.CurrentUserID(c))
	if err != nil {
		h.fail(c, jsonReq, redirectTo, err)
		return
	}
	if changed {
		h.ck.Set(c, cartID)
	}

	res, err := h.svc.Apply(ctx, cartID, in)
	if err != nil {
		h.fail(c, jsonReq, redirectTo, err)
		return
	}

	if jsonReq {
		page, err := h.svc.Page(ctx, cartID)
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		page.Errors = res.Errors
		c.JSON(http.StatusOK, page)
		return
	}

	switch {
	case len(res.Errors) > 0:
		render.RedirectWithFlash(c, h.flash, redirectTo, view.FlashWarning, strings.Join(res.Errors, " "))
	case in.Action == cart.ActionLinesAdd:
		render.RedirectWithFlash(c, h.flash, redirectTo, view.FlashSuccess, "Added to cart.")
	default:
		c.Redirect(http.StatusSeeOther, redirectTo)
	}
}

func (h *CartHandler) fail(c *gin.Context, jsonReq bool, redirectTo string, err error) {
	if jsonReq || apperr.HTTPStatus(err) >= http.StatusInternalServerError {
		middleware.Fail(c, err)
		return
	}
	render.RedirectWithFlash(c, h.flash, redirectTo, view.FlashError, apperr.PublicMessage(err))
}

func isJSONBody(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "application/json")
}

// readCartInput returns the action plus where an HTML client should land
// afterwards.
func readCartInput(c *gin.Context) (cart.FormInput, string, error) {
	if isJSONBody(c) {
		raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxCartBody))
		if err != nil {
			return cart.FormInput{}, "/cart", apperr.InvalidErr("Malformed cart action.", nil)
		}
		// accept both {"cartFormInput": "..."} and the bare action object
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapped); err == nil {
			if inner, ok := wrapped[cart.FormInputField]; ok {
				var s string
				if json.Unmarshal(inner, &s) == nil {
					raw = []byte(s)
				} else {
					raw = inner
				}
			}
		}
		in, err := cart.ParseFormInput(string(raw))
		return in, "/cart", err
	}

	redirectTo := orDefault(normalizeReturnTo(c.PostForm("redirectTo")), "/cart")
	if raw := c.PostForm(cart.FormInputField); raw != "" {
		in, err := cart.ParseFormInput(raw)
		return in, redirectTo, err
	}

	in := cart.FormInput{Action: cart.Action(c.PostForm("action"))}
	switch in.Action {
	case cart.ActionNoteUpdate:
		note := c.PostForm("note")
		in.Inputs.Note = &note
	case cart.ActionDiscountCodesUpdate:
		in.Inputs.DiscountCodes = strings.Split(c.PostForm("discount_codes"), ",")
	}
	// Apply validates
	return in, redirectTo, nil
}
