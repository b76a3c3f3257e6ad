package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumenstore.com/app/internal/http/flash"
	"lumenstore.com/app/internal/http/middleware"
	"lumenstore.com/app/internal/http/render"
	"lumenstore.com/app/internal/http/validation"
	"lumenstore.com/app/internal/modules/catalog"
	"lumenstore.com/app/internal/modules/reviews"
	"lumenstore.com/app/internal/shared/apperr"
	"lumenstore.com/app/pkg/view"
)

type ProductsHandler struct {
	catalog *catalog.Service
	reviews *reviews.Service
	flash   *flash.Codec
}

func NewProductsHandler(cat *catalog.Service, rev *reviews.Service, flashCodec *flash.Codec) *ProductsHandler {
	return &ProductsHandler{catalog: cat, reviews: rev, flash: flashCodec}
}

// List: GET /products?page=N
func (h *ProductsHandler) List(c *gin.Context) {
	page, err := h.catalog.List(c.Request.Context(), parsePage(c.Query("page")))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.HTML(c, http.StatusOK, "products", page.Title, page)
}

// Show: GET /products/:handle. Option values and review paging both travel in
// the query string.
func (h *ProductsHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	q := c.Request.URL.Query()

	page, err := h.catalog.Detail(ctx, c.Param("handle"), q)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	block, err := h.reviews.Block(ctx, page.ID, h.reviews.ParseQuery(q))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	page.Reviews = &block
	page.CSRFToken = middleware.GetCSRFToken(c)

	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, page)
		return
	}
	render.HTML(c, http.StatusOK, "product", page.Title, page)
}

// Variant: GET /api/products/:handle/variant?Size=M&Color=Red
func (h *ProductsHandler) Variant(c *gin.Context) {
	v, opts, err := h.catalog.ResolveSelection(c.Request.Context(), c.Param("handle"), c.Request.URL.Query())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"variant": v, "options": opts})
}

// Reviews: GET /api/products/:handle/reviews?page=2&sort=highest
func (h *ProductsHandler) Reviews(c *gin.Context) {
	block, err := h.reviews.BlockForHandle(c.Request.Context(), c.Param("handle"), c.Request.URL.Query())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

type reviewInput struct {
	Rating      int    `form:"rating" json:"rating" binding:"required,min=1,max=5"`
	Title       string `form:"title" json:"title" binding:"max=255"`
	Body        string `form:"body" json:"body" binding:"required,max=5000"`
	AuthorName  string `form:"author_name" json:"author_name" binding:"required,max=120"`
	AuthorEmail string `form:"author_email" json:"author_email" binding:"required,email"`
}

// SubmitReview: POST /products/:handle/reviews
func (h *ProductsHandler) SubmitReview(c *gin.Context) {
	productHandle := c.Param("handle")
	back := "/products/" + productHandle + "#reviews"

	var in reviewInput
	if err := c.ShouldBind(&in); err != nil {
		fields := validation.FromBindError(err, &in)
		if middleware.WantsJSON(c) {
			middleware.Fail(c, apperr.InvalidErr("Please check the highlighted fields.", fields))
			return
		}
		render.RedirectWithFlash(c, h.flash, back, view.FlashError, fields.First())
		return
	}

	rv, err := h.reviews.Submit(c.Request.Context(), productHandle, reviews.SubmitInput{
		Rating:      in.Rating,
		Title:       in.Title,
		Body:        in.Body,
		AuthorName:  in.AuthorName,
		AuthorEmail: in.AuthorEmail,
		UserID:      middleware.CurrentUserID(c),
	})
	if err != nil {
		if middleware.WantsJSON(c) || !apperr.Is(err, apperr.Invalid) {
			middleware.Fail(c, err)
			return
		}
		render.RedirectWithFlash(c, h.flash, back, view.FlashError, apperr.PublicMessage(err))
		return
	}

	msg := "Thanks! Your review will appear once it has been approved."
	if rv.Status == reviews.StatusPublished {
		msg = "Thanks for your review!"
	}
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusCreated, gin.H{"id": rv.ID, "status": rv.Status, "message": msg})
		return
	}
	render.RedirectWithFlash(c, h.flash, back, view.FlashSuccess, msg)
}
