package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumenstore.com/app/internal/http/flash"
	"lumenstore.com/app/internal/http/middleware"
	"lumenstore.com/app/internal/http/render"
	"lumenstore.com/app/internal/modules/reviews"
	"lumenstore.com/app/pkg/view"
)

type ReviewsHandler struct {
	reviews *reviews.Service
	flash   *flash.Codec
}

func NewReviewsHandler(svc *reviews.Service, flashCodec *flash.Codec) *ReviewsHandler {
	return &ReviewsHandler{reviews: svc, flash: flashCodec}
}

// Pending: GET /admin/reviews
func (h *ReviewsHandler) Pending(c *gin.Context) {
	items, err := h.reviews.Pending(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"reviews": items})
		return
	}
	render.HTML(c, http.StatusOK, "admin_reviews", "Moderation", view.AdminReviewsPage{Reviews: items})
}

// Publish: POST /admin/reviews/:id/publish
func (h *ReviewsHandler) Publish(c *gin.Context) {
	if err := h.reviews.Publish(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, err)
		return
	}
	if middleware.WantsJSON(c) {
		c.Status(http.StatusNoContent)
		return
	}
	render.RedirectWithFlash(c, h.flash, "/admin/reviews", view.FlashSuccess, "Review published.")
}
