package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lumenstore.com/app/internal/http/middleware"
	"lumenstore.com/app/internal/modules/catalog"
	"lumenstore.com/app/internal/shared/apperr"
	"lumenstore.com/app/internal/storage"
	"lumenstore.com/app/pkg/view"
)

const maxImageBytes = 10 << 20

type ImagesHandler struct {
	catalog *catalog.Service
}

func NewImagesHandler(cat *catalog.Service) *ImagesHandler {
	return &ImagesHandler{catalog: cat}
}

// Upload: POST /admin/products/:id/images (multipart: image, alt)
func (h *ImagesHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Please choose an image.", map[string]string{"image": "This field is required."}))
		return
	}
	if fh.Size > maxImageBytes {
		middleware.Fail(c, apperr.InvalidErr("Images must be 10 MB or smaller.", map[string]string{"image": "File too large."}))
		return
	}
	f, err := fh.Open()
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	defer f.Close()

	im, err := h.catalog.AttachImage(c.Request.Context(), c.Param("id"), f, storage.PutInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	}, strings.TrimSpace(c.PostForm("alt")))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, view.ImageView{ID: im.ID, URL: im.URL, Alt: im.Alt})
}

// Delete: DELETE /admin/products/:id/images/:imageID
func (h *ImagesHandler) Delete(c *gin.Context) {
	if err := h.catalog.RemoveImage(c.Request.Context(), c.Param("id"), c.Param("imageID")); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
