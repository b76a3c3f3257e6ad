package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumenstore.com/app/internal/http/middleware"
	"lumenstore.com/app/internal/http/validation"
	"lumenstore.com/app/internal/modules/catalog"
	"lumenstore.com/app/internal/shared/apperr"
)

type StockHandler struct {
	catalog *catalog.Service
}

func NewStockHandler(cat *catalog.Service) *StockHandler {
	return &StockHandler{catalog: cat}
}

type stockInput struct {
	Quantity         *int  `json:"quantity" binding:"required"`
	AvailableForSale *bool `json:"availableForSale"`
}

// Update: PUT /admin/variants/:id/stock
func (h *StockHandler) Update(c *gin.Context) {
	var in stockInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fields := validation.FromBindError(err, &in)
		middleware.Fail(c, apperr.InvalidErr(fields.First(), fields))
		return
	}
	v, err := h.catalog.SetStock(c.Request.Context(), c.Param("id"), catalog.StockInput{
		Quantity:         *in.Quantity,
		AvailableForSale: in.AvailableForSale,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":                v.ID,
		"quantityAvailable": v.QuantityAvailable,
		"availableForSale":  v.AvailableForSale,
	})
}
