package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chihoangvnn/sss-sub001/internal/dto"
	"github.com/chihoangvnn/sss-sub001/internal/service"
)

// CatalogHandler serves the read-only product snapshot and barcode lookup.
type CatalogHandler struct{ svc service.CatalogService }

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// List returns the current catalog snapshot with normalized unit policies.
func (h *CatalogHandler) List(c *gin.Context) {
	products := h.svc.Snapshot()
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductToResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "total": len(out)})
}

// GetByBarcode resolves a decoded barcode to a product (exact SKU or item
// code). Used by the price-check flow; scanning into a tab goes through the
// tabs handler instead.
func (h *CatalogHandler) GetByBarcode(c *gin.Context) {
	p, err := h.svc.FindByBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductToResponse(p))
}
