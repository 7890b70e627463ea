package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/content-studio-agent/internal/models"
	"github.com/BerylCAtieno/content-studio-agent/internal/studio"
)

// productView flags products the catalog shows as running low.
type productView struct {
	models.Product
	LowStock bool `json:"low_stock"`
}

func newProductView(p models.Product) productView {
	return productView{Product: p, LowStock: p.LowStock()}
}

func (h *Handler) listProducts(c *gin.Context) {
	products := h.studio.Products()
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) createProduct(c *gin.Context) {
	var in studio.ProductInput
	if !bind(c, &in) {
		return
	}
	p, err := h.studio.AddProduct(c.Request.Context(), in)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newProductView(p))
}

func (h *Handler) updateProduct(c *gin.Context) {
	var in studio.ProductInput
	if !bind(c, &in) {
		return
	}
	p, err := h.studio.UpdateProduct(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProductView(p))
}

func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.studio.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) generate(c *gin.Context) {
	var in studio.GenerateInput
	if !bind(c, &in) {
		return
	}
	res, err := h.studio.Generate(c.Request.Context(), in)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
