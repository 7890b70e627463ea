package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listConnections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"connections": h.studio.Connections(),
		"stats":       h.studio.ConnectionStats(),
	})
}

func (h *Handler) connect(c *gin.Context) {
	conn, err := h.studio.Connect(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conn)
}

func (h *Handler) disconnect(c *gin.Context) {
	conn, err := h.studio.Disconnect(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conn)
}
