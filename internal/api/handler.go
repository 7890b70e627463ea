// Package api exposes the studio over a JSON REST API. Responses are plain
// view models; rendering is left to the client.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/content-studio-agent/internal/studio"
)

type Handler struct {
	studio *studio.Studio
	logger *zap.Logger
	now    func() time.Time
}

func NewHandler(s *studio.Studio, log *zap.Logger) *Handler {
	return &Handler{
		studio: s,
		logger: log.Named("API"),
		now:    time.Now,
	}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api")
	{
		api.GET("/me", h.getMe)
		api.GET("/dashboard", h.getDashboard)

		api.GET("/products", h.listProducts)
		api.POST("/products", h.createProduct)
		api.PUT("/products/:id", h.updateProduct)
		api.DELETE("/products/:id", h.deleteProduct)

		api.POST("/generate", h.generate)

		api.GET("/posts", h.listPosts)
		api.POST("/posts", h.savePost)
		api.DELETE("/posts/:id", h.deletePost)
		api.POST("/posts/:id/publish", h.publishPost)

		api.GET("/schedule", h.listScheduled)
		api.POST("/schedule", h.schedulePost)
		api.DELETE("/schedule/:id", h.deleteScheduled)
		api.GET("/calendar", h.getCalendar)

		api.GET("/rules", h.listRules)
		api.POST("/rules", h.createRule)
		api.POST("/rules/:id/toggle", h.toggleRule)
		api.POST("/rules/:id/test", h.testRule)
		api.POST("/rules/:id/evaluate", h.evaluateRule)
		api.DELETE("/rules/:id", h.deleteRule)

		api.GET("/connections", h.listConnections)
		api.POST("/connections/:id/connect", h.connect)
		api.POST("/connections/:id/disconnect", h.disconnect)
	}
}

func (h *Handler) getMe(c *gin.Context) {
	c.JSON(http.StatusOK, h.studio.User())
}

func (h *Handler) getDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.studio.Dashboard(h.now()))
}

// bind decodes the JSON body into dst and answers 400 on failure.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}
