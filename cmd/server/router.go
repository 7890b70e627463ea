package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/content-studio-agent/internal/a2a"
	"github.com/BerylCAtieno/content-studio-agent/internal/api"
	"github.com/BerylCAtieno/content-studio-agent/internal/metrics"
	"github.com/BerylCAtieno/content-studio-agent/internal/middleware"
	"github.com/BerylCAtieno/content-studio-agent/internal/studio"
)

func newRouter(mode string, s *studio.Studio, recorder *metrics.Recorder, log *zap.Logger) *gin.Engine {
	gin.SetMode(mode)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.ZapLogger(log.Named("HTTP")))

	healthHandler := func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)
	router.GET("/metrics", gin.WrapH(recorder.Handler()))

	a2aHandler := a2a.NewA2AHandler(s, log)
	router.GET("/.well-known/agent.json", a2aHandler.ServeAgentCard)
	router.POST("/a2a/content", middleware.BodyDump(log.Named("A2A")), a2aHandler.HandleContent)

	api.NewHandler(s, log).RegisterRoutes(router)

	return router
}
