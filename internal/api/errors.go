package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/content-studio-agent/internal/studio"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleServiceError(c *gin.Context, err error) {
	var status int

	switch {
	case errors.Is(err, studio.ErrProductNotFound),
		errors.Is(err, studio.ErrPostNotFound),
		errors.Is(err, studio.ErrScheduleNotFound),
		errors.Is(err, studio.ErrRuleNotFound),
		errors.Is(err, studio.ErrConnectionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, studio.ErrEmptyContent),
		errors.Is(err, studio.ErrInvalidPlatform),
		errors.Is(err, studio.ErrInvalidProduct),
		errors.Is(err, studio.ErrInvalidRule),
		errors.Is(err, studio.ErrInvalidDate),
		errors.Is(err, studio.ErrNoCondition):
		status = http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// The client is gone; the status only shows up in the access log.
		status = http.StatusRequestTimeout
	default:
		h.logger.Error("Unhandled internal error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal error occurred"})
		return
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error()})
}
