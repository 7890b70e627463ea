package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/content-studio-agent/internal/studio"
)

func (h *Handler) listPosts(c *gin.Context) {
	c.JSON(http.StatusOK, h.studio.Posts())
}

func (h *Handler) savePost(c *gin.Context) {
	var in studio.PostInput
	if !bind(c, &in) {
		return
	}
	post, err := h.studio.SavePost(c.Request.Context(), in)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *Handler) deletePost(c *gin.Context) {
	if err := h.studio.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) publishPost(c *gin.Context) {
	post, err := h.studio.PublishPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) listScheduled(c *gin.Context) {
	if c.Query("upcoming") == "true" {
		limit, _ := strconv.Atoi(c.Query("limit"))
		c.JSON(http.StatusOK, h.studio.UpcomingPosts(h.now(), limit))
		return
	}
	c.JSON(http.StatusOK, h.studio.ScheduledPosts())
}

func (h *Handler) schedulePost(c *gin.Context) {
	var in studio.ScheduleInput
	if !bind(c, &in) {
		return
	}
	item, err := h.studio.SchedulePost(c.Request.Context(), in)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) deleteScheduled(c *gin.Context) {
	if err := h.studio.DeleteScheduled(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// getCalendar defaults to the current month. month may be outside 1-12
// and rolls over into the neighbouring year.
func (h *Handler) getCalendar(c *gin.Context) {
	now := h.now()
	year, month := now.Year(), int(now.Month())

	if v := c.Query("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "year must be a number"})
			return
		}
		year = n
	}
	if v := c.Query("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "month must be a number"})
			return
		}
		month = n
	}

	c.JSON(http.StatusOK, h.studio.Calendar(year, time.Month(month), now))
}
