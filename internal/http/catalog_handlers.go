package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tubeshelf/internal/catalog"
)

func (h *Handler) videoDetails(c *gin.Context) {
	if h.catalog == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "video catalog not configured"})
		return
	}

	id := c.Param("id")
	details, err := h.catalog.GetVideo(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrVideoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "video not found"})
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            id,
		"video_details": details,
	})
}

func (h *Handler) videoStats(c *gin.Context) {
	if h.catalog == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "video catalog not configured"})
		return
	}

	idsParam := strings.TrimSpace(c.Query("ids"))
	if idsParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no ids provided"})
		return
	}

	stats, err := h.catalog.GetStats(c.Request.Context(), strings.Split(idsParam, ","))
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
