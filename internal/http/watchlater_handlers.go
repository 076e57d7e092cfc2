package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tubeshelf/internal/domain"
	"tubeshelf/internal/repository"
	"tubeshelf/internal/service"
)

type addWatchLaterRequest struct {
	VideoID      string `json:"videoId" binding:"required"`
	Title        string `json:"title"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
}

func (h *Handler) listWatchLater(c *gin.Context) {
	user := sessionUser(c)

	entries, err := h.watchLater.List(c.Request.Context(), user.Username)
	if err != nil {
		h.internalError(c, err)
		return
	}

	resp := make([]WatchLaterResponse, len(entries))
	for i := range entries {
		resp[i] = watchLaterToResponse(&entries[i])
	}
	c.JSON(http.StatusOK, gin.H{"videos": resp})
}

func (h *Handler) addWatchLater(c *gin.Context) {
	var req addWatchLaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing required fields"})
		return
	}

	user := sessionUser(c)

	entry, err := h.watchLater.Add(c.Request.Context(), domain.WatchLaterEntry{
		Username:     user.Username,
		VideoID:      req.VideoID,
		Title:        req.Title,
		Thumbnail:    req.Thumbnail,
		ChannelTitle: req.ChannelTitle,
	})
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrAlreadyInWatchLater):
			c.JSON(http.StatusBadRequest, gin.H{"message": "video already in watch later"})
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Error()})
		default:
			h.internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "added to watch later",
		"video":   watchLaterToResponse(entry),
	})
}

func (h *Handler) markWatchLaterWatched(c *gin.Context) {
	entry, ok := h.ownedWatchLater(c)
	if !ok {
		return
	}

	updated, err := h.watchLater.MarkWatched(c.Request.Context(), entry.ID)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"video": watchLaterToResponse(updated)})
}

func (h *Handler) removeWatchLater(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid entry id"})
		return
	}

	user := sessionUser(c)
	entry, err := h.watchLater.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// removing an absent entry succeeds, matching delete semantics
			c.JSON(http.StatusOK, gin.H{"message": "video removed"})
			return
		}
		h.internalError(c, err)
		return
	}
	if entry.Username != user.Username {
		c.JSON(http.StatusNotFound, gin.H{"message": "entry not found"})
		return
	}

	if err := h.watchLater.Remove(c.Request.Context(), id); err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "video removed"})
}

func (h *Handler) ownedWatchLater(c *gin.Context) (*domain.WatchLaterEntry, bool) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid entry id"})
		return nil, false
	}

	entry, err := h.watchLater.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "entry not found"})
			return nil, false
		}
		h.internalError(c, err)
		return nil, false
	}

	user := sessionUser(c)
	if entry.Username != user.Username {
		c.JSON(http.StatusNotFound, gin.H{"message": "entry not found"})
		return nil, false
	}
	return entry, true
}
