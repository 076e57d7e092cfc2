package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tubeshelf/internal/domain"
	"tubeshelf/internal/repository"
	"tubeshelf/internal/service"
)

const (
	actionRemoveVideo = "REMOVE_VIDEO"
	actionMarkWatched = "MARK_WATCHED"
)

type addToPlaylistRequest struct {
	ChannelTitle string `json:"channelTitle" binding:"required"`
	Video        struct {
		VideoID   string `json:"videoId" binding:"required"`
		Title     string `json:"title"`
		Thumbnail string `json:"thumbnail"`
	} `json:"video" binding:"required"`
}

type patchPlaylistRequest struct {
	Action string `json:"action" binding:"required"`
	// VideoID is the stable key; VideoTitle is accepted for older
	// clients and resolved to ids before mutating.
	VideoID    string `json:"videoId"`
	VideoTitle string `json:"videoTitle"`
}

func (h *Handler) addToPlaylist(c *gin.Context) {
	var req addToPlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing required fields"})
		return
	}

	// the session identity owns the write; a client-supplied username
	// in the body is ignored
	user := sessionUser(c)

	playlist, err := h.playlists.AddVideo(c.Request.Context(), user.Username, req.ChannelTitle, domain.Video{
		VideoID:   req.Video.VideoID,
		Title:     req.Video.Title,
		Thumbnail: req.Video.Thumbnail,
	})
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrVideoAlreadyInPlaylist):
			c.JSON(http.StatusBadRequest, gin.H{"message": "video already added to the playlist"})
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Error()})
		default:
			h.internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "added to playlist",
		"playlist": playlistToResponse(playlist),
	})
}

func (h *Handler) listPlaylists(c *gin.Context) {
	user := sessionUser(c)

	playlists, err := h.playlists.List(c.Request.Context(), user.Username)
	if err != nil {
		h.internalError(c, err)
		return
	}

	resp := make([]PlaylistResponse, len(playlists))
	for i := range playlists {
		resp[i] = playlistToResponse(&playlists[i])
	}
	c.JSON(http.StatusOK, gin.H{"playlists": resp})
}

func (h *Handler) getPlaylist(c *gin.Context) {
	playlist, ok := h.ownedPlaylist(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"playlist": playlistToResponse(playlist)})
}

func (h *Handler) deletePlaylist(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid playlist id"})
		return
	}

	user := sessionUser(c)
	playlist, err := h.playlists.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// deleting an absent playlist is a success, not an error
			c.JSON(http.StatusOK, gin.H{"message": "playlist deleted"})
			return
		}
		h.internalError(c, err)
		return
	}
	if playlist.Username != user.Username {
		c.JSON(http.StatusNotFound, gin.H{"message": "playlist not found"})
		return
	}

	if err := h.playlists.Delete(c.Request.Context(), id); err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "playlist deleted"})
}

func (h *Handler) patchPlaylist(c *gin.Context) {
	playlist, ok := h.ownedPlaylist(c)
	if !ok {
		return
	}

	var req patchPlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	videoIDs, err := h.resolveVideoIDs(c, playlist.ID, req)
	if err != nil {
		h.internalError(c, err)
		return
	}

	ctx := c.Request.Context()
	switch req.Action {
	case actionRemoveVideo:
		for _, videoID := range videoIDs {
			if playlist, err = h.playlists.RemoveVideo(ctx, playlist.ID, videoID); err != nil {
				h.internalError(c, err)
				return
			}
		}
	case actionMarkWatched:
		if len(videoIDs) > 0 {
			if playlist, err = h.playlists.MarkWatched(ctx, playlist.ID, videoIDs[0]); err != nil {
				h.internalError(c, err)
				return
			}
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "unknown action"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"playlist": playlistToResponse(playlist)})
}

func (h *Handler) resolveVideoIDs(c *gin.Context, playlistID int64, req patchPlaylistRequest) ([]string, error) {
	if req.VideoID != "" {
		return []string{req.VideoID}, nil
	}
	if req.VideoTitle == "" {
		return nil, nil
	}
	return h.playlists.ResolveVideoIDs(c.Request.Context(), playlistID, req.VideoTitle)
}

// ownedPlaylist loads the playlist from the :id param and enforces
// ownership. Foreign playlists answer 404 so their existence is not
// revealed.
func (h *Handler) ownedPlaylist(c *gin.Context) (*domain.Playlist, bool) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid playlist id"})
		return nil, false
	}

	playlist, err := h.playlists.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "playlist not found"})
			return nil, false
		}
		h.internalError(c, err)
		return nil, false
	}

	user := sessionUser(c)
	if playlist.Username != user.Username {
		c.JSON(http.StatusNotFound, gin.H{"message": "playlist not found"})
		return nil, false
	}
	return playlist, true
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
