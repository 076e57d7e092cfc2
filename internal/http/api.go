package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tubeshelf/internal/auth"
	"tubeshelf/internal/catalog"
	"tubeshelf/internal/domain"
	"tubeshelf/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users      service.UserService
	playlists  service.PlaylistService
	watchLater service.WatchLaterService
	catalog    catalog.Service
	tokens     *auth.TokenService
	cookieName string
	production bool
	logger     *logrus.Logger
}

func NewHandler(
	users service.UserService,
	playlists service.PlaylistService,
	watchLater service.WatchLaterService,
	catalogSvc catalog.Service,
	tokens *auth.TokenService,
	cookieName string,
	production bool,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		users:      users,
		playlists:  playlists,
		watchLater: watchLater,
		catalog:    catalogSvc,
		tokens:     tokens,
		cookieName: cookieName,
		production: production,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger))
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.register)
			authGroup.POST("/login", h.login)
			authGroup.POST("/logout", h.logout)
			authGroup.GET("/me", h.requireSession(), h.me)
			authGroup.DELETE("/account", h.requireSession(), h.deleteAccount)
		}

		playlists := api.Group("/playlists", h.requireSession())
		{
			playlists.POST("", h.addToPlaylist)
			playlists.GET("", h.listPlaylists)
			playlists.GET("/:id", h.getPlaylist)
			playlists.DELETE("/:id", h.deletePlaylist)
			playlists.PATCH("/:id", h.patchPlaylist)
		}

		watchLater := api.Group("/watch-later", h.requireSession())
		{
			watchLater.GET("", h.listWatchLater)
			watchLater.POST("", h.addWatchLater)
			watchLater.PATCH("/:id", h.markWatchLaterWatched)
			watchLater.DELETE("/:id", h.removeWatchLater)
		}

		videos := api.Group("/videos")
		{
			videos.GET("/stats", h.videoStats)
			videos.GET("/:id", h.videoDetails)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// the session cookie must survive cross-origin requests, so the
		// origin is echoed back instead of wildcarded
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// internalError logs the original failure and responds with a generic
// message so storage details never leak to clients.
func (h *Handler) internalError(c *gin.Context, err error) {
	h.logger.WithError(err).Errorf("%s %s failed", c.Request.Method, c.Request.URL.Path)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type VideoResponse struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Watched   bool   `json:"watched"`
}

type PlaylistResponse struct {
	ID           int64           `json:"id"`
	Username     string          `json:"username"`
	ChannelTitle string          `json:"channelTitle"`
	Videos       []VideoResponse `json:"videos"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type WatchLaterResponse struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
	Watched      bool   `json:"watched"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func playlistToResponse(playlist *domain.Playlist) PlaylistResponse {
	resp := PlaylistResponse{
		ID:           playlist.ID,
		Username:     playlist.Username,
		ChannelTitle: playlist.ChannelTitle,
		Videos:       make([]VideoResponse, len(playlist.Videos)),
		CreatedAt:    playlist.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    playlist.UpdatedAt.Format(time.RFC3339),
	}
	for i := range playlist.Videos {
		resp.Videos[i] = VideoResponse{
			VideoID:   playlist.Videos[i].VideoID,
			Title:     playlist.Videos[i].Title,
			Thumbnail: playlist.Videos[i].Thumbnail,
			Watched:   playlist.Videos[i].Watched,
		}
	}
	return resp
}

func watchLaterToResponse(entry *domain.WatchLaterEntry) WatchLaterResponse {
	return WatchLaterResponse{
		ID:           entry.ID,
		Username:     entry.Username,
		VideoID:      entry.VideoID,
		Title:        entry.Title,
		Thumbnail:    entry.Thumbnail,
		ChannelTitle: entry.ChannelTitle,
		Watched:      entry.Watched,
		CreatedAt:    entry.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    entry.UpdatedAt.Format(time.RFC3339),
	}
}
