package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tubeshelf/internal/domain"
	"tubeshelf/internal/repository"
)

const sessionUserKey = "session_user"

// requestLogger tags every request with an id and logs method, path,
// status and latency once the handler chain returns.
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		}).Info("request")
	}
}

// requireSession resolves the session cookie to a user and aborts the
// request when it cannot. Per-request states:
//
//	no cookie        -> 401
//	invalid token    -> 401
//	user missing     -> clear cookie, 404 (stale token cleanup)
//	valid session    -> user attached to the request context
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(h.cookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		userID, err := h.tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user, err := h.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				h.clearSessionCookie(c)
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			h.internalError(c, err)
			c.Abort()
			return
		}

		c.Set(sessionUserKey, user)
		c.Next()
	}
}

// sessionUser returns the user resolved by requireSession. Handlers
// behind the middleware can rely on it being present.
func sessionUser(c *gin.Context) *domain.User {
	value, exists := c.Get(sessionUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*domain.User)
	return user
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.production,
		SameSite: h.cookieSameSite(),
	})
}

// clearSessionCookie overwrites the cookie with a zero max-age and the
// same attributes, which is the only reliable way to delete it.
func (h *Handler) clearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.production,
		SameSite: h.cookieSameSite(),
	})
}

// SameSite=None needs Secure, so it is production-only; browsers treat
// None without Secure as invalid.
func (h *Handler) cookieSameSite() http.SameSite {
	if h.production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
