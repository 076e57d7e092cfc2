package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tubeshelf/internal/repository"
	"tubeshelf/internal/service"
)

type registerRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"message": "passwords do not match"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "user already exists, login or use a different username"})
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Error()})
		default:
			h.internalError(c, err)
		}
		return
	}

	if err := h.issueSession(c, user.ID); err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "user registered successfully",
		"user":    userToResponse(user),
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "incorrect password"})
		default:
			h.internalError(c, err)
		}
		return
	}

	if err := h.issueSession(c, user.ID); err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("welcome back %s", user.Username),
		"user":    userToResponse(user),
	})
}

// logout always clears the cookie and always succeeds, regardless of
// whether a valid session was present.
func (h *Handler) logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) me(c *gin.Context) {
	user := sessionUser(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "authorized",
		"user":    userToResponse(user),
	})
}

func (h *Handler) deleteAccount(c *gin.Context) {
	user := sessionUser(c)

	if err := h.users.DeleteAccount(c.Request.Context(), user.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.clearSessionCookie(c)
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}
		// partial cascade failures surface here instead of claiming success
		h.internalError(c, err)
		return
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "account permanently deleted"})
}

func (h *Handler) issueSession(c *gin.Context, userID int64) error {
	token, err := h.tokens.Issue(userID)
	if err != nil {
		return fmt.Errorf("issue session token: %w", err)
	}
	h.setSessionCookie(c, token)
	return nil
}
