package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopmono/storefront/internal/auth"
	"github.com/shopmono/storefront/internal/service"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	users     *service.UserService
	notifier  *service.NotificationService
	jwtSecret string
}

func NewAuthHandler(users *service.UserService, notifier *service.NotificationService, jwtSecret string) *AuthHandler {
	return &AuthHandler{users: users, notifier: notifier, jwtSecret: jwtSecret}
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	u, err := h.users.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	// The registration stays committed whatever happens to delivery.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, _ = h.notifier.Dispatch(ctx, "newUser", map[string]any{
			"name":  u.Name,
			"email": u.Email,
		})
	}()
	token, err := auth.IssueToken(h.jwtSecret, u.Email, u.Role, tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u, "token": token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	u, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	token, err := auth.IssueToken(h.jwtSecret, u.Email, u.Role, tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
}
