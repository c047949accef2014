package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopmono/storefront/internal/directory"
	"github.com/shopmono/storefront/internal/errs"
	"github.com/shopmono/storefront/internal/model"
	"github.com/shopmono/storefront/internal/service"
)

// AdminHandler serves the settings and directory views of the dashboard.
type AdminHandler struct {
	settings *service.SettingsService
	users    *service.UserService
	dir      directory.Directory
}

func NewAdminHandler(settings *service.SettingsService, users *service.UserService, dir directory.Directory) *AdminHandler {
	return &AdminHandler{settings: settings, users: users, dir: dir}
}

func (h *AdminHandler) GetSettings(c *gin.Context) {
	cfg, err := h.settings.Get(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var cfg model.AppSettings
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := h.settings.Update(c.Request.Context(), &cfg); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, &cfg)
}

// Directory lists the in-process user directory; Accounts lists the
// relational store. They can diverge across worker processes, which is
// why both views exist.
func (h *AdminHandler) Directory(c *gin.Context) {
	entries := h.dir.List()
	c.JSON(http.StatusOK, gin.H{"users": entries, "total": len(entries)})
}

func (h *AdminHandler) DirectoryEntry(c *gin.Context) {
	entry, ok := h.dir.Find(c.Param("email"))
	if !ok {
		writeError(c, errs.ErrUserNotFound)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *AdminHandler) Accounts(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}
