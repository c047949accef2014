package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopmono/storefront/internal/service"
)

type ContactHandler struct {
	svc *service.ContactService
}

func NewContactHandler(svc *service.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

type submitContactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req submitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	cm, err := h.svc.Submit(c.Request.Context(), req.Name, req.Email, req.Subject, req.Message, req.Priority)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cm)
}

type contactReplyRequest struct {
	Content string `json:"content"`
	Sender  string `json:"sender"`
}

func (h *ContactHandler) Reply(c *gin.Context) {
	var req contactReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	reply, err := h.svc.Reply(c.Request.Context(), c.Param("id"), req.Content, req.Sender)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}

type updateContactStatusRequest struct {
	Status string `json:"status"`
}

func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	var req updateContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	cm, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cm)
}

func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.svc.List(c.Request.Context(), c.Query("status"), c.Query("priority"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts, "total": len(contacts)})
}
