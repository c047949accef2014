package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopmono/storefront/internal/service"
)

type ChatHandler struct {
	svc *service.ChatService
}

func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type createChatRequest struct {
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
}

func (h *ChatHandler) Create(c *gin.Context) {
	var req createChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req.UserEmail, req.UserName)
	if err != nil {
		writeError(c, err)
		return
	}
	status := http.StatusCreated
	if res.Status == "existing" {
		status = http.StatusOK
	}
	c.JSON(status, res)
}

type sendMessageRequest struct {
	Content string `json:"content"`
	Sender  string `json:"sender"`
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	msg, err := h.svc.SendMessage(c.Request.Context(), c.Param("id"), req.Content, req.Sender)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *ChatHandler) Messages(c *gin.Context) {
	chat, err := h.svc.Messages(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chat": chat, "messages": chat.Messages})
}

type updateChatStatusRequest struct {
	Status string `json:"status"`
}

func (h *ChatHandler) UpdateStatus(c *gin.Context) {
	var req updateChatStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	chat, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

type submitRatingRequest struct {
	ChatID    string `json:"chatId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	UserEmail string `json:"userEmail"`
}

func (h *ChatHandler) SubmitRating(c *gin.Context) {
	var req submitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	rating, err := h.svc.SubmitRating(c.Request.Context(), req.ChatID, req.Rating, req.Comment, req.UserEmail)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rating)
}

func (h *ChatHandler) Ratings(c *gin.Context) {
	ratings, stats, err := h.svc.Ratings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ratings": ratings, "stats": stats})
}

func (h *ChatHandler) AdminList(c *gin.Context) {
	chats, counts, err := h.svc.AdminList(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats, "counts": counts})
}
