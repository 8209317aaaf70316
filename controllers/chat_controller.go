package controllers

import (
	"net/http"

	"github.com/999NK/teste2nutria-sub000/services"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	AI *services.AIService // nil when GEMINI_API_KEY is not configured
}

func NewChatController(ai *services.AIService) *ChatController {
	return &ChatController{AI: ai}
}

type ChatInput struct {
	Message string `json:"message" binding:"required"`
}

func (h *ChatController) Post(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if h.AI == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat is not configured"})
		return
	}
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.FindUserByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	reply, err := h.AI.Chat(c.Request.Context(), user, input.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

func (h *ChatController) ClearHistory(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if h.AI == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat is not configured"})
		return
	}
	if err := h.AI.ClearChat(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
