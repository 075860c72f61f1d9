package handlers

import (
	"errors"
	"net/http"

	conversationRepo "petcare/database/repository/conversation"
	"petcare/models"
	"petcare/services/chat"
	"petcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler exposes the conversational endpoints.
type ChatHandler struct {
	Service chat.ChatService
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(svc chat.ChatService) *ChatHandler {
	return &ChatHandler{Service: svc}
}

// HandleMessage processes one chat turn.
func (h *ChatHandler) HandleMessage(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	resp, err := h.Service.HandleMessage(req)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			utils.JSONError(c, http.StatusBadRequest, "Message is required", "")
			return
		}
		utils.GetLogger().Error("chat turn failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError,
			"An error occurred while processing your message. Please try again.", "")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetConversation returns the message log, context, and state for a session.
func (h *ChatHandler) GetConversation(c *gin.Context) {
	sessionID := c.Param("sessionId")

	view, err := h.Service.GetConversation(sessionID)
	if err != nil {
		if errors.Is(err, conversationRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Conversation not found", "")
			return
		}
		utils.GetLogger().Error("failed to load conversation",
			zap.String("sessionId", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to retrieve conversation", "")
		return
	}

	c.JSON(http.StatusOK, view)
}
