package controllers

import (
	"context"
	"net/http"
	"strings"

	"eklerchik/internal/genai"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChatSender interface {
	Send(ctx context.Context, sessionID, message string) genai.Reply
}

type ChatController struct {
	chat ChatSender
}

func NewChatController(chat ChatSender) *ChatController {
	return &ChatController{chat: chat}
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

// SendMessage godoc
// @Summary Talk to the blog's AI companion
// @Description Failures are answered with a friendly message and is_error set; the session then starts over
// @Tags chat
// @Accept json
// @Produce json
// @Param request body chatRequest true "Message"
// @Success 200 {object} map[string]interface{} "Reply"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /chat [post]
func (cc *ChatController) SendMessage(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Message is empty",
			"error":   "message must not be blank",
		})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply := cc.chat.Send(c.Request.Context(), sessionID, message)
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Reply generated",
		"data": gin.H{
			"session_id": sessionID,
			"text":       reply.Text,
			"is_error":   reply.IsError,
		},
	})
}
