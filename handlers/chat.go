package handlers

import (
	"net/http"

	"bookwell/services/conversation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler bridges the chat webhook to the conversation machine.
type ChatHandler struct {
	Machine *conversation.Machine
}

func NewChatHandler(machine *conversation.Machine) *ChatHandler {
	return &ChatHandler{Machine: machine}
}

// HandleMessage consumes one inbound chat message for a tenant's chat
// channel and returns the next prompt or the booking result.
func (h *ChatHandler) HandleMessage(c *gin.Context) {
	var input struct {
		TenantID   string `json:"tenantId" binding:"required"`
		ChatUserID string `json:"chatUserId" binding:"required"`
		Text       string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	reply, err := h.Machine.HandleMessage(c.Request.Context(), input.TenantID, input.ChatUserID, input.Text)
	if err != nil {
		zap.L().Error("chat message handling failed",
			zap.String("tenantId", input.TenantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message"})
		return
	}
	c.JSON(http.StatusOK, reply)
}
