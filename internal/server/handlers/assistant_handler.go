package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/felano-technologies/poultrycare/internal/domain/models"
	"github.com/felano-technologies/poultrycare/internal/service/assistant"
)

// AssistantHandler exposes the AI chat endpoint.
type AssistantHandler struct {
	svc    *assistant.Service
	logger *zap.Logger
}

// NewAssistantHandler constructs the HTTP handler adapter.
func NewAssistantHandler(svc *assistant.Service, logger *zap.Logger) *AssistantHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantHandler{svc: svc, logger: logger}
}

// Chat relays one farmer message to the assistant.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reply, err := h.svc.Chat(c.Request.Context(), farmID(c), req.Message)
	if err != nil {
		if errors.Is(err, assistant.ErrDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant is not available"})
			return
		}
		h.logger.Error("assistant chat failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to reach assistant"})
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{Reply: reply})
}
