package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/felano-technologies/poultrycare/internal/domain/models"
	"github.com/felano-technologies/poultrycare/internal/service/notifications"
)

// NotificationHandler exposes the merged notification list and its mutations.
type NotificationHandler struct {
	svc    *notifications.Service
	logger *zap.Logger
}

// NewNotificationHandler constructs the HTTP handler adapter.
func NewNotificationHandler(svc *notifications.Service, logger *zap.Logger) *NotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationHandler{svc: svc, logger: logger}
}

// List returns the ranked notification list for the caller's farm.
func (h *NotificationHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), farmID(c))
	if err != nil {
		h.logger.Error("notification derivation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load notifications"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// Create stores a user-created notification.
func (h *NotificationHandler) Create(c *gin.Context) {
	var req models.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid notification payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), farmID(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// MarkRead flips the read flag on one persisted notification.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	updated, err := h.svc.MarkRead(c.Request.Context(), farmID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *NotificationHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, notifications.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification data"})
	case errors.Is(err, notifications.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
	default:
		h.logger.Error("notification request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to process notification request"})
	}
}
