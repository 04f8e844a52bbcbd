package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/felano-technologies/poultrycare/internal/domain/models"
	"github.com/felano-technologies/poultrycare/internal/service/flocks"
)

// FlockHandler exposes flock registration, event appends and status counts.
type FlockHandler struct {
	svc    *flocks.Service
	logger *zap.Logger
}

// NewFlockHandler constructs the HTTP handler adapter.
func NewFlockHandler(svc *flocks.Service, logger *zap.Logger) *FlockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FlockHandler{svc: svc, logger: logger}
}

// Create registers a new flock.
func (h *FlockHandler) Create(c *gin.Context) {
	var req models.CreateFlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid flock payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	flock, err := h.svc.Create(c.Request.Context(), farmID(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, flock)
}

// List returns every flock owned by the caller's farm.
func (h *FlockHandler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), farmID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get returns one flock by id.
func (h *FlockHandler) Get(c *gin.Context) {
	flock, err := h.svc.Get(c.Request.Context(), farmID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, flock)
}

// AppendHealthEvent records a health state change on a flock.
func (h *FlockHandler) AppendHealthEvent(c *gin.Context) {
	var req models.AppendHealthEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid health event payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.AppendHealthEvent(c.Request.Context(), farmID(c), c.Param("id"), req); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AppendFeedEvent records feed administered to a flock.
func (h *FlockHandler) AppendFeedEvent(c *gin.Context) {
	var req models.AppendFeedEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid feed event payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.AppendFeedEvent(c.Request.Context(), farmID(c), c.Param("id"), req); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AppendEggEvent records egg production for a flock.
func (h *FlockHandler) AppendEggEvent(c *gin.Context) {
	var req models.AppendEggEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid egg event payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.AppendEggEvent(c.Request.Context(), farmID(c), c.Param("id"), req); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// StatusCounts returns the farm-wide healthy/sick/dead/sold tallies.
func (h *FlockHandler) StatusCounts(c *gin.Context) {
	counts, err := h.svc.StatusCounts(c.Request.Context(), farmID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

func (h *FlockHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, flocks.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flock data"})
	case errors.Is(err, flocks.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "flock not found"})
	default:
		h.logger.Error("flock request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to process flock request"})
	}
}
