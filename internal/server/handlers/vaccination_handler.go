package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/felano-technologies/poultrycare/internal/domain/models"
	"github.com/felano-technologies/poultrycare/internal/service/vaccinations"
)

// VaccinationHandler exposes vaccination record CRUD.
type VaccinationHandler struct {
	svc    *vaccinations.Service
	logger *zap.Logger
}

// NewVaccinationHandler constructs the HTTP handler adapter.
func NewVaccinationHandler(svc *vaccinations.Service, logger *zap.Logger) *VaccinationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VaccinationHandler{svc: svc, logger: logger}
}

// Create stores one administration event.
func (h *VaccinationHandler) Create(c *gin.Context) {
	var req models.SaveVaccinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid vaccination payload", zap.Error(err))
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

// List returns every vaccination record owned by the caller's farm.
func (h *VaccinationHandler) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context(), farmID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// Update replaces one record by id.
func (h *VaccinationHandler) Update(c *gin.Context) {
	var req models.SaveVaccinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid vaccination payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.Update(c.Request.Context(), farmID(c), c.Param("id"), req); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes one record by id.
func (h *VaccinationHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), farmID(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *VaccinationHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, vaccinations.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vaccination data"})
	case errors.Is(err, vaccinations.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "vaccination record not found"})
	default:
		h.logger.Error("vaccination request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to process vaccination request"})
	}
}
