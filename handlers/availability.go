package handlers

import (
	"errors"
	"net/http"

	"consultorio/models"
	"consultorio/services/professional"
	"consultorio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler serves the professional's weekly schedule endpoints.
type AvailabilityHandler struct {
	Service professional.ProfessionalService
}

func NewAvailabilityHandler(svc professional.ProfessionalService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// GetAvailabilityHandler handles GET /api/availability.
func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	id, ok := professionalID(c)
	if !ok {
		return
	}

	weekly, err := h.Service.GetAvailability(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, professional.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Professional not found"})
			return
		}
		utils.GetLogger().Error("Failed to load availability", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load availability"})
		return
	}

	c.JSON(http.StatusOK, weekly)
}

// UpdateAvailabilityHandler handles PUT /api/availability.
func (h *AvailabilityHandler) UpdateAvailabilityHandler(c *gin.Context) {
	id, ok := professionalID(c)
	if !ok {
		return
	}

	var weekly models.WeeklyAvailability
	if err := c.ShouldBindJSON(&weekly); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Service.UpdateAvailability(c.Request.Context(), id, weekly); err != nil {
		if errors.Is(err, professional.ErrInvalidSchedule) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Active days need a valid start time before the end time"})
			return
		}
		utils.GetLogger().Error("Failed to update availability", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Availability updated"})
}
