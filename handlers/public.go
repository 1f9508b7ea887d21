package handlers

import (
	"errors"
	"net/http"

	"consultorio/services/professional"
	"consultorio/services/schedule"
	"consultorio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PublicHandler serves the unauthenticated booking page endpoints.
type PublicHandler struct {
	Booking       schedule.PublicBookingService
	Professionals professional.ProfessionalService
}

func NewPublicHandler(booking schedule.PublicBookingService, profs professional.ProfessionalService) *PublicHandler {
	return &PublicHandler{Booking: booking, Professionals: profs}
}

// bookingErrorStatus maps a public booking rejection code to an HTTP status.
func bookingErrorStatus(code string) int {
	switch code {
	case schedule.CodeInvalidInput:
		return http.StatusBadRequest
	case schedule.CodeNotFound:
		return http.StatusNotFound
	case schedule.CodeDayOff, schedule.CodeBeforeOpening, schedule.CodeAfterClosing:
		return http.StatusUnprocessableEntity
	case schedule.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GetProfileHandler handles GET /api/public/:professionalId.
func (h *PublicHandler) GetProfileHandler(c *gin.Context) {
	id := c.Param("professionalId")

	profile, err := h.Professionals.GetPublicProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, professional.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Professional not found"})
			return
		}
		utils.GetLogger().Error("Failed to load public profile", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetAvailabilityHandler handles GET /api/public/:professionalId/availability.
// It returns the busy set: booked intervals plus out-of-hours blocks, with no
// patient identities.
func (h *PublicHandler) GetAvailabilityHandler(c *gin.Context) {
	id := c.Param("professionalId")

	intervals, err := h.Booking.GetPublicAvailability(c.Request.Context(), id)
	if err != nil {
		var bookingErr *schedule.BookingError
		if errors.As(err, &bookingErr) {
			c.JSON(bookingErrorStatus(bookingErr.Code), gin.H{"error": bookingErr.Message, "code": bookingErr.Code})
			return
		}
		utils.GetLogger().Error("Failed to compute public availability", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"busy": intervals})
}

// BookHandler handles POST /api/public/:professionalId/book.
func (h *PublicHandler) BookHandler(c *gin.Context) {
	var req schedule.PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	// The path parameter wins over whatever the body carries.
	req.ProfessionalID = c.Param("professionalId")

	appt, err := h.Booking.BookPublicAppointment(c.Request.Context(), req)
	if err != nil {
		var bookingErr *schedule.BookingError
		if errors.As(err, &bookingErr) {
			c.JSON(bookingErrorStatus(bookingErr.Code), gin.H{"error": bookingErr.Message, "code": bookingErr.Code})
			return
		}
		utils.GetLogger().Error("Failed to book public appointment",
			zap.String("professionalId", req.ProfessionalID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book appointment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Appointment requested",
		"appointment": appt,
	})
}
