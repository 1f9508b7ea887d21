package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"consultorio/models"
	"consultorio/services/appointment"
	"consultorio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler serves the professional-facing agenda endpoints.
type AppointmentHandler struct {
	Service appointment.AppointmentService
}

func NewAppointmentHandler(svc appointment.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

// ruleErrorStatus maps a business-rule rejection code to an HTTP status.
func ruleErrorStatus(code string) int {
	switch code {
	case appointment.CodeInvalidInput:
		return http.StatusBadRequest
	case appointment.CodeNotFound:
		return http.StatusNotFound
	case appointment.CodeDayOff, appointment.CodeOutsideHours:
		return http.StatusUnprocessableEntity
	case appointment.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CreateAppointmentHandler handles POST /api/appointments.
func (h *AppointmentHandler) CreateAppointmentHandler(c *gin.Context) {
	profID, ok := professionalID(c)
	if !ok {
		return
	}

	var input appointment.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	appt, err := h.Service.Create(c.Request.Context(), profID, input)
	if err != nil {
		var ruleErr *appointment.RuleError
		if errors.As(err, &ruleErr) {
			c.JSON(ruleErrorStatus(ruleErr.Code), gin.H{"error": ruleErr.Message, "code": ruleErr.Code})
			return
		}
		utils.GetLogger().Error("Failed to create appointment", zap.String("professionalId", profID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appointment"})
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// ListAppointmentsHandler handles GET /api/appointments?from=&to= (RFC3339).
func (h *AppointmentHandler) ListAppointmentsHandler(c *gin.Context) {
	profID, ok := professionalID(c)
	if !ok {
		return
	}

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' timestamp, expected RFC3339"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' timestamp, expected RFC3339"})
		return
	}

	appts, err := h.Service.ListByRange(c.Request.Context(), profID, from, to)
	if err != nil {
		utils.GetLogger().Error("Failed to list appointments", zap.String("professionalId", profID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list appointments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// CancelAppointmentHandler handles PUT /api/appointments/:id/cancel.
func (h *AppointmentHandler) CancelAppointmentHandler(c *gin.Context) {
	profID, ok := professionalID(c)
	if !ok {
		return
	}

	if err := h.Service.Cancel(c.Request.Context(), profID, c.Param("id")); err != nil {
		var ruleErr *appointment.RuleError
		if errors.As(err, &ruleErr) {
			c.JSON(ruleErrorStatus(ruleErr.Code), gin.H{"error": ruleErr.Message, "code": ruleErr.Code})
			return
		}
		utils.GetLogger().Error("Failed to cancel appointment", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel appointment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

// UpdateStatusHandler handles PUT /api/appointments/:id/status. It moves
// an appointment through its lifecycle (confirmed, completed). Cancelling
// also works here, though it has a dedicated endpoint.
func (h *AppointmentHandler) UpdateStatusHandler(c *gin.Context) {
	profID, ok := professionalID(c)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	status, err := models.ParseAppointmentStatus(body.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.UpdateStatus(c.Request.Context(), profID, c.Param("id"), status); err != nil {
		var ruleErr *appointment.RuleError
		if errors.As(err, &ruleErr) {
			c.JSON(ruleErrorStatus(ruleErr.Code), gin.H{"error": ruleErr.Message, "code": ruleErr.Code})
			return
		}
		utils.GetLogger().Error("Failed to update appointment status", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appointment status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment status updated"})
}

// RegisterPaymentHandler handles PUT /api/appointments/:id/payment.
func (h *AppointmentHandler) RegisterPaymentHandler(c *gin.Context) {
	profID, ok := professionalID(c)
	if !ok {
		return
	}

	var input appointment.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	appt, err := h.Service.RegisterPayment(c.Request.Context(), profID, c.Param("id"), input)
	if err != nil {
		var ruleErr *appointment.RuleError
		if errors.As(err, &ruleErr) {
			c.JSON(ruleErrorStatus(ruleErr.Code), gin.H{"error": ruleErr.Message, "code": ruleErr.Code})
			return
		}
		utils.GetLogger().Error("Failed to register payment", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register payment"})
		return
	}

	c.JSON(http.StatusOK, appt)
}

// CreatePaymentIntentHandler handles POST /api/appointments/:id/payment-intent.
func (h *AppointmentHandler) CreatePaymentIntentHandler(c *gin.Context) {
	profID, ok := professionalID(c)
	if !ok {
		return
	}

	result, err := h.Service.CreateCardPaymentIntent(c.Request.Context(), profID, c.Param("id"))
	if err != nil {
		var ruleErr *appointment.RuleError
		if errors.As(err, &ruleErr) {
			c.JSON(ruleErrorStatus(ruleErr.Code), gin.H{"error": ruleErr.Message, "code": ruleErr.Code})
			return
		}
		utils.GetLogger().Error("Failed to create payment intent", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// MonthlyReportHandler handles GET /api/appointments/report?year=&month=.
func (h *AppointmentHandler) MonthlyReportHandler(c *gin.Context) {
	profID, ok := professionalID(c)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'year'"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'month', expected 1-12"})
		return
	}

	rows, err := h.Service.MonthlyReport(c.Request.Context(), profID, year, time.Month(month))
	if err != nil {
		utils.GetLogger().Error("Failed to build monthly report", zap.String("professionalId", profID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// DashboardStatsHandler handles GET /api/appointments/stats.
func (h *AppointmentHandler) DashboardStatsHandler(c *gin.Context) {
	profID, ok := professionalID(c)
	if !ok {
		return
	}

	stats, err := h.Service.DashboardStats(c.Request.Context(), profID)
	if err != nil {
		utils.GetLogger().Error("Failed to compute dashboard stats", zap.String("professionalId", profID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
