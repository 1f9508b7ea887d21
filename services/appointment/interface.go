package appointment

import (
	"context"
	"time"

	"consultorio/models"
)

// CreateInput is a professional-initiated appointment request.
type CreateInput struct {
	PatientID string    `json:"patientId" binding:"required"`
	Start     time.Time `json:"start" binding:"required"`
	End       time.Time `json:"end" binding:"required"`
	Cost      float64   `json:"cost"`
	Notes     string    `json:"notes"`
}

// PaymentInput registers an offline payment against an appointment.
type PaymentInput struct {
	Amount float64 `json:"amount" binding:"required"`
	Method string  `json:"method" binding:"required"`
}

// AppointmentService covers the professional-facing appointment surface.
type AppointmentService interface {
	Create(ctx context.Context, professionalID string, in CreateInput) (*models.Appointment, error)
	ListByRange(ctx context.Context, professionalID string, from, to time.Time) ([]models.Appointment, error)
	Cancel(ctx context.Context, professionalID, id string) error
	UpdateStatus(ctx context.Context, professionalID, id string, status models.AppointmentStatus) error
	RegisterPayment(ctx context.Context, professionalID, id string, in PaymentInput) (*models.Appointment, error)
	CreateCardPaymentIntent(ctx context.Context, professionalID, id string) (*PaymentIntentResult, error)
	MonthlyReport(ctx context.Context, professionalID string, year int, month time.Month) ([]models.ReportRow, error)
	DashboardStats(ctx context.Context, professionalID string) (*models.DashboardStats, error)
}
