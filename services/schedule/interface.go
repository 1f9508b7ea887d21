package schedule

import (
	"context"
	"time"

	"consultorio/models"
)

// PublicBookingRequest is the unauthenticated booking submission from the
// professional's public page.
type PublicBookingRequest struct {
	ProfessionalID string    `json:"professionalId"`
	Name           string    `json:"name" binding:"required"`
	Email          string    `json:"email" binding:"required,email"`
	Phone          string    `json:"phone" binding:"required"`
	Cedula         string    `json:"cedula" binding:"required"`
	Start          time.Time `json:"start" binding:"required"`
	End            time.Time `json:"end" binding:"required"`
}

// PublicBookingService drives the public self-service booking page.
type PublicBookingService interface {
	// GetPublicAvailability returns the complete busy set for the public
	// calendar: real appointment intervals (times only, no identities)
	// plus synthesized out-of-hours blocks over the display horizon.
	GetPublicAvailability(ctx context.Context, professionalID string) ([]models.CalendarInterval, error)
	// BookPublicAppointment runs the ordered validation sequence and, on
	// success, creates exactly one pending appointment and at most one
	// new or refreshed patient record.
	BookPublicAppointment(ctx context.Context, req PublicBookingRequest) (*models.Appointment, error)
}
