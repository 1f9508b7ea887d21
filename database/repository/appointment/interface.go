package appointmentRepo

import (
	"context"
	"time"

	"consultorio/models"
)

// AppointmentRepository abstracts persistence of appointment documents.
type AppointmentRepository interface {
	// CreateIfFree inserts the appointment only if it overlaps no existing
	// non-cancelled appointment of the same professional. Conflict check and
	// insert run inside one transaction; returns ErrConflict otherwise.
	CreateIfFree(ctx context.Context, appt *models.Appointment) error
	HasConflict(ctx context.Context, professionalID string, start, end time.Time) (bool, error)
	GetByID(ctx context.Context, professionalID, id string) (*models.Appointment, error)
	ListByRange(ctx context.Context, professionalID string, from, to time.Time) ([]models.Appointment, error)
	// BusyIntervals returns only start/end pairs of non-cancelled
	// appointments; no patient or professional identity leaves this query.
	BusyIntervals(ctx context.Context, professionalID string) ([]models.CalendarInterval, error)
	UpdateStatus(ctx context.Context, professionalID, id string, status models.AppointmentStatus) error
	RegisterPayment(ctx context.Context, professionalID, id string, payment models.Payment) error
	ListPaidInRange(ctx context.Context, professionalID string, from, to time.Time) ([]models.Appointment, error)
	CountByRange(ctx context.Context, professionalID string, from, to time.Time) (int64, error)
	CountByStatus(ctx context.Context, professionalID string, status models.AppointmentStatus) (int64, error)
	SumPaidInRange(ctx context.Context, professionalID string, from, to time.Time) (float64, error)
	ListUpcoming(ctx context.Context, professionalID string, after time.Time, limit int) ([]models.Appointment, error)
}
