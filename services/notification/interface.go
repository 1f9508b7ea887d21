package notification

import (
	"context"
	"time"

	"consultorio/models"
)

// NotificationService sends fire-and-forget messages. Callers log failures
// and move on; no notification outcome affects the parent operation.
type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, email, patientName, professionalName string, start time.Time) error
	SendAppointmentReminder(ctx context.Context, email, patientName, professionalName string, start time.Time) error
	NotifyProfessionalNewBooking(ctx context.Context, prof *models.Professional, patientName string, start time.Time) error
}
