package notification

import (
	"context"
	"fmt"
	"time"

	"consultorio/models"
	"consultorio/utils"

	"firebase.google.com/go/v4/messaging"
)

// DefaultNotificationService is the production implementation: SMTP email
// to patients, FCM push to the professional's registered device.
type DefaultNotificationService struct {
	Email EmailSender
}

func NewDefaultNotificationService(email EmailSender) (*DefaultNotificationService, error) {
	if email == nil {
		return nil, fmt.Errorf("notification service initialization error: email sender is nil")
	}
	return &DefaultNotificationService{Email: email}, nil
}

func (s *DefaultNotificationService) SendBookingConfirmation(ctx context.Context, email, patientName, professionalName string, start time.Time) error {
	subject := fmt.Sprintf("Appointment confirmation - Dr. %s", professionalName)
	if err := s.Email.Send(email, subject, confirmationBody(patientName, professionalName, start)); err != nil {
		return fmt.Errorf("SendBookingConfirmation: %w", err)
	}
	return nil
}

func (s *DefaultNotificationService) SendAppointmentReminder(ctx context.Context, email, patientName, professionalName string, start time.Time) error {
	subject := fmt.Sprintf("Appointment reminder - Dr. %s", professionalName)
	if err := s.Email.Send(email, subject, reminderBody(patientName, professionalName, start)); err != nil {
		return fmt.Errorf("SendAppointmentReminder: %w", err)
	}
	return nil
}

// NotifyProfessionalNewBooking pushes an FCM notification to the
// professional's device. Professionals without a registered token are
// skipped silently.
func (s *DefaultNotificationService) NotifyProfessionalNewBooking(ctx context.Context, prof *models.Professional, patientName string, start time.Time) error {
	token := prof.Security.FCMToken
	if token == "" {
		return nil
	}
	if utils.FCMClient == nil {
		return fmt.Errorf("NotifyProfessionalNewBooking: FCM client not initialized")
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: "New appointment request",
			Body:  fmt.Sprintf("%s requested %s", patientName, start.UTC().Format("Mon 2 Jan 15:04")),
		},
		Data: map[string]string{
			"type":  "publicBooking",
			"start": start.UTC().Format(time.RFC3339),
		},
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("NotifyProfessionalNewBooking: failed to send FCM message: %w", err)
	}
	return nil
}
