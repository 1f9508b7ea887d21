package models

// ReminderPayload is the queued task body for an appointment reminder email.
type ReminderPayload struct {
	Email            string `json:"email"`
	PatientName      string `json:"patientName"`
	ProfessionalName string `json:"professionalName"`
	Start            string `json:"start"` // RFC3339, UTC
}
