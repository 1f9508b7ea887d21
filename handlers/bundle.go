package handlers

import (
	professionalRepo "consultorio/database/repository/professional"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// ProfessionalRepo backs the auth middleware's session lookup.
	ProfessionalRepo professionalRepo.ProfessionalRepository

	Professional *ProfessionalHandler
	Availability *AvailabilityHandler
	Patient      *PatientHandler
	Appointment  *AppointmentHandler
	Public       *PublicHandler
	Storage      *StorageHandler
}
