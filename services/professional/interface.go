package professional

import (
	"context"

	"consultorio/models"
)

// RegisterInput is the account registration payload.
type RegisterInput struct {
	Name                string `json:"name" binding:"required,min=2"`
	Email               string `json:"email" binding:"required,email"`
	Password            string `json:"password" binding:"required,min=6"`
	Specialty           string `json:"specialty" binding:"required"`
	MedicalRegistration string `json:"medicalRegistration" binding:"required"`
}

// AuthResult is returned on successful login.
type AuthResult struct {
	Professional models.PublicProfile `json:"professional"`
	Token        string               `json:"token"`
}

// ProfessionalService manages practitioner accounts and their weekly
// availability configuration.
type ProfessionalService interface {
	Register(ctx context.Context, in RegisterInput) (*models.Professional, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	RevokeToken(ctx context.Context, id string) error
	GetPublicProfile(ctx context.Context, id string) (*models.PublicProfile, error)
	// GetAvailability returns the stored weekly schedule, synthesizing the
	// default one when none was ever configured. Idempotent.
	GetAvailability(ctx context.Context, id string) (*models.WeeklyAvailability, error)
	// UpdateAvailability validates (active days need start < end) and
	// persists the schedule.
	UpdateAvailability(ctx context.Context, id string, weekly models.WeeklyAvailability) error
	UpdateFCMToken(ctx context.Context, id, token string) error
}
