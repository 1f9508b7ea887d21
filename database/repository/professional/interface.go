package professionalRepo

import (
	"context"

	"consultorio/models"
)

// ProfessionalRepository abstracts persistence of practitioner accounts.
type ProfessionalRepository interface {
	Create(ctx context.Context, prof *models.Professional) error
	GetByID(ctx context.Context, id string) (*models.Professional, error)
	GetByEmail(ctx context.Context, email string) (*models.Professional, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Professional, error)
	UpdateAvailability(ctx context.Context, id string, weekly models.WeeklyAvailability) error
	SetTokenHash(ctx context.Context, id, tokenHash string) error
	SetFCMToken(ctx context.Context, id, token string) error
}
