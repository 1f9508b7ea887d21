package patientRepo

import (
	"context"

	"consultorio/models"
)

// PatientRepository abstracts persistence of patient records. Every query
// is scoped by the owning professional's id.
type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, professionalID, id string) (*models.Patient, error)
	GetByCedula(ctx context.Context, professionalID, cedula string) (*models.Patient, error)
	GetByEmail(ctx context.Context, professionalID, email string) (*models.Patient, error)
	List(ctx context.Context, professionalID, query string, page, perPage int) ([]models.Patient, int64, error)
	UpdateContact(ctx context.Context, professionalID, id string, cedula, name, phone, email string) error
	Delete(ctx context.Context, professionalID, id string) error
	Count(ctx context.Context, professionalID string) (int64, error)
	AddClinicalRecord(ctx context.Context, professionalID, id string, rec models.ClinicalRecord) error
	AddFile(ctx context.Context, professionalID, id string, file models.PatientFile) error
	NamesByIDs(ctx context.Context, professionalID string, ids []string) (map[string]models.Patient, error)
}
