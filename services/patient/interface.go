package patient

import (
	"context"

	"consultorio/models"
)

// ContactInput is the form payload for creating or updating a patient.
type ContactInput struct {
	Cedula string `json:"cedula" binding:"required,min=3"`
	Name   string `json:"name" binding:"required,min=2"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

// NoteInput is a clinical-history entry submission.
type NoteInput struct {
	Note      string `json:"note" binding:"required"`
	Diagnosis string `json:"diagnosis"`
}

// FileInput records an uploaded object against a patient.
type FileInput struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// PageResult is one page of a patient listing.
type PageResult struct {
	Patients   []models.Patient `json:"patients"`
	TotalPages int64            `json:"totalPages"`
}

// PatientService covers the professional's patient registry.
type PatientService interface {
	Create(ctx context.Context, professionalID string, in ContactInput) (*models.Patient, error)
	Get(ctx context.Context, professionalID, id string) (*models.Patient, error)
	List(ctx context.Context, professionalID, query string, page int) (*PageResult, error)
	Update(ctx context.Context, professionalID, id string, in ContactInput) error
	Delete(ctx context.Context, professionalID, id string) error
	AddClinicalNote(ctx context.Context, professionalID, id string, in NoteInput) (*models.ClinicalRecord, error)
	SaveFileReference(ctx context.Context, professionalID, id string, in FileInput) error
}
