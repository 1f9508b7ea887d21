package patient

import (
	"context"
	"errors"
	"fmt"
	"time"

	patientRepo "consultorio/database/repository/patient"
	"consultorio/models"

	"github.com/google/uuid"
)

const patientsPerPage = 10

// ErrDuplicateCedula is returned when the national ID is already registered
// for this professional.
var ErrDuplicateCedula = errors.New("a patient with this cedula is already registered")

// ErrNotFound is returned when the patient does not exist or does not
// belong to the professional.
var ErrNotFound = errors.New("patient not found")

// DefaultPatientService is the production implementation.
type DefaultPatientService struct {
	Repo patientRepo.PatientRepository
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultPatientService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultPatientService) Create(ctx context.Context, professionalID string, in ContactInput) (*models.Patient, error) {
	if _, err := s.Repo.GetByCedula(ctx, professionalID, in.Cedula); err == nil {
		return nil, ErrDuplicateCedula
	} else if !errors.Is(err, patientRepo.ErrNotFound) {
		return nil, fmt.Errorf("checking cedula: %w", err)
	}

	now := s.now().UTC()
	patient := &models.Patient{
		ID:              uuid.New().String(),
		ProfessionalID:  professionalID,
		Cedula:          in.Cedula,
		Name:            in.Name,
		Phone:           in.Phone,
		Email:           in.Email,
		ClinicalHistory: []models.ClinicalRecord{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("creating patient: %w", err)
	}
	return patient, nil
}

func (s *DefaultPatientService) Get(ctx context.Context, professionalID, id string) (*models.Patient, error) {
	p, err := s.Repo.GetByID(ctx, professionalID, id)
	if errors.Is(err, patientRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *DefaultPatientService) List(ctx context.Context, professionalID, query string, page int) (*PageResult, error) {
	patients, total, err := s.Repo.List(ctx, professionalID, query, page, patientsPerPage)
	if err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	totalPages := (total + patientsPerPage - 1) / patientsPerPage
	if patients == nil {
		patients = []models.Patient{}
	}
	return &PageResult{Patients: patients, TotalPages: totalPages}, nil
}

func (s *DefaultPatientService) Update(ctx context.Context, professionalID, id string, in ContactInput) error {
	existing, err := s.Repo.GetByID(ctx, professionalID, id)
	if err != nil {
		if errors.Is(err, patientRepo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("fetching patient: %w", err)
	}

	// A cedula change must not collide with another patient of the same
	// professional.
	if existing.Cedula != in.Cedula {
		if _, err := s.Repo.GetByCedula(ctx, professionalID, in.Cedula); err == nil {
			return ErrDuplicateCedula
		} else if !errors.Is(err, patientRepo.ErrNotFound) {
			return fmt.Errorf("checking cedula: %w", err)
		}
	}

	if err := s.Repo.UpdateContact(ctx, professionalID, id, in.Cedula, in.Name, in.Phone, in.Email); err != nil {
		if errors.Is(err, patientRepo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("updating patient: %w", err)
	}
	return nil
}

func (s *DefaultPatientService) Delete(ctx context.Context, professionalID, id string) error {
	err := s.Repo.Delete(ctx, professionalID, id)
	if errors.Is(err, patientRepo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *DefaultPatientService) AddClinicalNote(ctx context.Context, professionalID, id string, in NoteInput) (*models.ClinicalRecord, error) {
	rec := models.ClinicalRecord{
		ID:        uuid.New().String(),
		Date:      s.now().UTC(),
		Note:      in.Note,
		Diagnosis: in.Diagnosis,
	}
	if err := s.Repo.AddClinicalRecord(ctx, professionalID, id, rec); err != nil {
		if errors.Is(err, patientRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("adding clinical note: %w", err)
	}
	return &rec, nil
}

func (s *DefaultPatientService) SaveFileReference(ctx context.Context, professionalID, id string, in FileInput) error {
	file := models.PatientFile{
		Name: in.Name,
		URL:  in.URL,
		Type: in.Type,
		Date: s.now().UTC(),
	}
	if err := s.Repo.AddFile(ctx, professionalID, id, file); err != nil {
		if errors.Is(err, patientRepo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("saving file reference: %w", err)
	}
	return nil
}
