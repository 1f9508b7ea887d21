package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	appointmentRepo "consultorio/database/repository/appointment"
	patientRepo "consultorio/database/repository/patient"
	professionalRepo "consultorio/database/repository/professional"
	"consultorio/models"
	"consultorio/services/notification"
	"consultorio/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// publicBookingNote is the fixed note attached to publicly created
// appointments.
const publicBookingNote = "Booked from public profile"

const availabilityCacheTTL = 60 * time.Second

// AvailabilityCacheKey is the Redis key holding a professional's cached
// public busy set. Writers that change the schedule must drop it.
func AvailabilityCacheKey(professionalID string) string {
	return "public-availability:" + professionalID
}

// DefaultPublicBookingService is the production implementation.
type DefaultPublicBookingService struct {
	Professionals professionalRepo.ProfessionalRepository
	Patients      patientRepo.PatientRepository
	Appointments  appointmentRepo.AppointmentRepository
	Notifier      notification.NotificationService
	Cache         *redis.Client
	HorizonDays   int
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultPublicBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GetPublicAvailability returns the busy set for the public calendar. The
// result is cached briefly per professional since the public page polls it.
func (s *DefaultPublicBookingService) GetPublicAvailability(ctx context.Context, professionalID string) ([]models.CalendarInterval, error) {
	logger := utils.GetLogger()

	if s.Cache != nil {
		cacheKey := AvailabilityCacheKey(professionalID)
		if cached, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var intervals []models.CalendarInterval
			if err := json.Unmarshal([]byte(cached), &intervals); err == nil {
				return intervals, nil
			}
		}
	}

	prof, err := s.Professionals.GetByID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrNotFound) {
			return nil, newBookingError(CodeNotFound, "professional not found")
		}
		return nil, fmt.Errorf("fetching professional: %w", err)
	}

	// Only start/end times leave this function; patient identities stay out
	// of the public response.
	busy, err := s.Appointments.BusyIntervals(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("fetching busy intervals: %w", err)
	}

	if prof.Availability != nil {
		busy = append(busy, GenerateBlocks(*prof.Availability, s.now(), s.HorizonDays)...)
	}

	if s.Cache != nil {
		if payload, err := json.Marshal(busy); err == nil {
			if err := s.Cache.Set(ctx, AvailabilityCacheKey(professionalID), payload, availabilityCacheTTL).Err(); err != nil {
				logger.Warn("failed to cache public availability", zap.Error(err))
			}
		}
	}
	return busy, nil
}

// BookPublicAppointment validates and creates a public booking. Checks run
// in order and short-circuit; on any rejection no records are written.
func (s *DefaultPublicBookingService) BookPublicAppointment(ctx context.Context, req PublicBookingRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()

	// 1. Required fields.
	if req.ProfessionalID == "" || req.Name == "" || req.Email == "" ||
		req.Phone == "" || req.Cedula == "" || req.Start.IsZero() || req.End.IsZero() {
		return nil, newBookingError(CodeInvalidInput, "all fields are required")
	}

	// 2. Interval sanity.
	if !req.Start.Before(req.End) {
		return nil, newBookingError(CodeInvalidInput, "start time must be before end time")
	}

	// 3. Professional exists.
	prof, err := s.Professionals.GetByID(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrNotFound) {
			return nil, newBookingError(CodeNotFound, "professional not found")
		}
		return nil, fmt.Errorf("fetching professional: %w", err)
	}

	// 4. Working-hours gate, only when a schedule is configured.
	if prof.Availability != nil {
		if err := s.gate(req.Start, req.End, *prof.Availability); err != nil {
			return nil, err
		}
	}

	// 5. Conflict detection. Re-checked transactionally at insert; this
	// early check gives the caller a precise message without a write.
	conflict, err := s.Appointments.HasConflict(ctx, req.ProfessionalID, req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("checking conflicts: %w", err)
	}
	if conflict {
		return nil, newBookingError(CodeConflict, "the selected time slot is no longer available")
	}

	// 6. Patient upsert by (email, professional).
	patient, err := s.upsertPatient(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("upserting patient: %w", err)
	}

	// 7. Create the appointment.
	now := s.now().UTC()
	appt := &models.Appointment{
		ID:             uuid.New().String(),
		ProfessionalID: req.ProfessionalID,
		PatientID:      patient.ID,
		Start:          req.Start,
		End:            req.End,
		Cost:           0,
		Status:         models.StatusPending,
		Notes:          publicBookingNote,
		Payment: models.Payment{
			Status: models.PaymentPending,
			Method: models.MethodCash,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Appointments.CreateIfFree(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrConflict) {
			return nil, newBookingError(CodeConflict, "the selected time slot is no longer available")
		}
		return nil, fmt.Errorf("creating appointment: %w", err)
	}
	s.invalidateCache(ctx, req.ProfessionalID)

	// 8. Best-effort notifications; failures never roll back the booking.
	if s.Notifier != nil {
		if err := s.Notifier.SendBookingConfirmation(ctx, req.Email, req.Name, prof.Name, req.Start); err != nil {
			logger.Warn("failed to send booking confirmation",
				zap.String("professionalID", req.ProfessionalID), zap.Error(err))
		}
		if err := s.Notifier.NotifyProfessionalNewBooking(ctx, prof, req.Name, req.Start); err != nil {
			logger.Warn("failed to push new-booking notification",
				zap.String("professionalID", req.ProfessionalID), zap.Error(err))
		}
	}
	return appt, nil
}

// gate rejects bookings outside the configured working window. Both the
// start and the end instant are classified so an appointment cannot run
// past closing time.
func (s *DefaultPublicBookingService) gate(start, end time.Time, weekly models.WeeklyAvailability) error {
	day := weekly.Day(start.UTC().Weekday())
	if !day.Active {
		return newBookingError(CodeDayOff,
			fmt.Sprintf("the professional does not see patients on %s", strings.ToLower(start.UTC().Weekday().String())))
	}

	class, err := ClassifyStart(start, day)
	if err != nil {
		return newBookingError(CodeInvalidInput, "the professional's schedule is misconfigured")
	}
	switch class {
	case ClassBefore:
		return newBookingError(CodeBeforeOpening, "the requested time is before the professional's opening hour")
	case ClassAfter:
		return newBookingError(CodeAfterClosing, "the requested time is after the professional's closing hour")
	}

	if !SameDate(start, end) {
		return newBookingError(CodeAfterClosing, "the appointment would end after the professional's closing hour")
	}
	endClass, err := ClassifyStart(end, day)
	if err != nil {
		return newBookingError(CodeInvalidInput, "the professional's schedule is misconfigured")
	}
	if endClass == ClassAfter {
		return newBookingError(CodeAfterClosing, "the appointment would end after the professional's closing hour")
	}
	return nil
}

func (s *DefaultPublicBookingService) upsertPatient(ctx context.Context, req PublicBookingRequest) (*models.Patient, error) {
	existing, err := s.Patients.GetByEmail(ctx, req.ProfessionalID, req.Email)
	if err == nil {
		if err := s.Patients.UpdateContact(ctx, req.ProfessionalID, existing.ID, req.Cedula, req.Name, req.Phone, req.Email); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, patientRepo.ErrNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	patient := &models.Patient{
		ID:              uuid.New().String(),
		ProfessionalID:  req.ProfessionalID,
		Cedula:          req.Cedula,
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		ClinicalHistory: []models.ClinicalRecord{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Patients.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *DefaultPublicBookingService) invalidateCache(ctx context.Context, professionalID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, AvailabilityCacheKey(professionalID)).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate availability cache", zap.Error(err))
	}
}
