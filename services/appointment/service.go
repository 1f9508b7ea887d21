package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	appointmentRepo "consultorio/database/repository/appointment"
	patientRepo "consultorio/database/repository/patient"
	professionalRepo "consultorio/database/repository/professional"
	"consultorio/models"
	"consultorio/services/notification"
	"consultorio/services/schedule"
	"consultorio/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReminderScheduler enqueues a reminder to be delivered ahead of the
// appointment. Scheduling failures are logged, never surfaced.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, email, patientName, professionalName string, start time.Time) error
}

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Appointments  appointmentRepo.AppointmentRepository
	Patients      patientRepo.PatientRepository
	Professionals professionalRepo.ProfessionalRepository
	Notifier      notification.NotificationService
	Reminders     ReminderScheduler
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultAppointmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create books an appointment on behalf of the professional. The same
// availability gate and conflict check as the public flow apply.
func (s *DefaultAppointmentService) Create(ctx context.Context, professionalID string, in CreateInput) (*models.Appointment, error) {
	logger := utils.GetLogger()

	if !in.Start.Before(in.End) {
		return nil, newRuleError(CodeInvalidInput, "start time must be before end time")
	}

	prof, err := s.Professionals.GetByID(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("fetching professional: %w", err)
	}

	patient, err := s.Patients.GetByID(ctx, professionalID, in.PatientID)
	if err != nil {
		if errors.Is(err, patientRepo.ErrNotFound) {
			return nil, newRuleError(CodeNotFound, "patient not found")
		}
		return nil, fmt.Errorf("fetching patient: %w", err)
	}

	if prof.Availability != nil {
		if err := s.checkWorkingHours(in.Start, in.End, *prof.Availability); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	appt := &models.Appointment{
		ID:             uuid.New().String(),
		ProfessionalID: professionalID,
		PatientID:      patient.ID,
		Start:          in.Start,
		End:            in.End,
		Cost:           in.Cost,
		Status:         models.StatusPending,
		Notes:          in.Notes,
		Payment: models.Payment{
			Status: models.PaymentPending,
			Method: models.MethodCash,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Appointments.CreateIfFree(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrConflict) {
			return nil, newRuleError(CodeConflict, "the interval overlaps an existing appointment")
		}
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	if s.Reminders != nil && patient.Email != "" {
		if err := s.Reminders.ScheduleReminder(ctx, patient.Email, patient.Name, prof.Name, appt.Start); err != nil {
			logger.Warn("failed to schedule appointment reminder",
				zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}
	return appt, nil
}

func (s *DefaultAppointmentService) checkWorkingHours(start, end time.Time, weekly models.WeeklyAvailability) error {
	day := weekly.Day(start.UTC().Weekday())
	if !day.Active {
		return newRuleError(CodeDayOff,
			fmt.Sprintf("no patients are seen on %s", strings.ToLower(start.UTC().Weekday().String())))
	}
	startClass, err := schedule.ClassifyStart(start, day)
	if err != nil {
		return newRuleError(CodeInvalidInput, "the weekly schedule is misconfigured")
	}
	if startClass != schedule.ClassWithin {
		return newRuleError(CodeOutsideHours, "the requested time is outside working hours")
	}
	if !schedule.SameDate(start, end) {
		return newRuleError(CodeOutsideHours, "the appointment would end after closing time")
	}
	endClass, err := schedule.ClassifyStart(end, day)
	if err != nil {
		return newRuleError(CodeInvalidInput, "the weekly schedule is misconfigured")
	}
	if endClass == schedule.ClassAfter {
		return newRuleError(CodeOutsideHours, "the appointment would end after closing time")
	}
	return nil
}

func (s *DefaultAppointmentService) ListByRange(ctx context.Context, professionalID string, from, to time.Time) ([]models.Appointment, error) {
	return s.Appointments.ListByRange(ctx, professionalID, from, to)
}

func (s *DefaultAppointmentService) Cancel(ctx context.Context, professionalID, id string) error {
	return s.UpdateStatus(ctx, professionalID, id, models.StatusCancelled)
}

// UpdateStatus moves an appointment to the given lifecycle state. The
// status must already be validated at the parse boundary.
func (s *DefaultAppointmentService) UpdateStatus(ctx context.Context, professionalID, id string, status models.AppointmentStatus) error {
	err := s.Appointments.UpdateStatus(ctx, professionalID, id, status)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return newRuleError(CodeNotFound, "appointment not found")
	}
	return err
}

// RegisterPayment marks the appointment paid with the given amount and
// method. Start, end, notes and status are left untouched.
func (s *DefaultAppointmentService) RegisterPayment(ctx context.Context, professionalID, id string, in PaymentInput) (*models.Appointment, error) {
	method, err := models.ParsePaymentMethod(in.Method)
	if err != nil {
		return nil, newRuleError(CodeInvalidInput, err.Error())
	}
	if in.Amount < 0 {
		return nil, newRuleError(CodeInvalidInput, "amount cannot be negative")
	}

	appt, err := s.Appointments.GetByID(ctx, professionalID, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, newRuleError(CodeNotFound, "appointment not found")
		}
		return nil, fmt.Errorf("fetching appointment: %w", err)
	}

	paidAt := s.now().UTC()
	payment := models.Payment{
		Status:         models.PaymentPaid,
		Amount:         in.Amount,
		Method:         method,
		PaidAt:         &paidAt,
		StripeIntentID: appt.Payment.StripeIntentID,
	}
	if err := s.Appointments.RegisterPayment(ctx, professionalID, id, payment); err != nil {
		return nil, fmt.Errorf("registering payment: %w", err)
	}

	appt.Payment = payment
	return appt, nil
}

// MonthlyReport builds the financial report rows for one calendar month.
func (s *DefaultAppointmentService) MonthlyReport(ctx context.Context, professionalID string, year int, month time.Month) ([]models.ReportRow, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Millisecond)

	paid, err := s.Appointments.ListPaidInRange(ctx, professionalID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing paid appointments: %w", err)
	}
	if len(paid) == 0 {
		return []models.ReportRow{}, nil
	}

	ids := make([]string, 0, len(paid))
	for _, a := range paid {
		ids = append(ids, a.PatientID)
	}
	patients, err := s.Patients.NamesByIDs(ctx, professionalID, ids)
	if err != nil {
		return nil, fmt.Errorf("resolving patient names: %w", err)
	}

	rows := make([]models.ReportRow, 0, len(paid))
	for _, a := range paid {
		name, cedula := "Unknown", "N/A"
		if p, ok := patients[a.PatientID]; ok {
			name, cedula = p.Name, p.Cedula
		}
		concept := a.Notes
		if concept == "" {
			concept = "Consulta"
		}
		rows = append(rows, models.ReportRow{
			Date:          a.Start.UTC().Format("2006-01-02"),
			PatientName:   name,
			PatientCedula: cedula,
			Concept:       concept,
			PaymentMethod: a.Payment.Method,
			Amount:        a.Payment.Amount,
		})
	}
	return rows, nil
}

// DashboardStats aggregates the professional's landing-page numbers.
func (s *DefaultAppointmentService) DashboardStats(ctx context.Context, professionalID string) (*models.DashboardStats, error) {
	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Millisecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Millisecond)

	totalPatients, err := s.Patients.Count(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("counting patients: %w", err)
	}
	today, err := s.Appointments.CountByRange(ctx, professionalID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("counting today's appointments: %w", err)
	}
	pending, err := s.Appointments.CountByStatus(ctx, professionalID, models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("counting pending appointments: %w", err)
	}
	income, err := s.Appointments.SumPaidInRange(ctx, professionalID, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("summing month income: %w", err)
	}

	upcomingRaw, err := s.Appointments.ListUpcoming(ctx, professionalID, now, 3)
	if err != nil {
		return nil, fmt.Errorf("listing upcoming appointments: %w", err)
	}
	var upcoming []models.UpcomingAppointment
	if len(upcomingRaw) > 0 {
		ids := make([]string, 0, len(upcomingRaw))
		for _, a := range upcomingRaw {
			ids = append(ids, a.PatientID)
		}
		patients, err := s.Patients.NamesByIDs(ctx, professionalID, ids)
		if err != nil {
			return nil, fmt.Errorf("resolving patient names: %w", err)
		}
		for _, a := range upcomingRaw {
			name := "Unknown"
			if p, ok := patients[a.PatientID]; ok {
				name = p.Name
			}
			upcoming = append(upcoming, models.UpcomingAppointment{
				ID:          a.ID,
				PatientName: name,
				Date:        a.Start,
				Time:        a.Start.UTC().Format("15:04"),
			})
		}
	}

	return &models.DashboardStats{
		TotalPatients:       totalPatients,
		AppointmentsToday:   today,
		PendingAppointments: pending,
		MonthIncome:         income,
		Upcoming:            upcoming,
	}, nil
}
