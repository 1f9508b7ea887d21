package schedule

import (
	"context"
	"testing"
	"time"

	appointmentRepo "consultorio/database/repository/appointment"
	patientRepo "consultorio/database/repository/patient"
	professionalRepo "consultorio/database/repository/professional"
	"consultorio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- in-memory fakes ---

type fakeProfessionalRepo struct {
	profs map[string]*models.Professional
}

func (f *fakeProfessionalRepo) Create(ctx context.Context, prof *models.Professional) error {
	f.profs[prof.ID] = prof
	return nil
}

func (f *fakeProfessionalRepo) GetByID(ctx context.Context, id string) (*models.Professional, error) {
	prof, ok := f.profs[id]
	if !ok {
		return nil, professionalRepo.ErrNotFound
	}
	cp := *prof
	return &cp, nil
}

func (f *fakeProfessionalRepo) GetByEmail(ctx context.Context, email string) (*models.Professional, error) {
	for _, p := range f.profs {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, professionalRepo.ErrNotFound
}

func (f *fakeProfessionalRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Professional, error) {
	for _, p := range f.profs {
		if p.Security.TokenHash == tokenHash {
			cp := *p
			return &cp, nil
		}
	}
	return nil, professionalRepo.ErrNotFound
}

func (f *fakeProfessionalRepo) UpdateAvailability(ctx context.Context, id string, weekly models.WeeklyAvailability) error {
	prof, ok := f.profs[id]
	if !ok {
		return professionalRepo.ErrNotFound
	}
	prof.Availability = &weekly
	return nil
}

func (f *fakeProfessionalRepo) SetTokenHash(ctx context.Context, id, tokenHash string) error {
	prof, ok := f.profs[id]
	if !ok {
		return professionalRepo.ErrNotFound
	}
	prof.Security.TokenHash = tokenHash
	return nil
}

func (f *fakeProfessionalRepo) SetFCMToken(ctx context.Context, id, token string) error {
	prof, ok := f.profs[id]
	if !ok {
		return professionalRepo.ErrNotFound
	}
	prof.Security.FCMToken = token
	return nil
}

type fakePatientRepo struct {
	patients map[string]*models.Patient
}

func (f *fakePatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	f.patients[patient.ID] = patient
	return nil
}

func (f *fakePatientRepo) GetByID(ctx context.Context, professionalID, id string) (*models.Patient, error) {
	p, ok := f.patients[id]
	if !ok || p.ProfessionalID != professionalID {
		return nil, patientRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePatientRepo) GetByCedula(ctx context.Context, professionalID, cedula string) (*models.Patient, error) {
	for _, p := range f.patients {
		if p.ProfessionalID == professionalID && p.Cedula == cedula {
			cp := *p
			return &cp, nil
		}
	}
	return nil, patientRepo.ErrNotFound
}

func (f *fakePatientRepo) GetByEmail(ctx context.Context, professionalID, email string) (*models.Patient, error) {
	for _, p := range f.patients {
		if p.ProfessionalID == professionalID && p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, patientRepo.ErrNotFound
}

func (f *fakePatientRepo) List(ctx context.Context, professionalID, query string, page, perPage int) ([]models.Patient, int64, error) {
	var out []models.Patient
	for _, p := range f.patients {
		if p.ProfessionalID == professionalID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePatientRepo) UpdateContact(ctx context.Context, professionalID, id string, cedula, name, phone, email string) error {
	p, ok := f.patients[id]
	if !ok || p.ProfessionalID != professionalID {
		return patientRepo.ErrNotFound
	}
	p.Cedula, p.Name, p.Phone, p.Email = cedula, name, phone, email
	return nil
}

func (f *fakePatientRepo) Delete(ctx context.Context, professionalID, id string) error {
	delete(f.patients, id)
	return nil
}

func (f *fakePatientRepo) Count(ctx context.Context, professionalID string) (int64, error) {
	var n int64
	for _, p := range f.patients {
		if p.ProfessionalID == professionalID {
			n++
		}
	}
	return n, nil
}

func (f *fakePatientRepo) AddClinicalRecord(ctx context.Context, professionalID, id string, rec models.ClinicalRecord) error {
	p, ok := f.patients[id]
	if !ok || p.ProfessionalID != professionalID {
		return patientRepo.ErrNotFound
	}
	p.ClinicalHistory = append(p.ClinicalHistory, rec)
	return nil
}

func (f *fakePatientRepo) AddFile(ctx context.Context, professionalID, id string, file models.PatientFile) error {
	p, ok := f.patients[id]
	if !ok || p.ProfessionalID != professionalID {
		return patientRepo.ErrNotFound
	}
	p.Files = append(p.Files, file)
	return nil
}

func (f *fakePatientRepo) NamesByIDs(ctx context.Context, professionalID string, ids []string) (map[string]models.Patient, error) {
	out := make(map[string]models.Patient)
	for _, id := range ids {
		if p, ok := f.patients[id]; ok && p.ProfessionalID == professionalID {
			out[id] = *p
		}
	}
	return out, nil
}

type fakeAppointmentRepo struct {
	appts map[string]*models.Appointment
}

func (f *fakeAppointmentRepo) overlaps(professionalID string, start, end time.Time) bool {
	candidate := models.CalendarInterval{Start: start, End: end}
	for _, a := range f.appts {
		if a.ProfessionalID != professionalID || a.Status == models.StatusCancelled {
			continue
		}
		if a.Interval().Overlaps(candidate) {
			return true
		}
	}
	return false
}

func (f *fakeAppointmentRepo) CreateIfFree(ctx context.Context, appt *models.Appointment) error {
	if f.overlaps(appt.ProfessionalID, appt.Start, appt.End) {
		return appointmentRepo.ErrConflict
	}
	f.appts[appt.ID] = appt
	return nil
}

func (f *fakeAppointmentRepo) HasConflict(ctx context.Context, professionalID string, start, end time.Time) (bool, error) {
	return f.overlaps(professionalID, start, end), nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, professionalID, id string) (*models.Appointment, error) {
	a, ok := f.appts[id]
	if !ok || a.ProfessionalID != professionalID {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointmentRepo) ListByRange(ctx context.Context, professionalID string, from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appts {
		if a.ProfessionalID == professionalID && !a.Start.Before(from) && a.Start.Before(to) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) BusyIntervals(ctx context.Context, professionalID string) ([]models.CalendarInterval, error) {
	var out []models.CalendarInterval
	for _, a := range f.appts {
		if a.ProfessionalID == professionalID && a.Status != models.StatusCancelled {
			out = append(out, a.Interval())
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, professionalID, id string, status models.AppointmentStatus) error {
	a, ok := f.appts[id]
	if !ok || a.ProfessionalID != professionalID {
		return appointmentRepo.ErrNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeAppointmentRepo) RegisterPayment(ctx context.Context, professionalID, id string, payment models.Payment) error {
	a, ok := f.appts[id]
	if !ok || a.ProfessionalID != professionalID {
		return appointmentRepo.ErrNotFound
	}
	a.Payment = payment
	return nil
}

func (f *fakeAppointmentRepo) ListPaidInRange(ctx context.Context, professionalID string, from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appts {
		if a.ProfessionalID == professionalID && a.Payment.Status == models.PaymentPaid &&
			a.Payment.PaidAt != nil && !a.Payment.PaidAt.Before(from) && a.Payment.PaidAt.Before(to) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) CountByRange(ctx context.Context, professionalID string, from, to time.Time) (int64, error) {
	appts, _ := f.ListByRange(ctx, professionalID, from, to)
	return int64(len(appts)), nil
}

func (f *fakeAppointmentRepo) CountByStatus(ctx context.Context, professionalID string, status models.AppointmentStatus) (int64, error) {
	var n int64
	for _, a := range f.appts {
		if a.ProfessionalID == professionalID && a.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeAppointmentRepo) SumPaidInRange(ctx context.Context, professionalID string, from, to time.Time) (float64, error) {
	appts, _ := f.ListPaidInRange(ctx, professionalID, from, to)
	var sum float64
	for _, a := range appts {
		sum += a.Payment.Amount
	}
	return sum, nil
}

func (f *fakeAppointmentRepo) ListUpcoming(ctx context.Context, professionalID string, after time.Time, limit int) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appts {
		if a.ProfessionalID == professionalID && a.Start.After(after) && a.Status != models.StatusCancelled {
			out = append(out, *a)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeNotifier struct {
	confirmations int
	pushes        int
	reminders     int
}

func (f *fakeNotifier) SendBookingConfirmation(ctx context.Context, email, patientName, professionalName string, start time.Time) error {
	f.confirmations++
	return nil
}

func (f *fakeNotifier) SendAppointmentReminder(ctx context.Context, email, patientName, professionalName string, start time.Time) error {
	f.reminders++
	return nil
}

func (f *fakeNotifier) NotifyProfessionalNewBooking(ctx context.Context, prof *models.Professional, patientName string, start time.Time) error {
	f.pushes++
	return nil
}

// --- fixtures ---

const profID = "prof-1"

func newTestService() (*DefaultPublicBookingService, *fakeProfessionalRepo, *fakePatientRepo, *fakeAppointmentRepo, *fakeNotifier) {
	weekly := models.DefaultWeeklyAvailability()
	profRepo := &fakeProfessionalRepo{profs: map[string]*models.Professional{
		profID: {ID: profID, Name: "Garcia", Email: "garcia@example.com", Availability: &weekly},
	}}
	patRepo := &fakePatientRepo{patients: map[string]*models.Patient{}}
	apptRepo := &fakeAppointmentRepo{appts: map[string]*models.Appointment{}}
	notifier := &fakeNotifier{}

	svc := &DefaultPublicBookingService{
		Professionals: profRepo,
		Patients:      patRepo,
		Appointments:  apptRepo,
		Notifier:      notifier,
		HorizonDays:   7,
		Now:           func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
	return svc, profRepo, patRepo, apptRepo, notifier
}

func validRequest(start, end time.Time) PublicBookingRequest {
	return PublicBookingRequest{
		ProfessionalID: profID,
		Name:           "Maria Lopez",
		Email:          "maria@example.com",
		Phone:          "555-0101",
		Cedula:         "V-12345678",
		Start:          start,
		End:            end,
	}
}

func bookingCode(t *testing.T, err error) string {
	t.Helper()
	var be *BookingError
	require.ErrorAs(t, err, &be)
	return be.Code
}

// --- booking flow ---

func TestBookPublicAppointmentNewPatient(t *testing.T) {
	svc, _, patRepo, apptRepo, notifier := newTestService()

	// Tuesday March 3, 2026, 15:00-15:45, inside the default window.
	start := time.Date(2026, 3, 3, 15, 0, 0, 0, time.UTC)
	appt, err := svc.BookPublicAppointment(context.Background(), validRequest(start, start.Add(45*time.Minute)))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, models.PaymentPending, appt.Payment.Status)
	assert.Equal(t, publicBookingNote, appt.Notes)
	assert.Len(t, apptRepo.appts, 1)

	require.Len(t, patRepo.patients, 1)
	created := patRepo.patients[appt.PatientID]
	require.NotNil(t, created)
	assert.Equal(t, "Maria Lopez", created.Name)
	assert.Equal(t, profID, created.ProfessionalID)

	assert.Equal(t, 1, notifier.confirmations)
	assert.Equal(t, 1, notifier.pushes)
}

func TestBookPublicAppointmentReturningPatient(t *testing.T) {
	svc, _, patRepo, _, _ := newTestService()

	existing := &models.Patient{
		ID:             "pat-9",
		ProfessionalID: profID,
		Cedula:         "V-00000001",
		Name:           "M. Lopez",
		Email:          "maria@example.com",
	}
	patRepo.patients[existing.ID] = existing

	start := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	appt, err := svc.BookPublicAppointment(context.Background(), validRequest(start, start.Add(30*time.Minute)))
	require.NoError(t, err)

	assert.Equal(t, existing.ID, appt.PatientID)
	assert.Len(t, patRepo.patients, 1, "no duplicate patient record")
	// Contact details are refreshed from the submission.
	assert.Equal(t, "Maria Lopez", patRepo.patients[existing.ID].Name)
	assert.Equal(t, "V-12345678", patRepo.patients[existing.ID].Cedula)
}

func TestBookPublicAppointmentConflict(t *testing.T) {
	svc, _, patRepo, apptRepo, notifier := newTestService()

	taken := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	apptRepo.appts["a1"] = &models.Appointment{
		ID: "a1", ProfessionalID: profID, PatientID: "other",
		Start: taken, End: taken.Add(30 * time.Minute), Status: models.StatusConfirmed,
	}

	// Overlapping request: 10:15-10:45.
	req := validRequest(taken.Add(15*time.Minute), taken.Add(45*time.Minute))
	_, err := svc.BookPublicAppointment(context.Background(), req)
	assert.Equal(t, CodeConflict, bookingCode(t, err))

	// Rejection writes nothing and notifies nobody.
	assert.Len(t, apptRepo.appts, 1)
	assert.Empty(t, patRepo.patients)
	assert.Zero(t, notifier.confirmations)
}

func TestBookPublicAppointmentCancelledSlotIsFree(t *testing.T) {
	svc, _, _, apptRepo, _ := newTestService()

	taken := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	apptRepo.appts["a1"] = &models.Appointment{
		ID: "a1", ProfessionalID: profID, PatientID: "other",
		Start: taken, End: taken.Add(30 * time.Minute), Status: models.StatusCancelled,
	}

	_, err := svc.BookPublicAppointment(context.Background(), validRequest(taken, taken.Add(30*time.Minute)))
	assert.NoError(t, err, "cancelled appointments do not block the slot")
}

func TestBookPublicAppointmentGate(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	cases := []struct {
		name     string
		start    time.Time
		duration time.Duration
		wantCode string
	}{
		{
			name:     "day off",
			start:    time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC), // Sunday
			duration: 30 * time.Minute,
			wantCode: CodeDayOff,
		},
		{
			name:     "before opening",
			start:    time.Date(2026, 3, 3, 7, 30, 0, 0, time.UTC),
			duration: 30 * time.Minute,
			wantCode: CodeBeforeOpening,
		},
		{
			name:     "after closing",
			start:    time.Date(2026, 3, 3, 18, 0, 0, 0, time.UTC),
			duration: 30 * time.Minute,
			wantCode: CodeAfterClosing,
		},
		{
			name:     "runs past closing",
			start:    time.Date(2026, 3, 3, 16, 45, 0, 0, time.UTC),
			duration: time.Hour,
			wantCode: CodeAfterClosing,
		},
		{
			name:     "ends at midnight",
			start:    time.Date(2026, 3, 3, 16, 30, 0, 0, time.UTC),
			duration: 7*time.Hour + 30*time.Minute,
			wantCode: CodeAfterClosing,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.BookPublicAppointment(context.Background(), validRequest(tc.start, tc.start.Add(tc.duration)))
			assert.Equal(t, tc.wantCode, bookingCode(t, err))
		})
	}
}

func TestBookPublicAppointmentOvernightRejected(t *testing.T) {
	svc, _, patRepo, apptRepo, _ := newTestService()

	// Monday 16:00 through Tuesday 09:00. Both endpoints read as inside
	// Monday's wall-clock window, but the interval spans two dates.
	start := time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)
	_, err := svc.BookPublicAppointment(context.Background(), validRequest(start, start.Add(17*time.Hour)))
	assert.Equal(t, CodeAfterClosing, bookingCode(t, err))
	assert.Empty(t, apptRepo.appts)
	assert.Empty(t, patRepo.patients)
}

func TestBookPublicAppointmentNoScheduleSkipsGate(t *testing.T) {
	svc, profRepo, _, _, _ := newTestService()
	profRepo.profs[profID].Availability = nil

	// Sunday 23:00 would fail every gate check; without a configured
	// schedule only conflicts apply.
	start := time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC)
	_, err := svc.BookPublicAppointment(context.Background(), validRequest(start, start.Add(30*time.Minute)))
	assert.NoError(t, err)
}

func TestBookPublicAppointmentValidation(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	start := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

	req := validRequest(start, start.Add(30*time.Minute))
	req.Email = ""
	_, err := svc.BookPublicAppointment(context.Background(), req)
	assert.Equal(t, CodeInvalidInput, bookingCode(t, err))

	// start == end
	_, err = svc.BookPublicAppointment(context.Background(), validRequest(start, start))
	assert.Equal(t, CodeInvalidInput, bookingCode(t, err))

	// start > end
	_, err = svc.BookPublicAppointment(context.Background(), validRequest(start, start.Add(-time.Hour)))
	assert.Equal(t, CodeInvalidInput, bookingCode(t, err))

	req = validRequest(start, start.Add(30*time.Minute))
	req.ProfessionalID = "missing"
	_, err = svc.BookPublicAppointment(context.Background(), req)
	assert.Equal(t, CodeNotFound, bookingCode(t, err))
}

// --- public availability ---

func TestGetPublicAvailability(t *testing.T) {
	svc, _, _, apptRepo, _ := newTestService()

	booked := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	apptRepo.appts["a1"] = &models.Appointment{
		ID: "a1", ProfessionalID: profID, PatientID: "secret",
		Start: booked, End: booked.Add(30 * time.Minute), Status: models.StatusPending,
	}

	busy, err := svc.GetPublicAvailability(context.Background(), profID)
	require.NoError(t, err)

	// One real appointment plus generated blocks over the 7-day horizon
	// (8 dates, March 1 through 8): the two Sundays and the Saturday are
	// full-day blocks, the five weekdays each get a pre and a post block.
	assert.Len(t, busy, 1+3+5*2)

	var found bool
	for _, b := range busy {
		if b.Start.Equal(booked) && b.End.Equal(booked.Add(30*time.Minute)) {
			found = true
		}
	}
	assert.True(t, found, "booked interval must appear in the busy set")
}

func TestGetPublicAvailabilityNoSchedule(t *testing.T) {
	svc, profRepo, _, apptRepo, _ := newTestService()
	profRepo.profs[profID].Availability = nil

	booked := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	apptRepo.appts["a1"] = &models.Appointment{
		ID: "a1", ProfessionalID: profID, PatientID: "secret",
		Start: booked, End: booked.Add(30 * time.Minute), Status: models.StatusPending,
	}

	busy, err := svc.GetPublicAvailability(context.Background(), profID)
	require.NoError(t, err)
	assert.Len(t, busy, 1, "no schedule means no generated blocks")
}

func TestGetPublicAvailabilityUnknownProfessional(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.GetPublicAvailability(context.Background(), "missing")
	assert.Equal(t, CodeNotFound, bookingCode(t, err))
}
