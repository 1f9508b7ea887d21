package professional

import (
	"context"
	"testing"

	"consultorio/config"
	professionalRepo "consultorio/database/repository/professional"
	"consultorio/models"
	"consultorio/services/schedule"
	"consultorio/utils"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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
		if tokenHash != "" && p.Security.TokenHash == tokenHash {
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

func newTestService(t *testing.T) (*DefaultProfessionalService, *fakeProfessionalRepo) {
	t.Helper()
	config.AppConfig.JWTSecret = "test-secret"
	repo := &fakeProfessionalRepo{profs: map[string]*models.Professional{}}
	return &DefaultProfessionalService{Repo: repo}, repo
}

func registerInput() RegisterInput {
	return RegisterInput{
		Name:                "Ana Garcia",
		Email:               "ana@example.com",
		Password:            "hunter22",
		Specialty:           "Dermatology",
		MedicalRegistration: "MPPS-4411",
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, repo := newTestService(t)

	prof, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	assert.NotEmpty(t, prof.ID)
	assert.NotEqual(t, "hunter22", prof.Security.PasswordHash, "password must be stored hashed")

	result, err := svc.Authenticate(context.Background(), "ana@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, prof.ID, result.Professional.ID)

	// The session hash stored in the repo matches the issued token.
	stored := repo.profs[prof.ID]
	assert.Equal(t, utils.HashToken(result.Token), stored.Security.TokenHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerInput())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRevokeToken(t *testing.T) {
	svc, repo := newTestService(t)

	prof, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	result, err := svc.Authenticate(context.Background(), "ana@example.com", "hunter22")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(context.Background(), prof.ID))
	assert.Empty(t, repo.profs[prof.ID].Security.TokenHash)

	_, err = repo.GetByTokenHash(context.Background(), utils.HashToken(result.Token))
	assert.ErrorIs(t, err, professionalRepo.ErrNotFound)
}

func TestGetAvailabilityDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	prof, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	// Never configured: the default weekly schedule is synthesized, and
	// repeated reads return the same value.
	first, err := svc.GetAvailability(context.Background(), prof.ID)
	require.NoError(t, err)
	second, err := svc.GetAvailability(context.Background(), prof.ID)
	require.NoError(t, err)

	assert.Equal(t, models.DefaultWeeklyAvailability(), *first)
	assert.Equal(t, first, second)

	_, err = svc.GetAvailability(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAvailability(t *testing.T) {
	svc, repo := newTestService(t)

	prof, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	weekly := models.DefaultWeeklyAvailability()
	weekly.Saturday = models.DayAvailability{Active: true, Start: "09:00", End: "13:00"}
	require.NoError(t, svc.UpdateAvailability(context.Background(), prof.ID, weekly))
	assert.Equal(t, weekly, *repo.profs[prof.ID].Availability)

	got, err := svc.GetAvailability(context.Background(), prof.ID)
	require.NoError(t, err)
	assert.Equal(t, weekly, *got)

	bad := weekly
	bad.Monday = models.DayAvailability{Active: true, Start: "18:00", End: "09:00"}
	err = svc.UpdateAvailability(context.Background(), prof.ID, bad)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

type fakeAvailabilityCache struct {
	deleted []string
}

func (f *fakeAvailabilityCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.deleted = append(f.deleted, keys...)
	return redis.NewIntCmd(ctx)
}

func TestUpdateAvailabilityInvalidatesPublicCache(t *testing.T) {
	svc, _ := newTestService(t)
	cache := &fakeAvailabilityCache{}
	svc.Cache = cache

	prof, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	weekly := models.DefaultWeeklyAvailability()
	weekly.Friday = models.DayAvailability{Active: false}
	require.NoError(t, svc.UpdateAvailability(context.Background(), prof.ID, weekly))
	assert.Equal(t, []string{schedule.AvailabilityCacheKey(prof.ID)}, cache.deleted)

	// Rejected writes leave the cached busy set alone.
	bad := weekly
	bad.Monday = models.DayAvailability{Active: true, Start: "18:00", End: "09:00"}
	require.Error(t, svc.UpdateAvailability(context.Background(), prof.ID, bad))
	require.Error(t, svc.UpdateAvailability(context.Background(), "missing", weekly))
	assert.Len(t, cache.deleted, 1)
}
