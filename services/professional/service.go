package professional

import (
	"context"
	"errors"
	"fmt"
	"time"

	professionalRepo "consultorio/database/repository/professional"
	"consultorio/models"
	"consultorio/services/schedule"
	"consultorio/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

var (
	// ErrEmailTaken is returned when the registration email already exists.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotFound is returned when no professional matches.
	ErrNotFound = errors.New("professional not found")
	// ErrInvalidSchedule is returned when an availability update fails
	// validation.
	ErrInvalidSchedule = errors.New("invalid weekly schedule")
)

// availabilityCache is the slice of the Redis client needed to drop a
// stale public busy set when the schedule changes.
type availabilityCache interface {
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// DefaultProfessionalService is the production implementation.
type DefaultProfessionalService struct {
	Repo  professionalRepo.ProfessionalRepository
	Cache availabilityCache
}

func (s *DefaultProfessionalService) Register(ctx context.Context, in RegisterInput) (*models.Professional, error) {
	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, professionalRepo.ErrNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	prof := &models.Professional{
		ID:                  uuid.New().String(),
		Email:               in.Email,
		Name:                in.Name,
		Specialty:           in.Specialty,
		MedicalRegistration: in.MedicalRegistration,
		Security:            models.Security{PasswordHash: string(hash)},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.Repo.Create(ctx, prof); err != nil {
		return nil, fmt.Errorf("creating professional: %w", err)
	}
	return prof, nil
}

// Authenticate verifies credentials, issues a JWT and stores its hash so
// the auth middleware can resolve and revoke sessions.
func (s *DefaultProfessionalService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	prof, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("fetching professional: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(prof.Security.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(prof.ID, prof.Email, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}
	if err := s.Repo.SetTokenHash(ctx, prof.ID, utils.HashToken(token)); err != nil {
		return nil, fmt.Errorf("storing token hash: %w", err)
	}

	return &AuthResult{Professional: prof.PublicProfile(), Token: token}, nil
}

func (s *DefaultProfessionalService) RevokeToken(ctx context.Context, id string) error {
	return s.Repo.SetTokenHash(ctx, id, "")
}

func (s *DefaultProfessionalService) GetPublicProfile(ctx context.Context, id string) (*models.PublicProfile, error) {
	prof, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching professional: %w", err)
	}
	profile := prof.PublicProfile()
	return &profile, nil
}

func (s *DefaultProfessionalService) GetAvailability(ctx context.Context, id string) (*models.WeeklyAvailability, error) {
	prof, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching professional: %w", err)
	}
	weekly := prof.WeeklyOrDefault()
	return &weekly, nil
}

func (s *DefaultProfessionalService) UpdateAvailability(ctx context.Context, id string, weekly models.WeeklyAvailability) error {
	if err := weekly.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSchedule, err.Error())
	}
	err := s.Repo.UpdateAvailability(ctx, id, weekly)
	if errors.Is(err, professionalRepo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	// The public busy set is derived from the schedule. Drop the cached
	// copy so the next public read regenerates it.
	if s.Cache != nil {
		if cerr := s.Cache.Del(ctx, schedule.AvailabilityCacheKey(id)).Err(); cerr != nil {
			utils.GetLogger().Warn("failed to invalidate availability cache", zap.Error(cerr))
		}
	}
	return nil
}

func (s *DefaultProfessionalService) UpdateFCMToken(ctx context.Context, id, token string) error {
	return s.Repo.SetFCMToken(ctx, id, token)
}
