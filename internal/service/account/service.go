package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/vitacare/hospital-api/internal/model"
	"github.com/vitacare/hospital-api/internal/repository"
	"github.com/vitacare/hospital-api/pkg/apperror"
	"github.com/vitacare/hospital-api/pkg/storage"
)

const (
	doctorListCacheKey = "doctors"
	doctorListCacheTTL = 30 * time.Second
)

type Service struct {
	accountRepo     repository.AccountRepository
	appointmentRepo repository.AppointmentRepository
	uploader        storage.Uploader
	cache           *cache.Cache
}

func NewService(accountRepo repository.AccountRepository, appointmentRepo repository.AppointmentRepository,
	uploader storage.Uploader) *Service {
	return &Service{
		accountRepo:     accountRepo,
		appointmentRepo: appointmentRepo,
		uploader:        uploader,
		cache:           cache.New(doctorListCacheTTL, 5*time.Minute),
	}
}

// Profile returns the caller's own record, credential stripped.
func (s *Service) Profile(ctx context.Context, id uuid.UUID) (*model.PublicAccount, error) {
	account, err := s.accountRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("user", err)
		}
		return nil, apperror.Internal(fmt.Errorf("failed to get account: %w", err))
	}
	return account.Public(), nil
}

// UploadReport stores the patient's report image and records its URL.
func (s *Service) UploadReport(ctx context.Context, accountID uuid.UUID, blob []byte, contentType string) (string, error) {
	url, err := s.uploader.Upload(ctx, blob, contentType)
	if err != nil {
		return "", apperror.Upstream("failed to upload report", err)
	}

	if err := s.accountRepo.SetPatientReport(ctx, accountID, url); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperror.NotFound("user", err)
		}
		return "", apperror.Internal(fmt.Errorf("failed to save report: %w", err))
	}
	return url, nil
}

// ListDoctors returns the public doctor directory, newest first. The listing
// is cached briefly; InvalidateDoctorCache drops it when a role changes.
func (s *Service) ListDoctors(ctx context.Context) ([]*model.PublicAccount, error) {
	if cached, ok := s.cache.Get(doctorListCacheKey); ok {
		return cached.([]*model.PublicAccount), nil
	}

	accounts, err := s.accountRepo.ListByRole(ctx, model.RoleDoctor)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to list doctors: %w", err))
	}

	doctors := make([]*model.PublicAccount, 0, len(accounts))
	for _, a := range accounts {
		doctors = append(doctors, a.Public())
	}

	s.cache.Set(doctorListCacheKey, doctors, cache.DefaultExpiration)
	return doctors, nil
}

// InvalidateDoctorCache drops the cached directory after a role transition.
func (s *Service) InvalidateDoctorCache() {
	s.cache.Delete(doctorListCacheKey)
}

// DoctorDetails is the public doctor page: profile plus the pending slots
// that are no longer bookable.
type DoctorDetails struct {
	Doctor       *model.PublicAccount `json:"user"`
	Appointments []model.Slot         `json:"appointments"`
}

func (s *Service) GetDoctorDetails(ctx context.Context, id uuid.UUID) (*DoctorDetails, error) {
	account, err := s.accountRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("doctor", err)
		}
		return nil, apperror.Internal(fmt.Errorf("failed to get doctor: %w", err))
	}
	if account.Role != model.RoleDoctor {
		return nil, apperror.NotFound("doctor", nil)
	}

	slots, err := s.appointmentRepo.PendingSlots(ctx, id)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to list pending slots: %w", err))
	}

	return &DoctorDetails{Doctor: account.Public(), Appointments: slots}, nil
}

// DashboardCounts returns per-role account counts for the admin dashboard.
func (s *Service) DashboardCounts(ctx context.Context) (*model.DashboardCounts, error) {
	counts, err := s.accountRepo.CountByRole(ctx)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to count accounts: %w", err))
	}
	return counts, nil
}
