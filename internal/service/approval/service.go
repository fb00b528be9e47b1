package approval

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vitacare/hospital-api/internal/model"
	"github.com/vitacare/hospital-api/internal/repository"
	"github.com/vitacare/hospital-api/pkg/apperror"
	"github.com/vitacare/hospital-api/pkg/messaging"
	"github.com/vitacare/hospital-api/pkg/metrics"
	"github.com/vitacare/hospital-api/pkg/storage"
)

type Service struct {
	repo        repository.DoctorRequestRepository
	accountRepo repository.AccountRepository
	uploader    storage.Uploader
	broker      messaging.Broker
	metrics     *metrics.Metrics
}

func NewService(repo repository.DoctorRequestRepository, accountRepo repository.AccountRepository,
	uploader storage.Uploader, broker messaging.Broker, m *metrics.Metrics) *Service {
	return &Service{
		repo:        repo,
		accountRepo: accountRepo,
		uploader:    uploader,
		broker:      broker,
		metrics:     m,
	}
}

// Submit files a doctor-onboarding request for the account. The profile
// photo is uploaded first; if the upload fails no request record is created.
func (s *Service) Submit(ctx context.Context, accountID uuid.UUID, fields *model.DoctorRequestFields, photo []byte, photoContentType string) (*model.DoctorRequest, error) {
	account, err := s.accountRepo.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("account", err)
		}
		return nil, apperror.Internal(fmt.Errorf("failed to look up account: %w", err))
	}

	exists, err := s.repo.ExistsForUser(ctx, accountID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to check existing request: %w", err))
	}
	if exists {
		return nil, apperror.Conflict("your request has already been submitted", nil)
	}

	photoURL, err := s.uploader.Upload(ctx, photo, photoContentType)
	if err != nil {
		return nil, apperror.Upstream("failed to upload profile photo", err)
	}

	request := &model.DoctorRequest{
		UserID:          account.ID,
		Name:            account.Name,
		Email:           account.Email,
		Specialization:  fields.Specialization,
		Degree:          fields.Degree,
		Address:         fields.Address,
		Description:     fields.Description,
		ProfilePhotoURL: photoURL,
		Status:          model.RequestStatusPending,
	}

	if err := s.repo.Create(ctx, request); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("your request has already been submitted", err)
		}
		return nil, apperror.Internal(fmt.Errorf("failed to create doctor request: %w", err))
	}

	s.publish(ctx, messaging.ChannelDoctorRequestSubmitted, &model.DoctorRequestEvent{
		RequestID:      request.ID,
		UserID:         account.ID,
		ApplicantName:  account.Name,
		ApplicantEmail: account.Email,
		Status:         request.Status,
	})

	return request, nil
}

// Resolve applies an admin decision. Approval promotes the referenced
// account to doctor and populates its profile from the request; rejection
// demotes it to patient and clears the profile. Both writes happen in one
// transaction inside the repository. Re-resolving an already resolved
// request overwrites the previous decision and reapplies its side effects.
func (s *Service) Resolve(ctx context.Context, requestID uuid.UUID, decision model.RequestStatus) (*model.DoctorRequest, error) {
	if !decision.ValidDecision() {
		return nil, apperror.Validation(fmt.Sprintf("invalid decision %q", decision), nil)
	}

	request, err := s.repo.Get(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("doctor request", err)
		}
		return nil, apperror.Internal(fmt.Errorf("failed to look up doctor request: %w", err))
	}

	role := model.RolePatient
	profile := model.DoctorProfile{}
	if decision == model.RequestStatusApproved {
		role = model.RoleDoctor
		profile = request.Profile()
	}

	resolved, err := s.repo.Resolve(ctx, requestID, decision, role, profile)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("doctor request", err)
		}
		return nil, apperror.Internal(fmt.Errorf("failed to resolve doctor request: %w", err))
	}

	if s.metrics != nil {
		s.metrics.DoctorRequestsResolved.WithLabelValues(string(decision)).Inc()
	}
	s.publish(ctx, messaging.ChannelDoctorRequestResolved, &model.DoctorRequestEvent{
		RequestID:      resolved.ID,
		UserID:         resolved.UserID,
		ApplicantName:  resolved.Name,
		ApplicantEmail: resolved.Email,
		Status:         resolved.Status,
	})

	return resolved, nil
}

// List returns all onboarding requests, newest first.
func (s *Service) List(ctx context.Context) ([]*model.DoctorRequest, error) {
	requests, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to list doctor requests: %w", err))
	}
	return requests, nil
}

func (s *Service) publish(ctx context.Context, channel string, payload interface{}) {
	if s.broker == nil {
		return
	}
	if err := s.broker.Publish(ctx, channel, payload); err != nil {
		log.Warn().Err(err).Str("channel", channel).Msg("failed to publish event")
	}
}
