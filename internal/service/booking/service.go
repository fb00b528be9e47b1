package booking

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
)

type Service struct {
	repo        repository.AppointmentRepository
	accountRepo repository.AccountRepository
	broker      messaging.Broker
	metrics     *metrics.Metrics
}

func NewService(repo repository.AppointmentRepository, accountRepo repository.AccountRepository,
	broker messaging.Broker, m *metrics.Metrics) *Service {
	return &Service{
		repo:        repo,
		accountRepo: accountRepo,
		broker:      broker,
		metrics:     m,
	}
}

// BookSlot reserves the (doctor, date, time) slot for the patient. The slot
// reservation itself is a single insert guarded by the store's unique index,
// so two concurrent bookings of one slot cannot both succeed.
func (s *Service) BookSlot(ctx context.Context, patientID, doctorID uuid.UUID, date, slotTime string) (*model.Appointment, error) {
	doctor, err := s.accountRepo.Get(ctx, doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("doctor", err)
		}
		return nil, apperror.Internal(fmt.Errorf("failed to look up doctor: %w", err))
	}
	if doctor.Role != model.RoleDoctor {
		return nil, apperror.NotFound("doctor", nil)
	}

	patient, err := s.accountRepo.Get(ctx, patientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("patient", err)
		}
		return nil, apperror.Internal(fmt.Errorf("failed to look up patient: %w", err))
	}

	if patient.PatientReport == "" {
		return nil, apperror.PreconditionFailed("please upload your report before booking", nil)
	}

	appointment := &model.Appointment{
		DoctorID:  doctorID,
		PatientID: patientID,
		Date:      date,
		Time:      slotTime,
		RoomID:    uuid.New().String(),
		Status:    model.AppointmentStatusPending,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			if s.metrics != nil {
				s.metrics.BookingConflicts.Inc()
			}
			return nil, apperror.Conflict("this time slot is already booked, please choose another time", err)
		}
		return nil, apperror.Internal(fmt.Errorf("failed to create appointment: %w", err))
	}

	if s.metrics != nil {
		s.metrics.AppointmentsBooked.Inc()
	}
	s.publish(ctx, messaging.ChannelAppointmentBooked, &model.AppointmentEvent{
		AppointmentID: appointment.ID,
		DoctorID:      doctor.ID,
		DoctorEmail:   doctor.Email,
		PatientID:     patient.ID,
		PatientEmail:  patient.Email,
		Date:          date,
		Time:          slotTime,
		Status:        appointment.Status,
	})

	return appointment, nil
}

// UpdateStatus applies a status transition. It has no cascading effects on
// other entities.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) (*model.Appointment, error) {
	if !status.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("invalid appointment status %q", status), nil)
	}

	appointment, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("appointment", err)
		}
		return nil, apperror.Internal(fmt.Errorf("failed to update appointment status: %w", err))
	}

	s.publish(ctx, messaging.ChannelAppointmentStatusChanged, &model.AppointmentEvent{
		AppointmentID: appointment.ID,
		DoctorID:      appointment.DoctorID,
		PatientID:     appointment.PatientID,
		Date:          appointment.Date,
		Time:          appointment.Time,
		Status:        appointment.Status,
	})

	return appointment, nil
}

// ListForDoctor returns the doctor's appointments in chronological order,
// with each patient's public record attached.
func (s *Service) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	appointments, err := s.repo.ListForDoctor(ctx, doctorID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to list appointments: %w", err))
	}

	model.SortAppointmentsChronologically(appointments)
	s.attachParticipants(ctx, appointments, false)
	return appointments, nil
}

// ListForPatient returns the patient's appointments in chronological order,
// with each doctor's public record attached.
func (s *Service) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	appointments, err := s.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to list appointments: %w", err))
	}

	model.SortAppointmentsChronologically(appointments)
	s.attachParticipants(ctx, appointments, true)
	return appointments, nil
}

// PendingSlots returns the already-taken pending slots of a doctor.
func (s *Service) PendingSlots(ctx context.Context, doctorID uuid.UUID) ([]model.Slot, error) {
	slots, err := s.repo.PendingSlots(ctx, doctorID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to list pending slots: %w", err))
	}
	return slots, nil
}

// attachParticipants decorates appointments with the counterpart account.
// Lookup failures leave the field nil rather than failing the listing.
func (s *Service) attachParticipants(ctx context.Context, appointments []*model.Appointment, wantDoctor bool) {
	accounts := make(map[uuid.UUID]*model.PublicAccount)
	for _, apt := range appointments {
		id := apt.PatientID
		if wantDoctor {
			id = apt.DoctorID
		}
		pub, seen := accounts[id]
		if !seen {
			account, err := s.accountRepo.Get(ctx, id)
			if err != nil {
				log.Warn().Err(err).Str("account_id", id.String()).Msg("failed to resolve appointment participant")
				accounts[id] = nil
				continue
			}
			pub = account.Public()
			accounts[id] = pub
		}
		if wantDoctor {
			apt.Doctor = pub
		} else {
			apt.Patient = pub
		}
	}
}

func (s *Service) publish(ctx context.Context, channel string, payload interface{}) {
	if s.broker == nil {
		return
	}
	if err := s.broker.Publish(ctx, channel, payload); err != nil {
		log.Warn().Err(err).Str("channel", channel).Msg("failed to publish event")
	}
}
