package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/vitacare/hospital-api/internal/model"
)

// Sentinel errors returned by repositories; services translate these into
// client-facing errors.
var (
	// ErrNotFound means the referenced row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means a uniqueness constraint rejected the write
	// (duplicate email, occupied slot, second doctor request).
	ErrDuplicate = errors.New("duplicate record")
)

// All repository interfaces in one file
type (
	// AccountRepository handles account persistence.
	AccountRepository interface {
		Create(ctx context.Context, account *model.Account) error
		Get(ctx context.Context, id uuid.UUID) (*model.Account, error)
		GetByEmail(ctx context.Context, email string) (*model.Account, error)
		UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
		SetPatientReport(ctx context.Context, id uuid.UUID, reportURL string) error
		ListByRole(ctx context.Context, role model.Role) ([]*model.Account, error)
		CountByRole(ctx context.Context) (*model.DashboardCounts, error)
	}

	// AppointmentRepository handles appointment persistence. Create relies
	// on the store's partial unique index over (doctor_id, date, time) for
	// active rows and reports violations as ErrDuplicate, so two concurrent
	// bookings of one slot cannot both succeed.
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) (*model.Appointment, error)
		ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error)
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
		PendingSlots(ctx context.Context, doctorID uuid.UUID) ([]model.Slot, error)
	}

	// DoctorRequestRepository handles onboarding requests. Resolve applies
	// the request-status update and the referenced account's role/profile
	// change as a single transactional unit.
	DoctorRequestRepository interface {
		Create(ctx context.Context, request *model.DoctorRequest) error
		Get(ctx context.Context, id uuid.UUID) (*model.DoctorRequest, error)
		ExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error)
		List(ctx context.Context) ([]*model.DoctorRequest, error)
		Resolve(ctx context.Context, id uuid.UUID, status model.RequestStatus, role model.Role, profile model.DoctorProfile) (*model.DoctorRequest, error)
	}

	// MessageRepository handles contact-form messages.
	MessageRepository interface {
		Create(ctx context.Context, message *model.ContactMessage) error
		List(ctx context.Context) ([]*model.ContactMessage, error)
	}
)
