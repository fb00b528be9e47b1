package booking

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitacare/hospital-api/internal/model"
	"github.com/vitacare/hospital-api/internal/repository"
	"github.com/vitacare/hospital-api/pkg/apperror"
)

// fakeAccountRepo holds accounts in memory.
type fakeAccountRepo struct {
	accounts map[uuid.UUID]*model.Account
}

func newFakeAccountRepo(accounts ...*model.Account) *fakeAccountRepo {
	r := &fakeAccountRepo{accounts: make(map[uuid.UUID]*model.Account)}
	for _, a := range accounts {
		r.accounts[a.ID] = a
	}
	return r
}

func (r *fakeAccountRepo) Create(_ context.Context, account *model.Account) error {
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) Get(_ context.Context, id uuid.UUID) (*model.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAccountRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	a, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.PasswordHash = hash
	return nil
}

func (r *fakeAccountRepo) SetPatientReport(_ context.Context, id uuid.UUID, reportURL string) error {
	a, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.PatientReport = reportURL
	return nil
}

func (r *fakeAccountRepo) ListByRole(_ context.Context, role model.Role) ([]*model.Account, error) {
	var out []*model.Account
	for _, a := range r.accounts {
		if a.Role == role {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) CountByRole(_ context.Context) (*model.DashboardCounts, error) {
	counts := &model.DashboardCounts{}
	for _, a := range r.accounts {
		switch a.Role {
		case model.RolePatient:
			counts.Patients++
		case model.RoleDoctor:
			counts.Doctors++
		case model.RoleAdmin:
			counts.Admins++
		}
	}
	return counts, nil
}

// fakeAppointmentRepo mirrors the store's partial unique index: inserting an
// active duplicate of a (doctor, date, time) slot fails with ErrDuplicate.
type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appointment *model.Appointment) error {
	for _, a := range r.appointments {
		if a.DoctorID == appointment.DoctorID && a.Date == appointment.Date &&
			a.Time == appointment.Time && a.Status.Active() {
			return repository.ErrDuplicate
		}
	}
	appointment.ID = uuid.New()
	r.appointments[appointment.ID] = appointment
	return nil
}

func (r *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.AppointmentStatus) (*model.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a.Status = status
	return a, nil
}

func (r *fakeAppointmentRepo) ListForDoctor(_ context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range r.appointments {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListForPatient(_ context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range r.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) PendingSlots(_ context.Context, doctorID uuid.UUID) ([]model.Slot, error) {
	var out []model.Slot
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && a.Status == model.AppointmentStatusPending {
			out = append(out, model.Slot{Date: a.Date, Time: a.Time})
		}
	}
	return out, nil
}

func testAccounts() (*model.Account, *model.Account) {
	doctor := &model.Account{
		ID:    uuid.New(),
		Name:  "Dr. Strange",
		Email: "strange@example.com",
		Role:  model.RoleDoctor,
	}
	patient := &model.Account{
		ID:            uuid.New(),
		Name:          "Peter Parker",
		Email:         "peter@example.com",
		Role:          model.RolePatient,
		PatientReport: "http://storage.example/reports/peter.pdf",
	}
	return doctor, patient
}

func TestBookSlot(t *testing.T) {
	doctor, patient := testAccounts()
	svc := NewService(newFakeAppointmentRepo(), newFakeAccountRepo(doctor, patient), nil, nil)

	apt, err := svc.BookSlot(context.Background(), patient.ID, doctor.ID, "2026-09-15", "10:30 AM")
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.Equal(t, doctor.ID, apt.DoctorID)
	assert.Equal(t, patient.ID, apt.PatientID)
	assert.NotEmpty(t, apt.RoomID)
}

func TestBookSlotDoctorNotFound(t *testing.T) {
	_, patient := testAccounts()
	svc := NewService(newFakeAppointmentRepo(), newFakeAccountRepo(patient), nil, nil)

	_, err := svc.BookSlot(context.Background(), patient.ID, uuid.New(), "2026-09-15", "10:30 AM")
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestBookSlotTargetNotADoctor(t *testing.T) {
	_, patient := testAccounts()
	other := &model.Account{ID: uuid.New(), Role: model.RolePatient, PatientReport: "r"}
	svc := NewService(newFakeAppointmentRepo(), newFakeAccountRepo(patient, other), nil, nil)

	_, err := svc.BookSlot(context.Background(), patient.ID, other.ID, "2026-09-15", "10:30 AM")
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestBookSlotRequiresReport(t *testing.T) {
	doctor, patient := testAccounts()
	patient.PatientReport = ""
	repo := newFakeAppointmentRepo()
	svc := NewService(repo, newFakeAccountRepo(doctor, patient), nil, nil)

	_, err := svc.BookSlot(context.Background(), patient.ID, doctor.ID, "2026-09-15", "10:30 AM")
	assert.True(t, apperror.Is(err, apperror.CodePreconditionFailed))
	assert.Empty(t, repo.appointments, "no appointment should be created")
}

func TestBookSlotDuplicateSlotConflicts(t *testing.T) {
	doctor, patient := testAccounts()
	second := &model.Account{
		ID:            uuid.New(),
		Role:          model.RolePatient,
		PatientReport: "http://storage.example/reports/other.pdf",
	}
	svc := NewService(newFakeAppointmentRepo(), newFakeAccountRepo(doctor, patient, second), nil, nil)

	_, err := svc.BookSlot(context.Background(), patient.ID, doctor.ID, "2026-09-15", "10:30 AM")
	require.NoError(t, err)

	_, err = svc.BookSlot(context.Background(), second.ID, doctor.ID, "2026-09-15", "10:30 AM")
	assert.True(t, apperror.Is(err, apperror.CodeConflict))
}

func TestBookSlotDistinctSlotsBothSucceed(t *testing.T) {
	doctor, patient := testAccounts()
	svc := NewService(newFakeAppointmentRepo(), newFakeAccountRepo(doctor, patient), nil, nil)

	_, err := svc.BookSlot(context.Background(), patient.ID, doctor.ID, "2026-09-15", "10:30 AM")
	require.NoError(t, err)
	_, err = svc.BookSlot(context.Background(), patient.ID, doctor.ID, "2026-09-15", "11:00 AM")
	require.NoError(t, err)
	_, err = svc.BookSlot(context.Background(), patient.ID, doctor.ID, "2026-09-16", "10:30 AM")
	require.NoError(t, err)
}

func TestBookSlotReleasedSlotCanBeRebooked(t *testing.T) {
	doctor, patient := testAccounts()
	svc := NewService(newFakeAppointmentRepo(), newFakeAccountRepo(doctor, patient), nil, nil)

	apt, err := svc.BookSlot(context.Background(), patient.ID, doctor.ID, "2026-09-15", "10:30 AM")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), apt.ID, model.AppointmentStatusCancelled)
	require.NoError(t, err)

	_, err = svc.BookSlot(context.Background(), patient.ID, doctor.ID, "2026-09-15", "10:30 AM")
	assert.NoError(t, err, "cancelled appointment should free the slot")
}

func TestUpdateStatusInvalid(t *testing.T) {
	doctor, patient := testAccounts()
	svc := NewService(newFakeAppointmentRepo(), newFakeAccountRepo(doctor, patient), nil, nil)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), model.AppointmentStatus("Done"))
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
}

func TestUpdateStatusNotFound(t *testing.T) {
	doctor, patient := testAccounts()
	svc := NewService(newFakeAppointmentRepo(), newFakeAccountRepo(doctor, patient), nil, nil)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), model.AppointmentStatusConfirmed)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestListForPatientChronologicalWithDoctorAttached(t *testing.T) {
	doctor, patient := testAccounts()
	svc := NewService(newFakeAppointmentRepo(), newFakeAccountRepo(doctor, patient), nil, nil)

	// Booked out of order on purpose.
	_, err := svc.BookSlot(context.Background(), patient.ID, doctor.ID, "2026-09-20", "09:00 AM")
	require.NoError(t, err)
	_, err = svc.BookSlot(context.Background(), patient.ID, doctor.ID, "2026-09-15", "02:30 PM")
	require.NoError(t, err)
	_, err = svc.BookSlot(context.Background(), patient.ID, doctor.ID, "2026-09-15", "10:30 AM")
	require.NoError(t, err)

	appointments, err := svc.ListForPatient(context.Background(), patient.ID)
	require.NoError(t, err)
	require.Len(t, appointments, 3)

	assert.Equal(t, "10:30 AM", appointments[0].Time)
	assert.Equal(t, "02:30 PM", appointments[1].Time)
	assert.Equal(t, "2026-09-20", appointments[2].Date)

	for _, apt := range appointments {
		require.NotNil(t, apt.Doctor)
		assert.Equal(t, doctor.ID, apt.Doctor.ID)
	}
}

func TestListForDoctorAttachesPatients(t *testing.T) {
	doctor, patient := testAccounts()
	svc := NewService(newFakeAppointmentRepo(), newFakeAccountRepo(doctor, patient), nil, nil)

	_, err := svc.BookSlot(context.Background(), patient.ID, doctor.ID, "2026-09-15", "10:30 AM")
	require.NoError(t, err)

	appointments, err := svc.ListForDoctor(context.Background(), doctor.ID)
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	require.NotNil(t, appointments[0].Patient)
	assert.Equal(t, patient.ID, appointments[0].Patient.ID)
}

func TestPendingSlots(t *testing.T) {
	doctor, patient := testAccounts()
	svc := NewService(newFakeAppointmentRepo(), newFakeAccountRepo(doctor, patient), nil, nil)

	apt, err := svc.BookSlot(context.Background(), patient.ID, doctor.ID, "2026-09-15", "10:30 AM")
	require.NoError(t, err)
	_, err = svc.BookSlot(context.Background(), patient.ID, doctor.ID, "2026-09-15", "11:00 AM")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), apt.ID, model.AppointmentStatusConfirmed)
	require.NoError(t, err)

	slots, err := svc.PendingSlots(context.Background(), doctor.ID)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "11:00 AM", slots[0].Time)
}
