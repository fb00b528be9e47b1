package account

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitacare/hospital-api/internal/model"
	"github.com/vitacare/hospital-api/internal/repository"
	"github.com/vitacare/hospital-api/pkg/apperror"
)

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*model.Account
	listHits int
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

func (r *fakeAccountRepo) UpdatePassword(context.Context, uuid.UUID, string) error { return nil }

func (r *fakeAccountRepo) SetPatientReport(_ context.Context, id uuid.UUID, reportURL string) error {
	a, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.PatientReport = reportURL
	return nil
}

func (r *fakeAccountRepo) ListByRole(_ context.Context, role model.Role) ([]*model.Account, error) {
	r.listHits++
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

type fakeAppointmentRepo struct {
	slots map[uuid.UUID][]model.Slot
}

func (r *fakeAppointmentRepo) Create(context.Context, *model.Appointment) error { return nil }

func (r *fakeAppointmentRepo) Get(context.Context, uuid.UUID) (*model.Appointment, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeAppointmentRepo) UpdateStatus(context.Context, uuid.UUID, model.AppointmentStatus) (*model.Appointment, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeAppointmentRepo) ListForDoctor(context.Context, uuid.UUID) ([]*model.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) ListForPatient(context.Context, uuid.UUID) ([]*model.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) PendingSlots(_ context.Context, doctorID uuid.UUID) ([]model.Slot, error) {
	return r.slots[doctorID], nil
}

type fakeUploader struct {
	url string
	err error
}

func (u *fakeUploader) Upload(context.Context, []byte, string) (string, error) {
	return u.url, u.err
}

func TestProfileStripsCredential(t *testing.T) {
	account := &model.Account{
		ID:           uuid.New(),
		Name:         "Jane",
		Role:         model.RolePatient,
		PasswordHash: "$2a$10$hash",
	}
	svc := NewService(newFakeAccountRepo(account), &fakeAppointmentRepo{}, &fakeUploader{})

	pub, err := svc.Profile(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", pub.Name)
	assert.Nil(t, pub.DoctorInfo, "patients carry no doctor profile")
}

func TestProfileNotFound(t *testing.T) {
	svc := NewService(newFakeAccountRepo(), &fakeAppointmentRepo{}, &fakeUploader{})

	_, err := svc.Profile(context.Background(), uuid.New())
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestUploadReport(t *testing.T) {
	account := &model.Account{ID: uuid.New(), Role: model.RolePatient}
	repo := newFakeAccountRepo(account)
	svc := NewService(repo, &fakeAppointmentRepo{}, &fakeUploader{url: "http://storage.example/r.pdf"})

	url, err := svc.UploadReport(context.Background(), account.ID, []byte("pdf"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "http://storage.example/r.pdf", url)
	assert.Equal(t, url, account.PatientReport)
}

func TestUploadReportStorageFailure(t *testing.T) {
	account := &model.Account{ID: uuid.New(), Role: model.RolePatient}
	svc := NewService(newFakeAccountRepo(account), &fakeAppointmentRepo{}, &fakeUploader{err: errors.New("down")})

	_, err := svc.UploadReport(context.Background(), account.ID, nil, "application/pdf")
	assert.True(t, apperror.Is(err, apperror.CodeUpstream))
	assert.Empty(t, account.PatientReport)
}

func TestListDoctorsCaches(t *testing.T) {
	doctor := &model.Account{ID: uuid.New(), Name: "Dr. A", Role: model.RoleDoctor}
	patient := &model.Account{ID: uuid.New(), Role: model.RolePatient}
	repo := newFakeAccountRepo(doctor, patient)
	svc := NewService(repo, &fakeAppointmentRepo{}, &fakeUploader{})

	doctors, err := svc.ListDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Dr. A", doctors[0].Name)

	_, err = svc.ListDoctors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listHits, "second listing should come from cache")

	svc.InvalidateDoctorCache()
	_, err = svc.ListDoctors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listHits)
}

func TestGetDoctorDetails(t *testing.T) {
	doctor := &model.Account{
		ID:   uuid.New(),
		Name: "Dr. A",
		Role: model.RoleDoctor,
		DoctorInfo: model.DoctorProfile{
			Specialization: "Dermatology",
		},
	}
	appointments := &fakeAppointmentRepo{slots: map[uuid.UUID][]model.Slot{
		doctor.ID: {{Date: "2026-09-15", Time: "10:30 AM"}},
	}}
	svc := NewService(newFakeAccountRepo(doctor), appointments, &fakeUploader{})

	details, err := svc.GetDoctorDetails(context.Background(), doctor.ID)
	require.NoError(t, err)
	require.NotNil(t, details.Doctor.DoctorInfo)
	assert.Equal(t, "Dermatology", details.Doctor.DoctorInfo.Specialization)
	require.Len(t, details.Appointments, 1)
	assert.Equal(t, "10:30 AM", details.Appointments[0].Time)
}

func TestGetDoctorDetailsRejectsNonDoctor(t *testing.T) {
	patient := &model.Account{ID: uuid.New(), Role: model.RolePatient}
	svc := NewService(newFakeAccountRepo(patient), &fakeAppointmentRepo{}, &fakeUploader{})

	_, err := svc.GetDoctorDetails(context.Background(), patient.ID)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestDashboardCounts(t *testing.T) {
	repo := newFakeAccountRepo(
		&model.Account{ID: uuid.New(), Role: model.RolePatient},
		&model.Account{ID: uuid.New(), Role: model.RolePatient},
		&model.Account{ID: uuid.New(), Role: model.RoleDoctor},
		&model.Account{ID: uuid.New(), Role: model.RoleAdmin},
	)
	svc := NewService(repo, &fakeAppointmentRepo{}, &fakeUploader{})

	counts, err := svc.DashboardCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Patients)
	assert.Equal(t, int64(1), counts.Doctors)
	assert.Equal(t, int64(1), counts.Admins)
}
