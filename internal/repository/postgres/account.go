package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vitacare/hospital-api/internal/model"
)

const accountColumns = `
	id, name, email, password_hash, role, gender, contact, avatar, patient_report,
	specialization AS "doctor_info.specialization",
	degree AS "doctor_info.degree",
	address AS "doctor_info.address",
	description AS "doctor_info.description",
	profile_photo AS "doctor_info.profile_photo",
	created_at, updated_at
`

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (
			id, name, email, password_hash, role, gender, contact,
			avatar, patient_report, specialization, degree, address,
			description, profile_photo, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.Gender,
		account.Contact,
		account.Avatar,
		account.PatientReport,
		account.DoctorInfo.Specialization,
		account.DoctorInfo.Degree,
		account.DoctorInfo.Address,
		account.DoctorInfo.Description,
		account.DoctorInfo.ProfilePhoto,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	var account model.Account
	if err := r.db.GetContext(ctx, &account, query, id); err != nil {
		return nil, translateError(err)
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	var account model.Account
	if err := r.db.GetContext(ctx, &account, query, email); err != nil {
		return nil, translateError(err)
	}
	return &account, nil
}

func (r *accountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE accounts SET password_hash = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return translateError(err)
	}
	return requireRowsAffected(result, "account")
}

func (r *accountRepository) SetPatientReport(ctx context.Context, id uuid.UUID, reportURL string) error {
	query := `UPDATE accounts SET patient_report = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, reportURL, time.Now(), id)
	if err != nil {
		return translateError(err)
	}
	return requireRowsAffected(result, "account")
}

func (r *accountRepository) ListByRole(ctx context.Context, role model.Role) ([]*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE role = $1 ORDER BY created_at DESC`

	var accounts []*model.Account
	if err := r.db.SelectContext(ctx, &accounts, query, role); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (r *accountRepository) CountByRole(ctx context.Context) (*model.DashboardCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE role = 'patient') AS patients,
			COUNT(*) FILTER (WHERE role = 'doctor')  AS doctors,
			COUNT(*) FILTER (WHERE role = 'admin')   AS admins
		FROM accounts
	`

	var counts model.DashboardCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}
	return &counts, nil
}
