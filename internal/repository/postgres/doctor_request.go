package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vitacare/hospital-api/internal/model"
)

const doctorRequestColumns = `
	id, user_id, name, email, specialization, degree, address, description,
	profile_photo_url, status, created_at, updated_at
`

func (r *doctorRequestRepository) Create(ctx context.Context, request *model.DoctorRequest) error {
	query := `
		INSERT INTO doctor_requests (
			id, user_id, name, email, specialization, degree, address,
			description, profile_photo_url, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	request.ID = uuid.New()
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		request.ID,
		request.UserID,
		request.Name,
		request.Email,
		request.Specialization,
		request.Degree,
		request.Address,
		request.Description,
		request.ProfilePhotoURL,
		request.Status,
		request.CreatedAt,
		request.UpdatedAt,
	)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *doctorRequestRepository) Get(ctx context.Context, id uuid.UUID) (*model.DoctorRequest, error) {
	query := `SELECT ` + doctorRequestColumns + ` FROM doctor_requests WHERE id = $1`

	var request model.DoctorRequest
	if err := r.db.GetContext(ctx, &request, query, id); err != nil {
		return nil, translateError(err)
	}
	return &request, nil
}

func (r *doctorRequestRepository) ExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM doctor_requests WHERE user_id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID); err != nil {
		return false, fmt.Errorf("failed to check doctor request: %w", err)
	}
	return exists, nil
}

func (r *doctorRequestRepository) List(ctx context.Context) ([]*model.DoctorRequest, error) {
	query := `SELECT ` + doctorRequestColumns + ` FROM doctor_requests ORDER BY created_at DESC`

	var requests []*model.DoctorRequest
	if err := r.db.SelectContext(ctx, &requests, query); err != nil {
		return nil, fmt.Errorf("failed to list doctor requests: %w", err)
	}
	return requests, nil
}

// Resolve updates the request's status and the referenced account's
// role/profile in one transaction, so a resolved request and a stale account
// can never be observed together.
func (r *doctorRequestRepository) Resolve(ctx context.Context, id uuid.UUID, status model.RequestStatus, role model.Role, profile model.DoctorProfile) (*model.DoctorRequest, error) {
	var request model.DoctorRequest

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		updateRequest := `
			UPDATE doctor_requests
			SET status = $1, updated_at = $2
			WHERE id = $3
			RETURNING ` + doctorRequestColumns

		if err := tx.GetContext(ctx, &request, updateRequest, status, time.Now(), id); err != nil {
			return translateError(err)
		}

		updateAccount := `
			UPDATE accounts
			SET role = $1, specialization = $2, degree = $3, address = $4,
				description = $5, profile_photo = $6, updated_at = $7
			WHERE id = $8
		`

		result, err := tx.ExecContext(ctx, updateAccount,
			role,
			profile.Specialization,
			profile.Degree,
			profile.Address,
			profile.Description,
			profile.ProfilePhoto,
			time.Now(),
			request.UserID,
		)
		if err != nil {
			return translateError(err)
		}
		return requireRowsAffected(result, "account")
	})
	if err != nil {
		return nil, err
	}

	return &request, nil
}
