package model

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the doctor-onboarding state machine, separate from the
// appointment state machine.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "Pending"
	RequestStatusApproved RequestStatus = "Approved"
	RequestStatusRejected RequestStatus = "Rejected"
)

// ValidDecision reports whether the status is an admissible resolution.
func (s RequestStatus) ValidDecision() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// DoctorRequest is one account's application to become a doctor. At most one
// request exists per account; only the status changes after creation.
type DoctorRequest struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	UserID          uuid.UUID     `json:"user_id" db:"user_id"`
	Name            string        `json:"name" db:"name"`
	Email           string        `json:"email" db:"email"`
	Specialization  string        `json:"specialization" db:"specialization"`
	Degree          string        `json:"degree" db:"degree"`
	Address         string        `json:"address" db:"address"`
	Description     string        `json:"description" db:"description"`
	ProfilePhotoURL string        `json:"profile_photo_url" db:"profile_photo_url"`
	Status          RequestStatus `json:"status" db:"status"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
}

// Profile returns the doctor profile the request proposes.
func (r *DoctorRequest) Profile() DoctorProfile {
	return DoctorProfile{
		Specialization: r.Specialization,
		Degree:         r.Degree,
		Address:        r.Address,
		Description:    r.Description,
		ProfilePhoto:   r.ProfilePhotoURL,
	}
}

type DoctorRequestFields struct {
	Specialization string `json:"specialization" binding:"required"`
	Degree         string `json:"degree" binding:"required"`
	Address        string `json:"address" binding:"required"`
	Description    string `json:"description" binding:"required"`
}

type ResolveDoctorRequestRequest struct {
	Status RequestStatus `json:"status" binding:"required"`
}
