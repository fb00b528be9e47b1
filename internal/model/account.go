package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// DoctorProfile holds the fields attached to an account once promoted to
// role=doctor. All fields are empty for patients and admins.
type DoctorProfile struct {
	Specialization string `json:"specialization" db:"specialization"`
	Degree         string `json:"degree" db:"degree"`
	Address        string `json:"address" db:"address"`
	Description    string `json:"description" db:"description"`
	ProfilePhoto   string `json:"profile_photo" db:"profile_photo"`
}

func (p DoctorProfile) Empty() bool {
	return p == DoctorProfile{}
}

type Account struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	Name          string        `json:"name" db:"name"`
	Email         string        `json:"email" db:"email"`
	PasswordHash  string        `json:"-" db:"password_hash"`
	Role          Role          `json:"role" db:"role"`
	Gender        string        `json:"gender" db:"gender"`
	Contact       string        `json:"contact" db:"contact"`
	Avatar        string        `json:"avatar,omitempty" db:"avatar"`
	PatientReport string        `json:"patient_report,omitempty" db:"patient_report"`
	DoctorInfo    DoctorProfile `json:"-" db:"doctor_info"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// Public returns the account shaped for API responses: no credential, and
// the doctor profile only present for doctor accounts.
func (a *Account) Public() *PublicAccount {
	pub := &PublicAccount{
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		Role:          a.Role,
		Gender:        a.Gender,
		Contact:       a.Contact,
		Avatar:        a.Avatar,
		PatientReport: a.PatientReport,
		CreatedAt:     a.CreatedAt,
	}
	if a.Role == RoleDoctor {
		info := a.DoctorInfo
		pub.DoctorInfo = &info
	}
	return pub
}

type PublicAccount struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Role          Role           `json:"role"`
	Gender        string         `json:"gender"`
	Contact       string         `json:"contact"`
	Avatar        string         `json:"avatar,omitempty"`
	PatientReport string         `json:"patient_report,omitempty"`
	DoctorInfo    *DoctorProfile `json:"doctor_info"`
	CreatedAt     time.Time      `json:"created_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Gender   string `json:"gender" binding:"required,oneof=Male Female"`
	Contact  string `json:"contact" binding:"required,min=10"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// DashboardCounts is the admin dashboard summary.
type DashboardCounts struct {
	Patients int64 `json:"patients" db:"patients"`
	Doctors  int64 `json:"doctors" db:"doctors"`
	Admins   int64 `json:"admins" db:"admins"`
}
