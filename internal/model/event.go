package model

import (
	"github.com/google/uuid"
)

// AppointmentEvent is the payload published when a booking is created or its
// status changes.
type AppointmentEvent struct {
	AppointmentID uuid.UUID         `json:"appointment_id"`
	DoctorID      uuid.UUID         `json:"doctor_id"`
	DoctorEmail   string            `json:"doctor_email"`
	PatientID     uuid.UUID         `json:"patient_id"`
	PatientEmail  string            `json:"patient_email"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	Status        AppointmentStatus `json:"status"`
}

// DoctorRequestEvent is the payload published when an onboarding request is
// submitted or resolved.
type DoctorRequestEvent struct {
	RequestID      uuid.UUID     `json:"request_id"`
	UserID         uuid.UUID     `json:"user_id"`
	ApplicantName  string        `json:"applicant_name"`
	ApplicantEmail string        `json:"applicant_email"`
	Status         RequestStatus `json:"status"`
}
