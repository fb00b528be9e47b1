package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus is the booking state machine. It is distinct from
// RequestStatus even though both have a pending state.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "Pending"
	AppointmentStatusConfirmed AppointmentStatus = "Confirmed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
	AppointmentStatusRejected  AppointmentStatus = "Rejected"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCancelled, AppointmentStatusRejected:
		return true
	}
	return false
}

// Active reports whether the appointment still occupies its slot.
func (s AppointmentStatus) Active() bool {
	return s == AppointmentStatusPending || s == AppointmentStatusConfirmed
}

// Appointment books one (doctor, date, time) slot for one patient. RoomID is
// the opaque rendezvous token for the eventual video session.
type Appointment struct {
	ID        uuid.UUID         `json:"id" db:"id"`
	DoctorID  uuid.UUID         `json:"doctor_id" db:"doctor_id"`
	PatientID uuid.UUID         `json:"patient_id" db:"patient_id"`
	Date      string            `json:"date" db:"date"`
	Time      string            `json:"time" db:"time"`
	RoomID    string            `json:"room_id" db:"room_id"`
	Status    AppointmentStatus `json:"status" db:"status"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`

	// Populated on listing endpoints, from the joined account.
	Doctor  *PublicAccount `json:"doctor,omitempty" db:"-"`
	Patient *PublicAccount `json:"patient,omitempty" db:"-"`
}

// Slot is one bookable appointment unit of a doctor's calendar.
type Slot struct {
	Date string `json:"date" db:"date"`
	Time string `json:"time" db:"time"`
}

const slotDateLayout = "2006-01-02 03:04 PM"

// slotKey converts the textual (date, time) pair into a sortable instant.
// Pairs that fail to parse sort after everything else, in textual order.
func slotKey(date, tm string) (time.Time, bool) {
	t, err := time.Parse(slotDateLayout, date+" "+tm)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SortAppointmentsChronologically orders appointments ascending by their
// (date, time) pair. Chronological display is the contract of the listing
// endpoints, regardless of insertion order.
func SortAppointmentsChronologically(appointments []*Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		ti, iok := slotKey(appointments[i].Date, appointments[i].Time)
		tj, jok := slotKey(appointments[j].Date, appointments[j].Time)
		if iok && jok {
			return ti.Before(tj)
		}
		if iok != jok {
			return iok
		}
		if appointments[i].Date != appointments[j].Date {
			return appointments[i].Date < appointments[j].Date
		}
		return appointments[i].Time < appointments[j].Time
	})
}

type BookAppointmentRequest struct {
	DoctorID string `json:"doctor_id" binding:"required,uuid"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required"`
}
