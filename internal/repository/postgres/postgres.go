package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/vitacare/hospital-api/internal/repository"
)

type accountRepository struct {
	BaseRepository
}

type appointmentRepository struct {
	BaseRepository
}

type doctorRequestRepository struct {
	BaseRepository
}

type messageRepository struct {
	BaseRepository
}

func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &accountRepository{NewBaseRepository(db)}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{NewBaseRepository(db)}
}

func NewDoctorRequestRepository(db *sqlx.DB) repository.DoctorRequestRepository {
	return &doctorRequestRepository{NewBaseRepository(db)}
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{NewBaseRepository(db)}
}
