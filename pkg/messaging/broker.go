package messaging

import (
	"context"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Event channels published by the API and consumed by the worker.
const (
	ChannelAppointmentBooked        = "appointment.booked"
	ChannelAppointmentStatusChanged = "appointment.status_changed"
	ChannelDoctorRequestSubmitted   = "doctor_request.submitted"
	ChannelDoctorRequestResolved    = "doctor_request.resolved"
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
